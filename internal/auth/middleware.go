package auth

import (
	"context"
	"net/http"
	"net/url"

	"smartparking/internal/entities"

	"go.uber.org/zap"
)

// CookieName is the browser cookie carrying the session id.
const CookieName = "session"

// SessionResolver looks up the session behind a cookie value. A nil session
// with a nil error means the visitor is anonymous.
type SessionResolver interface {
	Resolve(ctx context.Context, id string) (*entities.Session, error)
}

type ctxKey struct{}

func WithSession(ctx context.Context, s *entities.Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// FromContext returns the session attached by SessionMiddleware, or nil.
func FromContext(ctx context.Context) *entities.Session {
	s, _ := ctx.Value(ctxKey{}).(*entities.Session)
	return s
}

// SessionMiddleware attaches the caller's session, if any, to the request
// context. Cookies of unknown or expired sessions are cleared.
func SessionMiddleware(resolver SessionResolver, secure bool, log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c, err := r.Cookie(CookieName)
			if err != nil || c.Value == "" {
				next.ServeHTTP(w, r)
				return
			}

			sess, err := resolver.Resolve(r.Context(), c.Value)
			if err != nil {
				// keep the cookie, the store may come back
				log.Warn("session lookup failed", zap.Error(err))
				next.ServeHTTP(w, r)
				return
			}
			if sess == nil {
				ClearCookie(w, secure)
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), sess)))
		})
	}
}

// RequireSession sends anonymous visitors to the login page before any
// backend call is made. With withReturn the login page brings them back to
// the requested path afterwards.
func RequireSession(withReturn bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if FromContext(r.Context()) != nil {
				next.ServeHTTP(w, r)
				return
			}
			target := "/login"
			if withReturn {
				target += "?redirect=" + url.QueryEscape(r.URL.RequestURI())
			}
			http.Redirect(w, r, target, http.StatusSeeOther)
		})
	}
}

// SetCookie hands the session id to the browser.
func SetCookie(w http.ResponseWriter, s *entities.Session, secure bool) {
	c := &http.Cookie{
		Name:     CookieName,
		Value:    s.ID,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	if !s.ExpiresAt.IsZero() {
		c.Expires = s.ExpiresAt
	}
	http.SetCookie(w, c)
}

func ClearCookie(w http.ResponseWriter, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}
