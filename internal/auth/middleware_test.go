package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"smartparking/internal/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubResolver struct {
	sessions map[string]*entities.Session
	err      error
	calls    int
}

func (s *stubResolver) Resolve(_ context.Context, id string) (*entities.Session, error) {
	s.calls++
	return s.sessions[id], s.err
}

func echoSession() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s := FromContext(r.Context()); s != nil {
			w.Write([]byte(s.Email))
			return
		}
		w.Write([]byte("anonymous"))
	})
}

func TestSessionMiddleware(t *testing.T) {
	resolver := &stubResolver{sessions: map[string]*entities.Session{
		"abc": {ID: "abc", Token: "tok", Email: "a@b.c"},
	}}
	h := SessionMiddleware(resolver, false, zap.NewNop())(echoSession())

	t.Run("no cookie", func(t *testing.T) {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, "anonymous", rr.Body.String())
		assert.Zero(t, resolver.calls)
	})

	t.Run("known session", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: CookieName, Value: "abc"})
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		assert.Equal(t, "a@b.c", rr.Body.String())
	})

	t.Run("stale cookie is cleared", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: CookieName, Value: "gone"})
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		assert.Equal(t, "anonymous", rr.Body.String())

		cookies := rr.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, CookieName, cookies[0].Name)
		assert.Negative(t, cookies[0].MaxAge)
	})
}

func TestSessionMiddleware_StoreError(t *testing.T) {
	resolver := &stubResolver{err: errors.New("redis down")}
	h := SessionMiddleware(resolver, false, zap.NewNop())(echoSession())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "abc"})
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, "anonymous", rr.Body.String())
	assert.Empty(t, rr.Result().Cookies(), "cookie must survive a store outage")
}

func TestRequireSession(t *testing.T) {
	tests := []struct {
		name       string
		withReturn bool
		path       string
		want       string
	}{
		{"plain", false, "/dashboard", "/login"},
		{"with return", true, "/parking-lots/4/book", "/login?redirect=%2Fparking-lots%2F4%2Fbook"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			h := RequireSession(tt.withReturn)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { called = true }))

			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, tt.path, nil))
			assert.Equal(t, http.StatusSeeOther, rr.Code)
			assert.Equal(t, tt.want, rr.Header().Get("Location"))
			assert.False(t, called)
		})
	}

	t.Run("signed in", func(t *testing.T) {
		called := false
		h := RequireSession(true)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { called = true }))
		req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
		req = req.WithContext(WithSession(req.Context(), &entities.Session{ID: "x"}))
		h.ServeHTTP(httptest.NewRecorder(), req)
		assert.True(t, called)
	})
}

func TestSetCookie(t *testing.T) {
	exp := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	rr := httptest.NewRecorder()
	SetCookie(rr, &entities.Session{ID: "abc", ExpiresAt: exp}, true)

	cookies := rr.Result().Cookies()
	require.Len(t, cookies, 1)
	c := cookies[0]
	assert.Equal(t, "abc", c.Value)
	assert.True(t, c.HttpOnly)
	assert.True(t, c.Secure)
	assert.Equal(t, http.SameSiteLaxMode, c.SameSite)
	assert.True(t, c.Expires.Equal(exp))
}
