package api

import (
	"net/http"
	"strings"

	"smartparking/internal/auth"
	"smartparking/internal/entities"
	apperrors "smartparking/internal/errors"
	"smartparking/internal/service"

	"go.uber.org/zap"
)

type AuthHandler struct {
	auth   *service.AuthService
	render *Renderer
	secure bool
	log    *zap.Logger
}

func NewAuthHandler(authSvc *service.AuthService, render *Renderer, secure bool, log *zap.Logger) *AuthHandler {
	return &AuthHandler{auth: authSvc, render: render, secure: secure, log: log}
}

const sessionExpiredMessage = "Your session has expired. Please log in again."

type loginForm struct {
	Email    string
	Redirect string
}

// safeRedirect accepts only local absolute paths.
func safeRedirect(target string) string {
	if target == "" || !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") || strings.Contains(target, "\\") {
		return "/"
	}
	return target
}

func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	p := page{Title: "Login", Session: auth.FromContext(r.Context())}
	switch {
	case r.URL.Query().Get("expired") != "":
		p.Error = sessionExpiredMessage
	case r.URL.Query().Get("registered") != "":
		p.Notice = "Registration successful. Please log in."
	}
	redirect := r.URL.Query().Get("redirect")
	if redirect != "" {
		redirect = safeRedirect(redirect)
	}
	p.Data = loginForm{Redirect: redirect}
	h.render.HTML(w, r, http.StatusOK, "login", p)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}
	email := r.PostForm.Get("email")
	redirect := r.PostForm.Get("redirect")

	sess, err := h.auth.Login(r.Context(), email, r.PostForm.Get("password"))
	if err != nil {
		h.log.Info("login failed", zap.String("email", email), zap.Error(err))
		h.render.HTML(w, r, http.StatusOK, "login", page{
			Title: "Login",
			Error: apperrors.Message(err, "Login failed"),
			Data:  loginForm{Email: email, Redirect: redirect},
		})
		return
	}

	auth.SetCookie(w, sess, h.secure)
	http.Redirect(w, r, safeRedirect(redirect), http.StatusSeeOther)
}

func (h *AuthHandler) RegisterPage(w http.ResponseWriter, r *http.Request) {
	h.render.HTML(w, r, http.StatusOK, "register", page{
		Title:   "Register",
		Session: auth.FromContext(r.Context()),
		Data:    entities.RegisterRequest{},
	})
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}
	req := entities.RegisterRequest{
		Email:       r.PostForm.Get("email"),
		Password:    r.PostForm.Get("password"),
		FullName:    r.PostForm.Get("full_name"),
		PhoneNumber: r.PostForm.Get("phone_number"),
	}

	if _, err := h.auth.Register(r.Context(), req); err != nil {
		req.Password = ""
		h.render.HTML(w, r, http.StatusOK, "register", page{
			Title: "Register",
			Error: apperrors.Message(err, "Registration failed"),
			Data:  req,
		})
		return
	}
	http.Redirect(w, r, "/login?registered=1", http.StatusSeeOther)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if sess := auth.FromContext(r.Context()); sess != nil {
		if err := h.auth.Logout(r.Context(), sess.ID); err != nil {
			h.log.Warn("failed to delete session", zap.Error(err))
		}
	}
	auth.ClearCookie(w, h.secure)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
