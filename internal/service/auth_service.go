package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"smartparking/internal/entities"
	apperrors "smartparking/internal/errors"
	"smartparking/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AuthService struct {
	auth     repository.AuthRepository
	sessions repository.SessionRepository
	ttl      time.Duration
	log      *zap.Logger
	now      func() time.Time
}

func NewAuthService(auth repository.AuthRepository, sessions repository.SessionRepository, ttl time.Duration, log *zap.Logger) *AuthService {
	return &AuthService{auth: auth, sessions: sessions, ttl: ttl, log: log, now: time.Now}
}

// Login exchanges credentials for a backend token and opens a session
// holding it.
func (s *AuthService) Login(ctx context.Context, email, password string) (*entities.Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, apperrors.NewMessageError("Email and password are required")
	}

	token, err := s.auth.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if token.AccessToken == "" {
		return nil, apperrors.NewMessageError("Login failed")
	}

	now := s.now()
	sess := &entities.Session{
		ID:        uuid.NewString(),
		Token:     token.AccessToken,
		Email:     email,
		CreatedAt: now,
		ExpiresAt: s.tokenExpiry(token.AccessToken, now),
	}
	if err := s.sessions.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	s.log.Info("user logged in", zap.String("email", email), zap.Time("expires_at", sess.ExpiresAt))
	return sess, nil
}

// tokenExpiry reads the unverified exp claim of the access token, falling
// back to the configured TTL.
func (s *AuthService) tokenExpiry(token string, now time.Time) time.Time {
	fallback := now.Add(s.ttl)

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return fallback
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return fallback
	}
	return exp.Time
}

func (s *AuthService) Register(ctx context.Context, req entities.RegisterRequest) (*entities.User, error) {
	req.Email = strings.TrimSpace(req.Email)
	req.FullName = strings.TrimSpace(req.FullName)
	req.PhoneNumber = strings.TrimSpace(req.PhoneNumber)
	if req.Email == "" || req.Password == "" || req.FullName == "" {
		return nil, apperrors.NewMessageError("Name, email and password are required")
	}
	user, err := s.auth.Register(ctx, req)
	if err != nil {
		return nil, err
	}
	s.log.Info("user registered", zap.String("email", user.Email))
	return user, nil
}

// Resolve returns the live session behind id, or nil. Expired sessions are
// removed on the way.
func (s *AuthService) Resolve(ctx context.Context, id string) (*entities.Session, error) {
	if id == "" {
		return nil, nil
	}
	sess, err := s.sessions.Get(ctx, id)
	if err != nil || sess == nil {
		return nil, err
	}
	if sess.Expired(s.now()) {
		if err := s.sessions.Delete(ctx, id); err != nil {
			s.log.Warn("failed to delete expired session", zap.Error(err))
		}
		return nil, nil
	}
	return sess, nil
}

func (s *AuthService) Logout(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	return s.sessions.Delete(ctx, id)
}
