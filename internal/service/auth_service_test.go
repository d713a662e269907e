package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"smartparking/internal/entities"
	apperrors "smartparking/internal/errors"
	"smartparking/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "a@b.c",
		"exp": exp.Unix(),
	})
	s, err := tok.SignedString([]byte("unrelated-secret"))
	require.NoError(t, err)
	return s
}

func newAuthService(auth repository.AuthRepository, sessions repository.SessionRepository, now time.Time) *AuthService {
	svc := NewAuthService(auth, sessions, 30*time.Minute, zap.NewNop())
	svc.now = func() time.Time { return now }
	return svc
}

func TestAuthService_Login_UsesTokenExpiry(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	exp := now.Add(2 * time.Hour)
	token := signedToken(t, exp)

	auth := new(MockAuthRepository)
	auth.On("Login", mock.Anything, "a@b.c", "secret").Return(&entities.Token{AccessToken: token, TokenType: "bearer"}, nil)
	sessions := repository.NewMemorySessionRepository()
	svc := newAuthService(auth, sessions, now)

	sess, err := svc.Login(context.Background(), " a@b.c ", "secret")
	require.NoError(t, err)
	assert.NotEmpty(t, sess.ID)
	assert.Equal(t, token, sess.Token)
	assert.Equal(t, "a@b.c", sess.Email)
	assert.True(t, sess.ExpiresAt.Equal(exp.Truncate(time.Second)))

	stored, err := sessions.Get(context.Background(), sess.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, token, stored.Token)
}

func TestAuthService_Login_OpaqueTokenFallsBackToTTL(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	auth := new(MockAuthRepository)
	auth.On("Login", mock.Anything, "a@b.c", "pw").Return(&entities.Token{AccessToken: "opaque"}, nil)
	svc := newAuthService(auth, repository.NewMemorySessionRepository(), now)

	sess, err := svc.Login(context.Background(), "a@b.c", "pw")
	require.NoError(t, err)
	assert.Equal(t, now.Add(30*time.Minute), sess.ExpiresAt)
}

func TestAuthService_Login_Errors(t *testing.T) {
	auth := new(MockAuthRepository)
	svc := newAuthService(auth, repository.NewMemorySessionRepository(), time.Now())

	_, err := svc.Login(context.Background(), "", "pw")
	assert.Equal(t, "Email and password are required", apperrors.Message(err, ""))

	auth.On("Login", mock.Anything, "a@b.c", "bad").Return(nil, apperrors.NewStatusError(http.StatusUnauthorized, "401 Unauthorized"))
	_, err = svc.Login(context.Background(), "a@b.c", "bad")
	assert.Equal(t, "API Error: Unauthorized", apperrors.Message(err, ""))

	auth.On("Login", mock.Anything, "a@b.c", "empty").Return(&entities.Token{}, nil)
	_, err = svc.Login(context.Background(), "a@b.c", "empty")
	assert.Equal(t, "Login failed", apperrors.Message(err, ""))
}

func TestAuthService_Resolve(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	sessions := repository.NewMemorySessionRepository()
	ctx := context.Background()
	require.NoError(t, sessions.Save(ctx, &entities.Session{ID: "live", Token: "t1", ExpiresAt: now.Add(time.Minute)}))
	require.NoError(t, sessions.Save(ctx, &entities.Session{ID: "old", Token: "t2", ExpiresAt: now}))

	svc := newAuthService(new(MockAuthRepository), sessions, now)

	got, err := svc.Resolve(ctx, "live")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "t1", got.Token)

	got, err = svc.Resolve(ctx, "old")
	require.NoError(t, err)
	assert.Nil(t, got)
	gone, _ := sessions.Get(ctx, "old")
	assert.Nil(t, gone, "expired session must be removed")

	got, err = svc.Resolve(ctx, "")
	assert.NoError(t, err)
	assert.Nil(t, got)

	got, err = svc.Resolve(ctx, "unknown")
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestAuthService_Logout(t *testing.T) {
	sessions := new(MockSessionRepository)
	sessions.On("Delete", mock.Anything, "s1").Return(nil)
	svc := newAuthService(new(MockAuthRepository), sessions, time.Now())

	require.NoError(t, svc.Logout(context.Background(), "s1"))
	require.NoError(t, svc.Logout(context.Background(), ""))
	sessions.AssertNumberOfCalls(t, "Delete", 1)
}

func TestAuthService_Register(t *testing.T) {
	auth := new(MockAuthRepository)
	svc := newAuthService(auth, repository.NewMemorySessionRepository(), time.Now())

	_, err := svc.Register(context.Background(), entities.RegisterRequest{Email: "a@b.c", Password: "pw"})
	assert.Equal(t, "Name, email and password are required", apperrors.Message(err, ""))

	want := entities.RegisterRequest{Email: "a@b.c", Password: "pw", FullName: "Asha Rao", PhoneNumber: "+919800000000"}
	auth.On("Register", mock.Anything, want).Return(&entities.User{ID: 3, Email: "a@b.c"}, nil)

	user, err := svc.Register(context.Background(), entities.RegisterRequest{
		Email: " a@b.c", Password: "pw", FullName: "Asha Rao ", PhoneNumber: "+919800000000",
	})
	require.NoError(t, err)
	assert.Equal(t, 3, user.ID)
	auth.AssertExpectations(t)
}
