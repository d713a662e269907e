package repository

import (
	"context"
	"fmt"
	"net/url"

	"smartparking/internal/backend"
	"smartparking/internal/entities"
)

type AuthRepository interface {
	Register(ctx context.Context, req entities.RegisterRequest) (*entities.User, error)
	Login(ctx context.Context, email, password string) (*entities.Token, error)
	Me(ctx context.Context, token string) (*entities.User, error)
}

type authRepository struct {
	client *backend.Client
}

func NewAuthRepository(client *backend.Client) AuthRepository {
	return &authRepository{client: client}
}

func (r *authRepository) Register(ctx context.Context, req entities.RegisterRequest) (*entities.User, error) {
	var user entities.User
	if err := r.client.PostJSON(ctx, "/api/v1/auth/register", "", req, &user); err != nil {
		return nil, fmt.Errorf("register %s: %w", req.Email, err)
	}
	return &user, nil
}

// Login posts the OAuth2 password form the backend expects; the e-mail goes
// in the username field.
func (r *authRepository) Login(ctx context.Context, email, password string) (*entities.Token, error) {
	form := url.Values{}
	form.Set("username", email)
	form.Set("password", password)

	var token entities.Token
	if err := r.client.PostForm(ctx, "/api/v1/auth/login", form, &token); err != nil {
		return nil, fmt.Errorf("login %s: %w", email, err)
	}
	return &token, nil
}

func (r *authRepository) Me(ctx context.Context, token string) (*entities.User, error) {
	var user entities.User
	if err := r.client.Get(ctx, "/api/v1/auth/me", token, &user); err != nil {
		return nil, fmt.Errorf("get current user: %w", err)
	}
	return &user, nil
}
