package api

import (
	"context"
	"errors"

	"github.com/wareops/opsctl/internal/domain"
	"github.com/wareops/opsctl/internal/ports"
)

// AuthClient handles login and user lookups. A successful login persists the
// session so every later request carries the bearer token.
type AuthClient struct {
	*Client
	sessions ports.SessionStore
}

func NewAuthClient(client *Client, sessions ports.SessionStore) *AuthClient {
	return &AuthClient{Client: client, sessions: sessions}
}

func (a *AuthClient) Login(ctx context.Context, creds domain.Credentials) (domain.Session, error) {
	var payload struct {
		AccessToken string      `json:"access_token"`
		TokenType   string      `json:"token_type"`
		User        domain.User `json:"user"`
	}
	if err := a.post(ctx, "/auth/login", creds, &payload, a.settings.AuthTimeout()); err != nil {
		return domain.Session{}, err
	}
	session := domain.Session{Token: payload.AccessToken, User: payload.User}
	if err := a.sessions.SetSession(session); err != nil {
		return domain.Session{}, err
	}
	return session, nil
}

func (a *AuthClient) Me(ctx context.Context) (domain.User, error) {
	var user domain.User
	err := a.get(ctx, "/auth/me", &user, a.settings.AuthTimeout())
	return user, err
}

// Users lists backend accounts. Non-admin callers get a 403; that is
// reported as an empty list rather than an error.
func (a *AuthClient) Users(ctx context.Context) ([]domain.User, error) {
	var payload struct {
		Users []domain.User `json:"users"`
	}
	err := a.get(ctx, "/auth/users", &payload, a.settings.AuthTimeout())
	if err != nil {
		var apiErr *domain.APIError
		if errors.As(err, &apiErr) && apiErr.Status == 403 {
			return nil, nil
		}
		return nil, err
	}
	return payload.Users, nil
}

func (a *AuthClient) Logout() error {
	return a.sessions.ClearSession()
}
