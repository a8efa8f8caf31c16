package api

import (
	"context"
	"net/http"

	"github.com/mockmate/mockmate-cli/internal/model"
)

// LoginResult is the login envelope payload: the account plus both tokens.
type LoginResult struct {
	User         model.User `json:"user"`
	AccessToken  string     `json:"accessToken"`
	RefreshToken string     `json:"refreshToken"`
}

// Login authenticates with email/password.
func (c *Client) Login(ctx context.Context, email, password string) (LoginResult, error) {
	body := map[string]string{"email": email, "password": password}
	var out LoginResult
	if err := c.do(ctx, http.MethodPost, "/api/login", body, &out); err != nil {
		return LoginResult{}, err
	}
	return out, nil
}

// Register creates a new account. The backend does not sign the user in;
// callers log in afterwards.
func (c *Client) Register(ctx context.Context, username, email, password string) (model.User, error) {
	body := map[string]string{"username": username, "email": email, "password": password}
	var out struct {
		User model.User `json:"user"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/register", body, &out); err != nil {
		return model.User{}, err
	}
	return out.User, nil
}
