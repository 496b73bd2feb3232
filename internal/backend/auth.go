package backend

import (
	"context"
	"net/http"

	"github.com/spec-kit/egresados-portal/internal/domain"
)

// LoginRequest payload for /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignupRequest payload for /auth/signup.
type SignupRequest struct {
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Role     domain.Role `json:"role"`
}

// AuthResponse is the backend's answer to both auth endpoints. Signup may
// return no token when the account needs email confirmation first; Message
// then explains the pending state.
type AuthResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	Message     string `json:"message"`
}

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	var resp AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", nil, LoginRequest{Email: email, Password: password}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Signup registers a new account with the chosen role.
func (c *Client) Signup(ctx context.Context, email, password string, role domain.Role) (*AuthResponse, error) {
	var resp AuthResponse
	req := SignupRequest{Email: email, Password: password, Role: role}
	if err := c.do(ctx, http.MethodPost, "/auth/signup", nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
