package api

import (
	"context"
	"fmt"
	"net/http"
)

// User is the authenticated account.
type User struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	LastName string `json:"last_name"`
	Role     string `json:"role"`
}

// LoginResponse carries the bearer token issued after a successful login.
type LoginResponse struct {
	Token     string `json:"token"`
	TokenType string `json:"token_type"`
	User      *User  `json:"user"`
}

// RequestLoginCode asks the backend to email a one-time login code.
func (c *Client) RequestLoginCode(ctx context.Context, email string) error {
	body := map[string]string{"email": email}
	if err := c.do(ctx, http.MethodPost, "/auth/login/request", body, nil); err != nil {
		return fmt.Errorf("requesting login code: %w", err)
	}
	return nil
}

// VerifyLoginCode exchanges an emailed code for a bearer token.
func (c *Client) VerifyLoginCode(ctx context.Context, email, code string) (*LoginResponse, error) {
	var resp LoginResponse
	body := map[string]string{"email": email, "code": code}
	if err := c.do(ctx, http.MethodPost, "/auth/login/verify", body, &resp); err != nil {
		return nil, fmt.Errorf("verifying login code: %w", err)
	}
	return &resp, nil
}

// Login authenticates with email and password.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	var resp LoginResponse
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/auth/login", body, &resp); err != nil {
		return nil, fmt.Errorf("logging in: %w", err)
	}
	return &resp, nil
}

// SignUp registers a new account.
func (c *Client) SignUp(ctx context.Context, email, name, password string) (*User, error) {
	var user User
	body := map[string]string{"email": email, "name": name, "password": password}
	if err := c.do(ctx, http.MethodPost, "/auth/signup", body, &user); err != nil {
		return nil, fmt.Errorf("signing up: %w", err)
	}
	return &user, nil
}

// CurrentUser returns the account the token belongs to.
func (c *Client) CurrentUser(ctx context.Context) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodGet, "/users/me", nil, &user); err != nil {
		return nil, fmt.Errorf("fetching user: %w", err)
	}
	return &user, nil
}
