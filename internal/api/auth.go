package api

import (
	"context"
	"net/http"

	"github.com/set-night/travelhub/internal/config"
	"github.com/set-night/travelhub/internal/domain"
)

type LoginRequest struct {
	Email    string `json:"email,omitempty"`
	Mobile   string `json:"mobile,omitempty"`
	Password string `json:"password"`
}

type SignupRequest struct {
	Email    string      `json:"email,omitempty"`
	Mobile   string      `json:"mobile,omitempty"`
	Password string      `json:"password"`
	Role     domain.Role `json:"role,omitempty"`
}

type AuthResponse struct {
	Token       string           `json:"token"`
	AccessToken string           `json:"accessToken"`
	User        *domain.AuthUser `json:"user"`
}

// BearerToken returns whichever token field the backend filled.
func (r *AuthResponse) BearerToken() string {
	if r.Token != "" {
		return r.Token
	}
	return r.AccessToken
}

type AuthAPI struct {
	c     *Client
	paths config.Paths
}

func NewAuthAPI(c *Client, paths config.Paths) *AuthAPI {
	return &AuthAPI{c: c, paths: paths}
}

func (a *AuthAPI) Login(ctx context.Context, body LoginRequest) (*AuthResponse, error) {
	var res AuthResponse
	if err := a.c.Do(ctx, Request{Method: http.MethodPost, Path: a.paths.AuthLogin, Body: body}, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (a *AuthAPI) Signup(ctx context.Context, body SignupRequest) (*AuthResponse, error) {
	var res AuthResponse
	if err := a.c.Do(ctx, Request{Method: http.MethodPost, Path: a.paths.AuthSignup, Body: body}, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Me accepts both a bare user object and one wrapped as {"user": {...}}.
func (a *AuthAPI) Me(ctx context.Context) (*domain.AuthUser, error) {
	var res struct {
		User *domain.AuthUser `json:"user"`
		domain.AuthUser
	}
	if err := a.c.Do(ctx, Request{Method: http.MethodGet, Path: a.paths.Me}, &res); err != nil {
		return nil, err
	}
	if res.User != nil {
		return res.User, nil
	}
	return &res.AuthUser, nil
}

func (a *AuthAPI) Logout(ctx context.Context) error {
	return a.c.Do(ctx, Request{Method: http.MethodPost, Path: a.paths.AuthLogout}, nil)
}
