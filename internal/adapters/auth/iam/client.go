// Package iam habla con el IAM externo que emite las sesiones:
// verificación de access tokens y canje de refresh tokens.
package iam

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Virgo-SSS/Ternakku/internal/platform/httpclient"
	"github.com/Virgo-SSS/Ternakku/internal/ports/auth"
)

var (
	ErrNotConfigured = errors.New("iam client not configured")
	ErrUnauthorized  = errors.New("iam unauthorized")
	ErrUpstream      = errors.New("iam upstream error")
)

const (
	verifyPath  = "/v1/tokens/verify"
	refreshPath = "/v1/tokens/refresh"
)

type Config struct {
	BaseURL string
	APIKey  string

	// Si está vacío, se usa "X-Api-Key".
	APIKeyHeader string

	Timeout time.Duration
}

type Client struct {
	apiKey       string
	apiKeyHeader string
	http         *httpclient.Client
}

func NewClient(cfg Config) (*Client, error) {
	h := strings.TrimSpace(cfg.APIKeyHeader)
	if h == "" {
		h = "X-Api-Key"
	}
	hc, err := httpclient.NewWithBaseURL(strings.TrimSpace(cfg.BaseURL), cfg.Timeout)
	if err != nil {
		return nil, fmt.Errorf("iam: %w", err)
	}
	return &Client{
		apiKey:       strings.TrimSpace(cfg.APIKey),
		apiKeyHeader: h,
		http:         hc,
	}, nil
}

func (c *Client) IsConfigured() bool {
	return c != nil && c.http.BaseURL != "" && c.apiKey != ""
}

func (c *Client) headers(bearer string) map[string]string {
	h := map[string]string{c.apiKeyHeader: c.apiKey}
	if bearer != "" {
		h["Authorization"] = "Bearer " + bearer
	}
	return h
}

// VerifyToken valida un access token y devuelve sus claims.
func (c *Client) VerifyToken(ctx context.Context, token string) (auth.Claims, error) {
	if !c.IsConfigured() {
		return auth.Claims{}, ErrNotConfigured
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrUnauthorized
	}

	var out struct {
		UserID   string `json:"user_id"`
		Email    string `json:"email"`
		TenantID string `json:"tenant_id"`
	}
	err := c.http.DoJSON(ctx, http.MethodPost, verifyPath, c.headers(token), map[string]string{"token": token}, &out)
	if err != nil {
		return auth.Claims{}, mapErr(err, ErrUnauthorized)
	}

	out.UserID = strings.TrimSpace(out.UserID)
	if out.UserID == "" {
		return auth.Claims{}, fmt.Errorf("%w: response missing user_id", ErrUpstream)
	}
	return auth.Claims{
		UserID:   out.UserID,
		Email:    strings.TrimSpace(out.Email),
		TenantID: strings.TrimSpace(out.TenantID),
	}, nil
}

// RefreshToken canjea un refresh token. 401/403 => auth.ErrInvalidRefreshToken.
func (c *Client) RefreshToken(ctx context.Context, refreshToken string) (auth.TokenPair, error) {
	if !c.IsConfigured() {
		return auth.TokenPair{}, ErrNotConfigured
	}
	refreshToken = strings.TrimSpace(refreshToken)
	if refreshToken == "" {
		return auth.TokenPair{}, auth.ErrInvalidRefreshToken
	}

	var out struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
		ExpiresIn    int    `json:"expires_in"`
	}
	err := c.http.DoJSON(ctx, http.MethodPost, refreshPath, c.headers(""), map[string]string{"refresh_token": refreshToken}, &out)
	if err != nil {
		return auth.TokenPair{}, mapErr(err, auth.ErrInvalidRefreshToken)
	}
	if strings.TrimSpace(out.AccessToken) == "" {
		return auth.TokenPair{}, fmt.Errorf("%w: response missing access_token", ErrUpstream)
	}
	return auth.TokenPair{
		AccessToken:  out.AccessToken,
		RefreshToken: out.RefreshToken,
		ExpiresIn:    out.ExpiresIn,
	}, nil
}

func mapErr(err error, unauthorized error) error {
	switch httpclient.StatusOf(err) {
	case http.StatusUnauthorized, http.StatusForbidden:
		return unauthorized
	case 0:
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	default:
		return fmt.Errorf("%w: status=%d", ErrUpstream, httpclient.StatusOf(err))
	}
}
