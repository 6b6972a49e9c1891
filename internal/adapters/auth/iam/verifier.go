package iam

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Virgo-SSS/Ternakku/internal/ports/auth"
)

var ErrTokenEmpty = errors.New("token is empty")

// Verifier implementa auth.AuthVerifier.
type Verifier struct {
	client *Client
}

func NewVerifier(client *Client) *Verifier {
	return &Verifier{client: client}
}

func (v *Verifier) Verify(ctx context.Context, token string) (auth.Claims, error) {
	if v == nil || v.client == nil {
		return auth.Claims{}, ErrNotConfigured
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrTokenEmpty
	}

	claims, err := v.client.VerifyToken(ctx, token)
	if err != nil {
		return auth.Claims{}, fmt.Errorf("iam verify failed: %w", err)
	}
	return claims, nil
}

// Refresher implementa auth.TokenRefresher.
type Refresher struct {
	client *Client
}

func NewRefresher(client *Client) *Refresher {
	return &Refresher{client: client}
}

func (r *Refresher) Refresh(ctx context.Context, refreshToken string) (auth.TokenPair, error) {
	if r == nil || r.client == nil {
		return auth.TokenPair{}, ErrNotConfigured
	}
	return r.client.RefreshToken(ctx, refreshToken)
}
