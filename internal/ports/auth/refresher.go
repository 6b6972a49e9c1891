package auth

import (
	"context"
	"errors"
)

// ErrInvalidRefreshToken: el IAM rechazó el refresh token (expirado/revocado).
var ErrInvalidRefreshToken = errors.New("invalid refresh token")

type TokenPair struct {
	AccessToken  string
	RefreshToken string // puede venir vacío si el IAM no rota el refresh token
	ExpiresIn    int    // segundos
}

// TokenRefresher canjea un refresh token por un access token nuevo.
type TokenRefresher interface {
	Refresh(ctx context.Context, refreshToken string) (TokenPair, error)
}
