// Package sessions expone /auth/refresh. La emisión de sesiones vive en el IAM;
// aquí solo se hace de proxy para que el frontend no hable con el IAM directo.
package sessions

import (
	"context"
	"errors"
	"strings"

	"github.com/Virgo-SSS/Ternakku/internal/platform/apperr"
	"github.com/Virgo-SSS/Ternakku/internal/ports/auth"
)

var ErrUnavailable = errors.New("token refresh unavailable")

type Service struct {
	refresher auth.TokenRefresher // nil => modo dev sin IAM
}

func NewService(refresher auth.TokenRefresher) *Service {
	return &Service{refresher: refresher}
}

func (s *Service) Refresh(ctx context.Context, refreshToken string) (auth.TokenPair, error) {
	if s.refresher == nil {
		return auth.TokenPair{}, ErrUnavailable
	}
	refreshToken = strings.TrimSpace(refreshToken)
	if refreshToken == "" {
		return auth.TokenPair{}, apperr.InvalidFields(map[string]string{"refresh_token": "refresh_token is required"})
	}

	pair, err := s.refresher.Refresh(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidRefreshToken) {
			return auth.TokenPair{}, apperr.Unauthorized("session expired, please log in again")
		}
		return auth.TokenPair{}, err
	}
	return pair, nil
}
