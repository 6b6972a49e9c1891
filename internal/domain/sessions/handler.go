package sessions

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Virgo-SSS/Ternakku/internal/platform/httpx"
	"github.com/Virgo-SSS/Ternakku/internal/platform/logger"
	"github.com/Virgo-SSS/Ternakku/internal/platform/validate"
)

// RegisterRoutes monta /auth/refresh. Va fuera de RequireUser: el access token ya expiró.
func RegisterRoutes(r chi.Router, svc *Service, log logger.Logger) {
	r.Post("/auth/refresh", refreshHandler(svc, log))
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	ExpiresIn    int    `json:"expires_in,omitempty"`
}

// @Summary Renovar access token
// @Description Canjea un refresh token en el IAM. Limitado por rate limit.
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body refreshRequest true "Refresh token"
// @Success 200 {object} httpx.Envelope{data=tokenResponse}
// @Failure 400 {object} httpx.Envelope "refresh_token is required"
// @Failure 401 {object} httpx.Envelope "session expired"
// @Failure 429 {object} httpx.Envelope "too many requests"
// @Failure 503 {object} httpx.Envelope "IAM no configurado"
// @Router /auth/refresh [post]
func refreshHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req refreshRequest
		if err := httpx.DecodeJSON(w, r, &req); err != nil {
			httpx.WriteError(w, log, err)
			return
		}
		if err := validate.Struct(req); err != nil {
			httpx.WriteError(w, log, err)
			return
		}

		pair, err := svc.Refresh(r.Context(), req.RefreshToken)
		if err != nil {
			if errors.Is(err, ErrUnavailable) {
				httpx.WriteJSON(w, http.StatusServiceUnavailable, httpx.Envelope{Message: err.Error()})
				return
			}
			httpx.WriteError(w, log, err)
			return
		}
		httpx.WriteData(w, http.StatusOK, tokenResponse{
			AccessToken:  pair.AccessToken,
			RefreshToken: pair.RefreshToken,
			ExpiresIn:    pair.ExpiresIn,
		})
	}
}
