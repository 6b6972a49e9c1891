package profiles

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Virgo-SSS/Ternakku/internal/middleware"
	"github.com/Virgo-SSS/Ternakku/internal/platform/apperr"
	"github.com/Virgo-SSS/Ternakku/internal/platform/httpx"
	"github.com/Virgo-SSS/Ternakku/internal/platform/logger"
)

func RegisterRoutes(r chi.Router, svc *Service, log logger.Logger) {
	r.Route("/profile", func(pr chi.Router) {
		pr.Post("/", createProfileHandler(svc, log))
		pr.Get("/fields", listFieldsHandler(svc))
		pr.Get("/me", getMyProfileHandler(svc, log))

		pr.Get("/{profileID}", getProfileHandler(svc, log))
		pr.Patch("/{profileID}", updateProfileHandler(svc, log))
	})
}

// profileRequest: keys del Registry (ver GET /profile/fields), valores string.
type profileRequest map[string]any

type profileResponse struct {
	ID        string            `json:"id"`
	UserID    string            `json:"user_id"`
	Fields    map[string]string `json:"fields"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// @Summary Crear perfil
// @Description Crea el perfil del usuario autenticado. Solo se aceptan las keys de GET /profile/fields; cualquier otra devuelve 400.
// @Tags profiles
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param payload body profileRequest true "Campos del perfil"
// @Success 201 {object} httpx.Envelope{data=profileResponse}
// @Failure 400 {object} httpx.Envelope "keys desconocidas / valores inválidos"
// @Failure 401 {object} httpx.Envelope "unauthorized"
// @Router /profile [post]
func createProfileHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			httpx.WriteError(w, log, apperr.Unauthorized(""))
			return
		}

		var req profileRequest
		if err := httpx.DecodeJSON(w, r, &req); err != nil {
			httpx.WriteError(w, log, err)
			return
		}

		p, err := svc.Create(r.Context(), claims.UserID, req)
		if err != nil {
			httpx.WriteError(w, log, err)
			return
		}
		httpx.WriteMessage(w, http.StatusCreated, "profile created", toProfileResponse(p))
	}
}

// @Summary Campos de perfil
// @Description Allow-list de columnas editables con su tipo.
// @Tags profiles
// @Produce json
// @Success 200 {object} httpx.Envelope{data=[]FieldDef}
// @Router /profile/fields [get]
func listFieldsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteData(w, http.StatusOK, svc.Registry().Fields())
	}
}

// @Summary Mi perfil
// @Tags profiles
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Success 200 {object} httpx.Envelope{data=profileResponse}
// @Failure 404 {object} httpx.Envelope "profile not found"
// @Router /profile/me [get]
func getMyProfileHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			httpx.WriteError(w, log, apperr.Unauthorized(""))
			return
		}
		p, err := svc.GetByUser(r.Context(), claims.UserID)
		if err != nil {
			httpx.WriteError(w, log, err)
			return
		}
		httpx.WriteData(w, http.StatusOK, toProfileResponse(p))
	}
}

// @Summary Obtener perfil
// @Tags profiles
// @Produce json
// @Param profileID path string true "ID del perfil"
// @Success 200 {object} httpx.Envelope{data=profileResponse}
// @Failure 404 {object} httpx.Envelope "profile not found"
// @Router /profile/{profileID} [get]
func getProfileHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := svc.GetByID(r.Context(), chi.URLParam(r, "profileID"))
		if err != nil {
			httpx.WriteError(w, log, err)
			return
		}
		httpx.WriteData(w, http.StatusOK, toProfileResponse(p))
	}
}

// @Summary Actualizar perfil
// @Description PATCH: solo las keys enviadas; "" o null limpian el campo.
// @Tags profiles
// @Accept json
// @Produce json
// @Param profileID path string true "ID del perfil"
// @Param payload body profileRequest true "Campos a modificar"
// @Success 200 {object} httpx.Envelope{data=profileResponse}
// @Failure 400 {object} httpx.Envelope "keys desconocidas"
// @Failure 404 {object} httpx.Envelope "profile not found"
// @Router /profile/{profileID} [patch]
func updateProfileHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req profileRequest
		if err := httpx.DecodeJSON(w, r, &req); err != nil {
			httpx.WriteError(w, log, err)
			return
		}

		p, err := svc.Update(r.Context(), chi.URLParam(r, "profileID"), req)
		if err != nil {
			httpx.WriteError(w, log, err)
			return
		}
		httpx.WriteMessage(w, http.StatusOK, "profile updated", toProfileResponse(p))
	}
}

func toProfileResponse(p Profile) profileResponse {
	return profileResponse{
		ID:        p.ID,
		UserID:    p.UserID,
		Fields:    p.Values,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
