package workers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Virgo-SSS/Ternakku/internal/platform/httpx"
	"github.com/Virgo-SSS/Ternakku/internal/platform/logger"
	"github.com/Virgo-SSS/Ternakku/internal/platform/query"
	"github.com/Virgo-SSS/Ternakku/internal/platform/validate"
)

func RegisterRoutes(r chi.Router, svc *Service, log logger.Logger) {
	r.Route("/worker", func(wr chi.Router) {
		wr.Get("/", listWorkersHandler(svc, log))
		wr.Post("/", createWorkerHandler(svc, log))

		wr.Get("/{workerID}", getWorkerHandler(svc, log))
		wr.Put("/{workerID}", replaceWorkerHandler(svc, log))
		wr.Patch("/{workerID}", updateWorkerHandler(svc, log))
		wr.Delete("/{workerID}", deleteWorkerHandler(svc, log))
	})
}

type workerRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Gender      string `json:"gender" validate:"required,oneof=M F"`
	PhoneNumber string `json:"phone_number" validate:"required,numeric,max=20"`
	Email       string `json:"email" validate:"required,email"`
}

type patchWorkerRequest struct {
	Name        *string `json:"name" validate:"omitempty,max=100"`
	Gender      *string `json:"gender" validate:"omitempty,oneof=M F"`
	PhoneNumber *string `json:"phone_number" validate:"omitempty,numeric,max=20"`
	Email       *string `json:"email" validate:"omitempty,email"`
}

type workerResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Gender      Gender    `json:"gender"`
	GenderLabel string    `json:"gender_label"`
	PhoneNumber string    `json:"phone_number"`
	Email       string    `json:"email"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (req workerRequest) toInput() CreateInput {
	return CreateInput{
		Name:        req.Name,
		Gender:      Gender(req.Gender),
		PhoneNumber: req.PhoneNumber,
		Email:       req.Email,
	}
}

func (req patchWorkerRequest) toInput() UpdateInput {
	in := UpdateInput{Name: req.Name, PhoneNumber: req.PhoneNumber, Email: req.Email}
	if req.Gender != nil {
		g := Gender(*req.Gender)
		in.Gender = &g
	}
	return in
}

// @Summary Listar pekerja
// @Description Lista los trabajadores. Filtros opcionales; vacíos se ignoran.
// @Tags workers
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param name query string false "Texto contenido en el nombre"
// @Param gender query string false "M o F" Enums(M, F)
// @Param limit query int false "Máximo a devolver (1-200). Por defecto 50"
// @Param offset query int false "Desplazamiento"
// @Success 200 {object} httpx.Envelope{data=[]workerResponse}
// @Failure 401 {object} httpx.Envelope "unauthorized"
// @Failure 500 {object} httpx.Envelope "failed to process data"
// @Router /worker [get]
func listWorkersHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context(), query.ParamsFromValues(r.URL.Query()))
		if err != nil {
			httpx.WriteError(w, log, err)
			return
		}

		out := make([]workerResponse, 0, len(items))
		for _, wk := range items {
			out = append(out, toWorkerResponse(wk))
		}
		httpx.WriteData(w, http.StatusOK, out)
	}
}

// @Summary Crear pekerja
// @Description Campos requeridos: name, gender, phone_number (solo dígitos), email.
// @Tags workers
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param payload body workerRequest true "Datos del trabajador"
// @Success 201 {object} httpx.Envelope{data=workerResponse}
// @Failure 400 {object} httpx.Envelope "invalid json / campos faltantes"
// @Failure 401 {object} httpx.Envelope "unauthorized"
// @Router /worker [post]
func createWorkerHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req workerRequest
		if err := httpx.DecodeJSON(w, r, &req); err != nil {
			httpx.WriteError(w, log, err)
			return
		}
		if err := validate.Struct(req); err != nil {
			httpx.WriteError(w, log, err)
			return
		}

		wk, err := svc.Create(r.Context(), req.toInput())
		if err != nil {
			httpx.WriteError(w, log, err)
			return
		}
		httpx.WriteMessage(w, http.StatusCreated, "worker created", toWorkerResponse(wk))
	}
}

// @Summary Obtener pekerja
// @Tags workers
// @Produce json
// @Param workerID path string true "ID del trabajador"
// @Success 200 {object} httpx.Envelope{data=workerResponse}
// @Failure 404 {object} httpx.Envelope "worker not found"
// @Router /worker/{workerID} [get]
func getWorkerHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		wk, err := svc.GetByID(r.Context(), chi.URLParam(r, "workerID"))
		if err != nil {
			httpx.WriteError(w, log, err)
			return
		}
		httpx.WriteData(w, http.StatusOK, toWorkerResponse(wk))
	}
}

// @Summary Reemplazar pekerja
// @Tags workers
// @Accept json
// @Produce json
// @Param workerID path string true "ID del trabajador"
// @Param payload body workerRequest true "Datos del trabajador"
// @Success 200 {object} httpx.Envelope{data=workerResponse}
// @Failure 400 {object} httpx.Envelope "campos faltantes"
// @Failure 404 {object} httpx.Envelope "worker not found"
// @Router /worker/{workerID} [put]
func replaceWorkerHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req workerRequest
		if err := httpx.DecodeJSON(w, r, &req); err != nil {
			httpx.WriteError(w, log, err)
			return
		}
		if err := validate.Struct(req); err != nil {
			httpx.WriteError(w, log, err)
			return
		}

		wk, err := svc.Replace(r.Context(), chi.URLParam(r, "workerID"), req.toInput())
		if err != nil {
			httpx.WriteError(w, log, err)
			return
		}
		httpx.WriteMessage(w, http.StatusOK, "worker updated", toWorkerResponse(wk))
	}
}

// @Summary Actualizar pekerja
// @Tags workers
// @Accept json
// @Produce json
// @Param workerID path string true "ID del trabajador"
// @Param payload body patchWorkerRequest true "Campos a modificar"
// @Success 200 {object} httpx.Envelope{data=workerResponse}
// @Failure 400 {object} httpx.Envelope "sin campos / formato inválido"
// @Failure 404 {object} httpx.Envelope "worker not found"
// @Router /worker/{workerID} [patch]
func updateWorkerHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req patchWorkerRequest
		if err := httpx.DecodeJSON(w, r, &req); err != nil {
			httpx.WriteError(w, log, err)
			return
		}
		if err := validate.Struct(req); err != nil {
			httpx.WriteError(w, log, err)
			return
		}

		wk, err := svc.Update(r.Context(), chi.URLParam(r, "workerID"), req.toInput())
		if err != nil {
			httpx.WriteError(w, log, err)
			return
		}
		httpx.WriteMessage(w, http.StatusOK, "worker updated", toWorkerResponse(wk))
	}
}

// @Summary Borrar pekerja
// @Tags workers
// @Produce json
// @Param workerID path string true "ID del trabajador"
// @Success 200 {object} httpx.Envelope
// @Failure 404 {object} httpx.Envelope "worker not found"
// @Router /worker/{workerID} [delete]
func deleteWorkerHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), chi.URLParam(r, "workerID")); err != nil {
			httpx.WriteError(w, log, err)
			return
		}
		httpx.WriteMessage(w, http.StatusOK, "worker deleted", nil)
	}
}

func toWorkerResponse(wk Worker) workerResponse {
	return workerResponse{
		ID:          wk.ID,
		Name:        wk.Name,
		Gender:      wk.Gender,
		GenderLabel: wk.Gender.Label(),
		PhoneNumber: wk.PhoneNumber,
		Email:       wk.Email,
		CreatedAt:   wk.CreatedAt,
		UpdatedAt:   wk.UpdatedAt,
	}
}
