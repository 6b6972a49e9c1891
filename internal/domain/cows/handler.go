package cows

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Virgo-SSS/Ternakku/internal/platform/httpx"
	"github.com/Virgo-SSS/Ternakku/internal/platform/logger"
	"github.com/Virgo-SSS/Ternakku/internal/platform/query"
	"github.com/Virgo-SSS/Ternakku/internal/platform/validate"
)

// RegisterRoutes monta /cow. La autenticación la exige el router (RequireUser).
func RegisterRoutes(r chi.Router, svc *Service, log logger.Logger) {
	r.Route("/cow", func(cr chi.Router) {
		cr.Get("/", listCowsHandler(svc, log))
		cr.Post("/", createCowHandler(svc, log))
		cr.Get("/statuses", listStatusesHandler())

		cr.Get("/{cowID}", getCowHandler(svc, log))
		cr.Put("/{cowID}", replaceCowHandler(svc, log))
		cr.Patch("/{cowID}", updateCowHandler(svc, log))
		cr.Delete("/{cowID}", deleteCowHandler(svc, log))

		cr.Put("/{cowID}/photo", putPhotoHandler(svc, log))
		cr.Get("/{cowID}/photo", getPhotoHandler(svc, log))
	})
}

type cowRequest struct {
	Name      string  `json:"name" validate:"required,max=100"`
	Status    string  `json:"status" validate:"required,oneof=healthy sick pregnant quarantine sold dead"`
	Gender    string  `json:"gender" validate:"required,oneof=M F"`
	BirthDate string  `json:"birth_date" validate:"required,datetime=2006-01-02"` // YYYY-MM-DD
	Weight    float64 `json:"weight" validate:"gt=0"`
	Type      string  `json:"type" validate:"required,max=100"`
}

type patchCowRequest struct {
	// Punteros para PATCH real: nil = no tocar.
	Name      *string  `json:"name" validate:"omitempty,max=100"`
	Status    *string  `json:"status" validate:"omitempty,oneof=healthy sick pregnant quarantine sold dead"`
	Gender    *string  `json:"gender" validate:"omitempty,oneof=M F"`
	BirthDate *string  `json:"birth_date" validate:"omitempty,datetime=2006-01-02"`
	Weight    *float64 `json:"weight"`
	Type      *string  `json:"type" validate:"omitempty,max=100"`
}

type cowResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Status      Status    `json:"status"`
	StatusLabel string    `json:"status_label"`
	Gender      Gender    `json:"gender"`
	BirthDate   string    `json:"birth_date"`
	Weight      float64   `json:"weight"`
	Type        string    `json:"type"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type statusOption struct {
	Value Status `json:"value"`
	Label string `json:"label"`
}

type photoResponse struct {
	ContentType string    `json:"content_type"`
	Size        int64     `json:"size"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (req cowRequest) toInput() CreateInput {
	// datetime ya fue validado
	bd, _ := time.Parse(query.DateLayout, req.BirthDate)
	return CreateInput{
		Name:      req.Name,
		Status:    Status(req.Status),
		Gender:    Gender(req.Gender),
		BirthDate: bd,
		Weight:    req.Weight,
		Type:      req.Type,
	}
}

func (req patchCowRequest) toInput() UpdateInput {
	in := UpdateInput{Name: req.Name, Weight: req.Weight, Type: req.Type}
	if req.Status != nil {
		s := Status(*req.Status)
		in.Status = &s
	}
	if req.Gender != nil {
		g := Gender(*req.Gender)
		in.Gender = &g
	}
	if req.BirthDate != nil {
		bd, _ := time.Parse(query.DateLayout, *req.BirthDate)
		in.BirthDate = &bd
	}
	return in
}

// @Summary Listar vacas
// @Description Lista el inventario de ganado. Todos los filtros son opcionales; los vacíos se ignoran. `birth_date` acepta una fecha o un rango `YYYY-MM-DD to YYYY-MM-DD` (también `YYYY-MM-DD - YYYY-MM-DD`). Autenticación: `X-Debug-User-ID` (dev) o `Authorization: Bearer <token>` (prod).
// @Tags cows
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param name query string false "Texto contenido en el nombre (sin distinguir mayúsculas)"
// @Param status query string false "Estado exacto" Enums(healthy, sick, pregnant, quarantine, sold, dead)
// @Param birth_date query string false "Fecha o rango de nacimiento"
// @Param gender query string false "M o F" Enums(M, F)
// @Param limit query int false "Máximo a devolver (1-200). Por defecto 50"
// @Param offset query int false "Desplazamiento"
// @Success 200 {object} httpx.Envelope{data=[]cowResponse}
// @Failure 400 {object} httpx.Envelope "filtro inválido"
// @Failure 401 {object} httpx.Envelope "unauthorized"
// @Failure 500 {object} httpx.Envelope "failed to process data"
// @Router /cow [get]
func listCowsHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context(), query.ParamsFromValues(r.URL.Query()))
		if err != nil {
			httpx.WriteError(w, log, err)
			return
		}

		out := make([]cowResponse, 0, len(items))
		for _, c := range items {
			out = append(out, toCowResponse(c))
		}
		httpx.WriteData(w, http.StatusOK, out)
	}
}

// @Summary Crear vaca
// @Description Registra un animal. Campos requeridos: name, status, gender, birth_date, weight, type.
// @Tags cows
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param payload body cowRequest true "Datos del animal"
// @Success 201 {object} httpx.Envelope{data=cowResponse}
// @Failure 400 {object} httpx.Envelope "invalid json / campos faltantes"
// @Failure 401 {object} httpx.Envelope "unauthorized"
// @Failure 500 {object} httpx.Envelope "failed to process data"
// @Router /cow [post]
func createCowHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req cowRequest
		if err := httpx.DecodeJSON(w, r, &req); err != nil {
			httpx.WriteError(w, log, err)
			return
		}
		if err := validate.Struct(req); err != nil {
			httpx.WriteError(w, log, err)
			return
		}

		c, err := svc.Create(r.Context(), req.toInput())
		if err != nil {
			httpx.WriteError(w, log, err)
			return
		}
		httpx.WriteMessage(w, http.StatusCreated, "cow created", toCowResponse(c))
	}
}

// @Summary Estados de vaca
// @Description Valores de status con su etiqueta para la UI.
// @Tags cows
// @Produce json
// @Success 200 {object} httpx.Envelope{data=[]statusOption}
// @Router /cow/statuses [get]
func listStatusesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out := make([]statusOption, 0, len(allStatuses))
		for _, s := range AllStatuses() {
			out = append(out, statusOption{Value: s, Label: StatusLabel(s)})
		}
		httpx.WriteData(w, http.StatusOK, out)
	}
}

// @Summary Obtener vaca
// @Tags cows
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param cowID path string true "ID de la vaca"
// @Success 200 {object} httpx.Envelope{data=cowResponse}
// @Failure 401 {object} httpx.Envelope "unauthorized"
// @Failure 404 {object} httpx.Envelope "cow not found"
// @Router /cow/{cowID} [get]
func getCowHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := svc.GetByID(r.Context(), chi.URLParam(r, "cowID"))
		if err != nil {
			httpx.WriteError(w, log, err)
			return
		}
		httpx.WriteData(w, http.StatusOK, toCowResponse(c))
	}
}

// @Summary Reemplazar vaca
// @Description PUT: mismos campos requeridos que el alta.
// @Tags cows
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param cowID path string true "ID de la vaca"
// @Param payload body cowRequest true "Datos del animal"
// @Success 200 {object} httpx.Envelope{data=cowResponse}
// @Failure 400 {object} httpx.Envelope "invalid json / campos faltantes"
// @Failure 404 {object} httpx.Envelope "cow not found"
// @Router /cow/{cowID} [put]
func replaceCowHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req cowRequest
		if err := httpx.DecodeJSON(w, r, &req); err != nil {
			httpx.WriteError(w, log, err)
			return
		}
		if err := validate.Struct(req); err != nil {
			httpx.WriteError(w, log, err)
			return
		}

		c, err := svc.Replace(r.Context(), chi.URLParam(r, "cowID"), req.toInput())
		if err != nil {
			httpx.WriteError(w, log, err)
			return
		}
		httpx.WriteMessage(w, http.StatusOK, "cow updated", toCowResponse(c))
	}
}

// @Summary Actualizar vaca
// @Description PATCH parcial: solo se tocan los campos enviados.
// @Tags cows
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param cowID path string true "ID de la vaca"
// @Param payload body patchCowRequest true "Campos a modificar"
// @Success 200 {object} httpx.Envelope{data=cowResponse}
// @Failure 400 {object} httpx.Envelope "invalid json / sin campos"
// @Failure 404 {object} httpx.Envelope "cow not found"
// @Router /cow/{cowID} [patch]
func updateCowHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req patchCowRequest
		if err := httpx.DecodeJSON(w, r, &req); err != nil {
			httpx.WriteError(w, log, err)
			return
		}
		if err := validate.Struct(req); err != nil {
			httpx.WriteError(w, log, err)
			return
		}

		c, err := svc.Update(r.Context(), chi.URLParam(r, "cowID"), req.toInput())
		if err != nil {
			httpx.WriteError(w, log, err)
			return
		}
		httpx.WriteMessage(w, http.StatusOK, "cow updated", toCowResponse(c))
	}
}

// @Summary Borrar vaca
// @Tags cows
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param cowID path string true "ID de la vaca"
// @Success 200 {object} httpx.Envelope
// @Failure 404 {object} httpx.Envelope "cow not found"
// @Router /cow/{cowID} [delete]
func deleteCowHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), chi.URLParam(r, "cowID")); err != nil {
			httpx.WriteError(w, log, err)
			return
		}
		httpx.WriteMessage(w, http.StatusOK, "cow deleted", nil)
	}
}

// @Summary Subir foto
// @Description multipart/form-data con el archivo en el campo `photo` (máx 5 MiB). También acepta el body crudo con Content-Type image/*.
// @Tags cows
// @Accept multipart/form-data
// @Produce json
// @Param cowID path string true "ID de la vaca"
// @Param photo formData file true "Imagen"
// @Success 200 {object} httpx.Envelope{data=photoResponse}
// @Failure 400 {object} httpx.Envelope "no es una imagen"
// @Failure 404 {object} httpx.Envelope "cow not found"
// @Failure 501 {object} httpx.Envelope "storage no configurado"
// @Router /cow/{cowID}/photo [put]
func putPhotoHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, MaxPhotoBytes+(64<<10))

		var (
			body        io.Reader = r.Body
			contentType           = r.Header.Get("Content-Type")
		)
		if strings.HasPrefix(contentType, "multipart/form-data") {
			f, fh, err := r.FormFile("photo")
			if err != nil {
				httpx.WriteJSON(w, http.StatusBadRequest, httpx.Envelope{Message: "photo is required"})
				return
			}
			defer f.Close()
			body = f
			contentType = fh.Header.Get("Content-Type")
		}

		info, err := svc.PutPhoto(r.Context(), chi.URLParam(r, "cowID"), body, contentType)
		if err != nil {
			writePhotoError(w, log, err)
			return
		}
		httpx.WriteMessage(w, http.StatusOK, "photo saved", photoResponse{
			ContentType: info.ContentType,
			Size:        info.Size,
			UpdatedAt:   info.UpdatedAt,
		})
	}
}

// @Summary Descargar foto
// @Tags cows
// @Produce image/jpeg
// @Produce image/png
// @Param cowID path string true "ID de la vaca"
// @Success 200 {file} file
// @Failure 404 {object} httpx.Envelope "photo not found"
// @Router /cow/{cowID}/photo [get]
func getPhotoHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		info, rc, err := svc.Photo(r.Context(), chi.URLParam(r, "cowID"))
		if err != nil {
			writePhotoError(w, log, err)
			return
		}
		defer rc.Close()

		if info.ContentType != "" {
			w.Header().Set("Content-Type", info.ContentType)
		}
		if info.Size > 0 {
			w.Header().Set("Content-Length", strconv.FormatInt(info.Size, 10))
		}
		w.WriteHeader(http.StatusOK)
		_, _ = io.Copy(w, rc)
	}
}

func writePhotoError(w http.ResponseWriter, log logger.Logger, err error) {
	if errors.Is(err, ErrPhotosDisabled) {
		httpx.WriteJSON(w, http.StatusNotImplemented, httpx.Envelope{Message: err.Error()})
		return
	}
	httpx.WriteError(w, log, err)
}

func toCowResponse(c Cow) cowResponse {
	return cowResponse{
		ID:          c.ID,
		Name:        c.Name,
		Status:      c.Status,
		StatusLabel: StatusLabel(c.Status),
		Gender:      c.Gender,
		BirthDate:   query.DateValue(c.BirthDate),
		Weight:      c.Weight,
		Type:        c.Type,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
