package transactions

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Virgo-SSS/Ternakku/internal/platform/httpx"
	"github.com/Virgo-SSS/Ternakku/internal/platform/logger"
	"github.com/Virgo-SSS/Ternakku/internal/platform/query"
	"github.com/Virgo-SSS/Ternakku/internal/platform/validate"
)

// RegisterRoutes monta /keuangan (nombre de ruta heredado del frontend).
func RegisterRoutes(r chi.Router, svc *Service, log logger.Logger) {
	r.Route("/keuangan", func(kr chi.Router) {
		kr.Get("/", listTransactionsHandler(svc, log))
		kr.Post("/", createTransactionHandler(svc, log))
		kr.Get("/summary", summaryHandler(svc, log))

		kr.Get("/{transactionID}", getTransactionHandler(svc, log))
		kr.Put("/{transactionID}", replaceTransactionHandler(svc, log))
		kr.Patch("/{transactionID}", updateTransactionHandler(svc, log))
		kr.Delete("/{transactionID}", deleteTransactionHandler(svc, log))
	})
}

type transactionRequest struct {
	Type            string  `json:"type" validate:"required,oneof=income expense"`
	Amount          float64 `json:"amount" validate:"gt=0"`
	Category        string  `json:"category" validate:"max=50"`
	TransactionDate string  `json:"transaction_date" validate:"required,datetime=2006-01-02"`
	Description     string  `json:"description" validate:"max=500"`
}

type patchTransactionRequest struct {
	Type            *string  `json:"type" validate:"omitempty,oneof=income expense"`
	Amount          *float64 `json:"amount"`
	Category        *string  `json:"category" validate:"omitempty,max=50"`
	TransactionDate *string  `json:"transaction_date" validate:"omitempty,datetime=2006-01-02"`
	Description     *string  `json:"description" validate:"omitempty,max=500"`
}

type transactionResponse struct {
	ID              string    `json:"id"`
	Type            Type      `json:"type"`
	TypeLabel       string    `json:"type_label"`
	Amount          float64   `json:"amount"`
	Category        string    `json:"category"`
	TransactionDate string    `json:"transaction_date"`
	Description     string    `json:"description"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type summaryResponse struct {
	Income     float64            `json:"income"`
	Expense    float64            `json:"expense"`
	Balance    float64            `json:"balance"`
	Count      int                `json:"count"`
	ByCategory map[string]float64 `json:"by_category"`
}

func (req transactionRequest) toInput() CreateInput {
	td, _ := time.Parse(query.DateLayout, req.TransactionDate)
	return CreateInput{
		Type:            Type(req.Type),
		Amount:          req.Amount,
		Category:        req.Category,
		TransactionDate: td,
		Description:     req.Description,
	}
}

func (req patchTransactionRequest) toInput() UpdateInput {
	in := UpdateInput{Amount: req.Amount, Category: req.Category, Description: req.Description}
	if req.Type != nil {
		t := Type(*req.Type)
		in.Type = &t
	}
	if req.TransactionDate != nil {
		td, _ := time.Parse(query.DateLayout, *req.TransactionDate)
		in.TransactionDate = &td
	}
	return in
}

// @Summary Listar transacciones
// @Description Movimientos de keuangan. `transaction_date` acepta fecha o rango `YYYY-MM-DD to YYYY-MM-DD`.
// @Tags transactions
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param type query string false "income o expense" Enums(income, expense)
// @Param category query string false "Categoría exacta"
// @Param transaction_date query string false "Fecha o rango"
// @Param limit query int false "Máximo a devolver (1-200). Por defecto 50"
// @Param offset query int false "Desplazamiento"
// @Success 200 {object} httpx.Envelope{data=[]transactionResponse}
// @Failure 400 {object} httpx.Envelope "filtro inválido"
// @Failure 401 {object} httpx.Envelope "unauthorized"
// @Router /keuangan [get]
func listTransactionsHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context(), query.ParamsFromValues(r.URL.Query()))
		if err != nil {
			httpx.WriteError(w, log, err)
			return
		}

		out := make([]transactionResponse, 0, len(items))
		for _, t := range items {
			out = append(out, toTransactionResponse(t))
		}
		httpx.WriteData(w, http.StatusOK, out)
	}
}

// @Summary Resumen de keuangan
// @Description Totales de ingresos, egresos y balance. Acepta los mismos filtros que el listado (sin paginar).
// @Tags transactions
// @Produce json
// @Param type query string false "income o expense"
// @Param category query string false "Categoría exacta"
// @Param transaction_date query string false "Fecha o rango"
// @Success 200 {object} httpx.Envelope{data=summaryResponse}
// @Router /keuangan/summary [get]
func summaryHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, err := svc.Summary(r.Context(), query.ParamsFromValues(r.URL.Query()))
		if err != nil {
			httpx.WriteError(w, log, err)
			return
		}
		httpx.WriteData(w, http.StatusOK, summaryResponse{
			Income:     s.Income,
			Expense:    s.Expense,
			Balance:    s.Balance,
			Count:      s.Count,
			ByCategory: s.ByCategory,
		})
	}
}

// @Summary Crear transacción
// @Description Campos requeridos: type (income|expense), amount > 0, transaction_date.
// @Tags transactions
// @Accept json
// @Produce json
// @Param payload body transactionRequest true "Movimiento"
// @Success 201 {object} httpx.Envelope{data=transactionResponse}
// @Failure 400 {object} httpx.Envelope "campos faltantes"
// @Router /keuangan [post]
func createTransactionHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req transactionRequest
		if err := httpx.DecodeJSON(w, r, &req); err != nil {
			httpx.WriteError(w, log, err)
			return
		}
		if err := validate.Struct(req); err != nil {
			httpx.WriteError(w, log, err)
			return
		}

		t, err := svc.Create(r.Context(), req.toInput())
		if err != nil {
			httpx.WriteError(w, log, err)
			return
		}
		httpx.WriteMessage(w, http.StatusCreated, "transaction created", toTransactionResponse(t))
	}
}

// @Summary Obtener transacción
// @Tags transactions
// @Produce json
// @Param transactionID path string true "ID de la transacción"
// @Success 200 {object} httpx.Envelope{data=transactionResponse}
// @Failure 404 {object} httpx.Envelope "transaction not found"
// @Router /keuangan/{transactionID} [get]
func getTransactionHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t, err := svc.GetByID(r.Context(), chi.URLParam(r, "transactionID"))
		if err != nil {
			httpx.WriteError(w, log, err)
			return
		}
		httpx.WriteData(w, http.StatusOK, toTransactionResponse(t))
	}
}

// @Summary Reemplazar transacción
// @Tags transactions
// @Accept json
// @Produce json
// @Param transactionID path string true "ID de la transacción"
// @Param payload body transactionRequest true "Movimiento"
// @Success 200 {object} httpx.Envelope{data=transactionResponse}
// @Failure 404 {object} httpx.Envelope "transaction not found"
// @Router /keuangan/{transactionID} [put]
func replaceTransactionHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req transactionRequest
		if err := httpx.DecodeJSON(w, r, &req); err != nil {
			httpx.WriteError(w, log, err)
			return
		}
		if err := validate.Struct(req); err != nil {
			httpx.WriteError(w, log, err)
			return
		}

		t, err := svc.Replace(r.Context(), chi.URLParam(r, "transactionID"), req.toInput())
		if err != nil {
			httpx.WriteError(w, log, err)
			return
		}
		httpx.WriteMessage(w, http.StatusOK, "transaction updated", toTransactionResponse(t))
	}
}

// @Summary Actualizar transacción
// @Tags transactions
// @Accept json
// @Produce json
// @Param transactionID path string true "ID de la transacción"
// @Param payload body patchTransactionRequest true "Campos a modificar"
// @Success 200 {object} httpx.Envelope{data=transactionResponse}
// @Failure 404 {object} httpx.Envelope "transaction not found"
// @Router /keuangan/{transactionID} [patch]
func updateTransactionHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req patchTransactionRequest
		if err := httpx.DecodeJSON(w, r, &req); err != nil {
			httpx.WriteError(w, log, err)
			return
		}
		if err := validate.Struct(req); err != nil {
			httpx.WriteError(w, log, err)
			return
		}

		t, err := svc.Update(r.Context(), chi.URLParam(r, "transactionID"), req.toInput())
		if err != nil {
			httpx.WriteError(w, log, err)
			return
		}
		httpx.WriteMessage(w, http.StatusOK, "transaction updated", toTransactionResponse(t))
	}
}

// @Summary Borrar transacción
// @Tags transactions
// @Produce json
// @Param transactionID path string true "ID de la transacción"
// @Success 200 {object} httpx.Envelope
// @Failure 404 {object} httpx.Envelope "transaction not found"
// @Router /keuangan/{transactionID} [delete]
func deleteTransactionHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), chi.URLParam(r, "transactionID")); err != nil {
			httpx.WriteError(w, log, err)
			return
		}
		httpx.WriteMessage(w, http.StatusOK, "transaction deleted", nil)
	}
}

func toTransactionResponse(t Transaction) transactionResponse {
	return transactionResponse{
		ID:              t.ID,
		Type:            t.Type,
		TypeLabel:       t.Type.Label(),
		Amount:          t.Amount,
		Category:        t.Category,
		TransactionDate: query.DateValue(t.TransactionDate),
		Description:     t.Description,
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       t.UpdatedAt,
	}
}
