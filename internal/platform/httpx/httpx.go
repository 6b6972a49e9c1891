// Package httpx concentra el envelope JSON y el mapeo de errores a status.
// Antes writeJSON estaba duplicado por módulo; con cuatro recursos ya conviene compartirlo.
package httpx

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"regexp"

	"github.com/Virgo-SSS/Ternakku/internal/platform/apperr"
	"github.com/Virgo-SSS/Ternakku/internal/platform/logger"
)

// MaxBodyBytes limita los payloads JSON.
const MaxBodyBytes = 1 << 20

// Envelope es la forma común de todas las respuestas: { message, data } o { message }.
type Envelope struct {
	Message string            `json:"message,omitempty"`
	Data    any               `json:"data,omitempty"`
	Detail  string            `json:"detail,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteData responde { data } (listados y lecturas).
func WriteData(w http.ResponseWriter, status int, data any) {
	WriteJSON(w, status, Envelope{Data: data})
}

// WriteMessage responde { message, data? } (mutaciones).
func WriteMessage(w http.ResponseWriter, status int, msg string, data any) {
	WriteJSON(w, status, Envelope{Message: msg, Data: data})
}

// WriteError traduce la taxonomía de apperr a status + envelope.
// Nunca expone el error crudo del driver: solo un detail saneado.
func WriteError(w http.ResponseWriter, log logger.Logger, err error) {
	var (
		ve *apperr.ValidationError
		ae *apperr.AuthError
		nf *apperr.NotFoundError
		pe *apperr.PersistenceError
	)

	switch {
	case errors.As(err, &ve):
		WriteJSON(w, http.StatusBadRequest, Envelope{Message: ve.Error(), Errors: ve.Fields})
	case errors.As(err, &ae):
		WriteJSON(w, http.StatusUnauthorized, Envelope{Message: ae.Error()})
	case errors.As(err, &nf):
		WriteJSON(w, http.StatusNotFound, Envelope{Message: nf.Error()})
	case errors.As(err, &pe):
		if log != nil {
			log.Error("persistence error", map[string]any{"op": pe.Op, "err": Sanitize(errString(pe.Err))})
		}
		WriteJSON(w, http.StatusInternalServerError, Envelope{
			Message: "failed to process data",
			Detail:  Sanitize(errString(pe.Err)),
		})
	default:
		if log != nil {
			log.Error("unexpected error", map[string]any{"err": Sanitize(errString(err))})
		}
		WriteJSON(w, http.StatusInternalServerError, Envelope{Message: "internal error"})
	}
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

var secretRes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(password\s*=\s*)\S+`),
	regexp.MustCompile(`(?i)(://[^:/@\s]+:)[^@\s]+(@)`),
}

// Sanitize tapa passwords que los drivers incluyen al reportar fallas de conexión.
func Sanitize(s string) string {
	s = secretRes[0].ReplaceAllString(s, "${1}***")
	s = secretRes[1].ReplaceAllString(s, "${1}***${2}")
	return s
}

// DecodeJSON decodifica el body limitado a MaxBodyBytes.
// Body vacío o JSON inválido => ValidationError.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return apperr.Invalid("request body is required")
		}
		return apperr.Invalid("invalid json")
	}
	return nil
}
