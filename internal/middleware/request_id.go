package middleware

import (
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// RequestIDHeader es el header donde devolvemos el id generado por chimw.RequestID.
const RequestIDHeader = "X-Request-ID"

// RequestID genera (o respeta) el request id vía chi y lo devuelve al cliente
// para poder cruzarlo con los logs.
func RequestID(next http.Handler) http.Handler {
	return chimw.RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id := chimw.GetReqID(r.Context()); id != "" {
			w.Header().Set(RequestIDHeader, id)
		}
		next.ServeHTTP(w, r)
	}))
}
