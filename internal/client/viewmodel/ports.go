// Package viewmodel modela las páginas de lista y formulario como máquinas
// de estado, independientes de cómo se dibujen (farmctl usa la terminal).
package viewmodel

import (
	"context"
	"time"

	"github.com/Virgo-SSS/Ternakku/internal/platform/query"
)

// Dialog muestra el resultado de una acción al usuario.
type Dialog interface {
	Success(msg string)
	Error(msg string)
}

// Confirmer pide confirmación explícita antes de una acción destructiva.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) bool
}

type Navigator interface {
	Navigate(path string)
}

// Rutas de la app cliente.
const (
	PathCows         = "/ternak"
	PathWorkers      = "/pekerja"
	PathTransactions = "/keuangan"
)

// EncodeDateRange arma el valor de un filtro de fecha tal como lo manda el
// selector de rango. Con end cero, es una fecha exacta.
func EncodeDateRange(start, end time.Time) string {
	if start.IsZero() {
		return ""
	}
	if end.IsZero() {
		return query.DateValue(start)
	}
	return query.DateValue(start) + " to " + query.DateValue(end)
}
