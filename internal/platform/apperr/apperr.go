// Package apperr define la taxonomía de errores que los handlers traducen a HTTP.
// Los repositorios y servicios devuelven estos tipos; nunca el error crudo del driver.
package apperr

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ValidationError: falta un campo requerido o viene malformado (4xx).
type ValidationError struct {
	Message string
	Fields  map[string]string // campo -> motivo (opcional)
}

func (e *ValidationError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if len(e.Fields) == 0 {
		return "invalid input"
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, e.Fields[k])
	}
	return strings.Join(parts, "; ")
}

// PersistenceError: el store rechazó el statement (constraint, conectividad).
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	if e.Err == nil {
		return "persistence error: " + e.Op
	}
	return fmt.Sprintf("persistence error: %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// NotFoundError: el target de lectura/mutación/borrado no existe.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	if e.Resource == "" {
		return "not found"
	}
	return e.Resource + " not found"
}

// AuthError: sesión inválida o expirada.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	if e.Message == "" {
		return "unauthorized"
	}
	return e.Message
}

func Invalid(msg string) error {
	return &ValidationError{Message: msg}
}

func InvalidFields(fields map[string]string) error {
	return &ValidationError{Fields: fields}
}

func Persistence(op string, err error) error {
	return &PersistenceError{Op: op, Err: err}
}

func NotFound(resource, id string) error {
	return &NotFoundError{Resource: resource, ID: id}
}

func Unauthorized(msg string) error {
	return &AuthError{Message: msg}
}

func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
