package api

import (
	"errors"
	"strings"

	"github.com/Virgo-SSS/Ternakku/internal/platform/httpclient"
)

// GenericMessage se muestra cuando no hay nada mejor que decirle al usuario.
const GenericMessage = "Something went wrong"

var ErrNoRefreshToken = errors.New("api: session has no refresh token")

// AuthError: la sesión no se pudo recuperar (el refresh falló o el reintento
// volvió a dar 401). Message es el del 401 original.
type AuthError struct {
	Message string
	Err     error
}

func (e *AuthError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "unauthorized"
}

func (e *AuthError) Unwrap() error { return e.Err }

func IsAuth(err error) bool {
	var ae *AuthError
	return errors.As(err, &ae)
}

// ErrorMessage es la única regla para el texto de los diálogos de error:
// message del envelope si vino, si no el error de transporte, si no GenericMessage.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}

	var ae *AuthError
	if errors.As(err, &ae) && ae.Message != "" {
		return ae.Message
	}

	var he *httpclient.HTTPError
	if errors.As(err, &he) {
		if m := strings.TrimSpace(he.Message); m != "" {
			return m
		}
		return GenericMessage
	}

	if m := strings.TrimSpace(err.Error()); m != "" {
		return m
	}
	return GenericMessage
}
