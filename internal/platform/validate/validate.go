// Package validate envuelve go-playground/validator y traduce sus errores
// a apperr.ValidationError con el nombre JSON del campo.
package validate

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Virgo-SSS/Ternakku/internal/platform/apperr"
)

var v *validator.Validate

func init() {
	v = validator.New(validator.WithRequiredStructEnabled())

	// Los mensajes usan el nombre del tag json, que es lo que ve el cliente.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
}

// Struct valida s. Devuelve nil o un *apperr.ValidationError.
func Struct(s any) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperr.Invalid(err.Error())
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = message(fe)
	}
	return apperr.InvalidFields(fields)
}

func message(fe validator.FieldError) string {
	f := fe.Field()
	switch fe.Tag() {
	case "required":
		return f + " is required"
	case "oneof":
		return f + " must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "email":
		return f + " must be a valid email"
	case "numeric":
		return f + " must contain digits only"
	case "gt":
		return f + " must be greater than " + fe.Param()
	case "gte":
		return f + " must be at least " + fe.Param()
	case "max":
		return f + " is too long"
	case "datetime":
		return f + " must be YYYY-MM-DD"
	default:
		return f + " is invalid"
	}
}
