package query

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Field es un par columna/valor.
type Field struct {
	Column string
	Value  any
}

// Fields es un mapa ordenado: el orden de inserción es el orden de columnas
// y de argumentos en el statement.
type Fields []Field

// Set agrega o reemplaza (manteniendo la posición original).
func (f *Fields) Set(column string, value any) {
	for i := range *f {
		if (*f)[i].Column == column {
			(*f)[i].Value = value
			return
		}
	}
	*f = append(*f, Field{Column: column, Value: value})
}

func (f Fields) Get(column string) (any, bool) {
	for _, fd := range f {
		if fd.Column == column {
			return fd.Value, true
		}
	}
	return nil, false
}

func (f Fields) Keys() []string {
	out := make([]string, 0, len(f))
	for _, fd := range f {
		out = append(out, fd.Column)
	}
	return out
}

func (f Fields) Values() []any {
	out := make([]any, 0, len(f))
	for _, fd := range f {
		out = append(out, fd.Value)
	}
	return out
}

// FieldsFromMap ordena las keys alfabéticamente para que el statement sea estable.
func FieldsFromMap(m map[string]any) Fields {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make(Fields, 0, len(keys))
	for _, k := range keys {
		out = append(out, Field{Column: k, Value: m[k]})
	}
	return out
}

// Record es una fila leída, columna -> valor, sin importar el backend.
type Record map[string]any

func (r Record) String(col string) string {
	switch v := r[col].(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case time.Time:
		return v.Format(time.RFC3339Nano)
	default:
		return fmt.Sprint(v)
	}
}

func (r Record) Float(col string) (float64, error) {
	switch v := r[col].(type) {
	case nil:
		return 0, nil
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case int:
		return float64(v), nil
	case string:
		return strconv.ParseFloat(strings.TrimSpace(v), 64)
	case []byte:
		return strconv.ParseFloat(strings.TrimSpace(string(v)), 64)
	default:
		return 0, fmt.Errorf("column %s: unexpected numeric type %T", col, v)
	}
}

// Date acepta time.Time (pgx con DATE) o texto YYYY-MM-DD (sqlite / memoria).
func (r Record) Date(col string) (time.Time, error) {
	switch v := r[col].(type) {
	case time.Time:
		return time.Date(v.Year(), v.Month(), v.Day(), 0, 0, 0, 0, time.UTC), nil
	case nil:
		return time.Time{}, nil
	default:
		s := strings.TrimSpace(r.String(col))
		if s == "" {
			return time.Time{}, nil
		}
		if len(s) > len(DateLayout) {
			s = s[:len(DateLayout)]
		}
		return time.Parse(DateLayout, s)
	}
}

// Time acepta time.Time o texto RFC3339.
func (r Record) Time(col string) (time.Time, error) {
	switch v := r[col].(type) {
	case time.Time:
		return v, nil
	case nil:
		return time.Time{}, nil
	default:
		s := strings.TrimSpace(r.String(col))
		if s == "" {
			return time.Time{}, nil
		}
		return time.Parse(time.RFC3339Nano, s)
	}
}

// DateLayout es el formato de fechas en filtros, payloads y columnas DATE.
const DateLayout = "2006-01-02"

// DateValue normaliza un time.Time al valor que se guarda en columnas de fecha.
func DateValue(t time.Time) string {
	return t.Format(DateLayout)
}

// TimestampLayout tiene ancho fijo: en texto, orden lexicográfico == cronológico.
const TimestampLayout = "2006-01-02T15:04:05.000000000Z07:00"

// TimeValue normaliza timestamps a UTC con TimestampLayout.
func TimeValue(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}
