package query

import (
	"net/url"
	"strings"
	"time"

	"github.com/Virgo-SSS/Ternakku/internal/platform/apperr"
)

// Match define cómo se compara un parámetro de filtro con su columna.
type Match int

const (
	// MatchEqual: igualdad exacta (status, gender, type...).
	MatchEqual Match = iota
	// MatchContains: substring case-insensitive (name).
	MatchContains
	// MatchDate: fecha exacta o rango cerrado "YYYY-MM-DD to YYYY-MM-DD".
	MatchDate
)

// FilterField asocia un parámetro de la query string con una columna.
type FilterField struct {
	Param  string
	Column string
	Match  Match
}

// FilterSpec es la lista (ordenada) de filtros que acepta un listado.
// El orden del FilterSpec es el orden de los bind params.
type FilterSpec []FilterField

type op int

const (
	opEqual op = iota
	opContains
	opBetween
)

// Condition es un predicado ya decodificado.
type Condition struct {
	Column string
	op     op
	Values []string
}

// IsRange indica si la condición es un BETWEEN.
func (c Condition) IsRange() bool { return c.op == opBetween }

// Filter es el resultado de BuildFilter. Vacío => sin WHERE.
type Filter struct {
	Conditions []Condition
}

func (f Filter) Empty() bool { return len(f.Conditions) == 0 }

// Separadores de rango: el range-picker produce "X to Y" y la UI lo reescribe
// como "X - Y" antes de mandarlo; aceptamos ambos.
var rangeSeparators = []string{" to ", " - "}

// SplitDateRange separa "start to end" (o "start - end").
func SplitDateRange(s string) (start, end string, ok bool) {
	for _, sep := range rangeSeparators {
		if i := strings.Index(s, sep); i >= 0 {
			return strings.TrimSpace(s[:i]), strings.TrimSpace(s[i+len(sep):]), true
		}
	}
	return strings.TrimSpace(s), "", false
}

// BuildFilter convierte parámetros opcionales en condiciones.
// Valores vacíos se omiten y las keys desconocidas se ignoran.
func BuildFilter(fs FilterSpec, params map[string]string) (Filter, error) {
	var f Filter
	for _, fd := range fs {
		raw := strings.TrimSpace(params[fd.Param])
		if raw == "" {
			continue
		}
		if err := checkIdent("column", fd.Column); err != nil {
			return Filter{}, err
		}

		switch fd.Match {
		case MatchContains:
			f.Conditions = append(f.Conditions, Condition{Column: fd.Column, op: opContains, Values: []string{raw}})
		case MatchDate:
			start, end, isRange := SplitDateRange(raw)
			if !isRange {
				if err := checkDate(fd.Param, start); err != nil {
					return Filter{}, err
				}
				f.Conditions = append(f.Conditions, Condition{Column: fd.Column, op: opEqual, Values: []string{start}})
				continue
			}
			if err := checkDate(fd.Param, start); err != nil {
				return Filter{}, err
			}
			if err := checkDate(fd.Param, end); err != nil {
				return Filter{}, err
			}
			if end < start {
				start, end = end, start
			}
			f.Conditions = append(f.Conditions, Condition{Column: fd.Column, op: opBetween, Values: []string{start, end}})
		default:
			f.Conditions = append(f.Conditions, Condition{Column: fd.Column, op: opEqual, Values: []string{raw}})
		}
	}
	return f, nil
}

func checkDate(param, s string) error {
	if _, err := time.Parse(DateLayout, s); err != nil {
		return apperr.InvalidFields(map[string]string{
			param: param + " must be YYYY-MM-DD or YYYY-MM-DD to YYYY-MM-DD",
		})
	}
	return nil
}

// SQL devuelve el predicado (sin "WHERE") y sus args, numerando desde start.
func (f Filter) SQL(d Dialect, start int) (string, []any) {
	if f.Empty() {
		return "", nil
	}
	n := start
	parts := make([]string, 0, len(f.Conditions))
	args := make([]any, 0, len(f.Conditions)+1)

	for _, c := range f.Conditions {
		switch c.op {
		case opContains:
			parts = append(parts, "LOWER("+c.Column+") LIKE LOWER("+d.Placeholder(n)+") ESCAPE '\\'")
			args = append(args, "%"+escapeLike(c.Values[0])+"%")
			n++
		case opBetween:
			parts = append(parts, c.Column+" BETWEEN "+d.Placeholder(n)+" AND "+d.Placeholder(n+1))
			args = append(args, c.Values[0], c.Values[1])
			n += 2
		default:
			parts = append(parts, c.Column+" = "+d.Placeholder(n))
			args = append(args, c.Values[0])
			n++
		}
	}
	return strings.Join(parts, " AND "), args
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// Match evalúa el filtro en memoria con la misma semántica que SQL.
func (f Filter) Match(rec Record) bool {
	for _, c := range f.Conditions {
		switch c.op {
		case opContains:
			v := strings.ToLower(rec.String(c.Column))
			if !strings.Contains(v, strings.ToLower(c.Values[0])) {
				return false
			}
		case opBetween:
			v := dateString(rec, c.Column)
			if v == "" || v < c.Values[0] || v > c.Values[1] {
				return false
			}
		default:
			v := rec.String(c.Column)
			if _, isTime := rec[c.Column].(time.Time); isTime {
				v = dateString(rec, c.Column)
			}
			if v != c.Values[0] {
				return false
			}
		}
	}
	return true
}

func dateString(rec Record, col string) string {
	t, err := rec.Date(col)
	if err != nil || t.IsZero() {
		return ""
	}
	return DateValue(t)
}

// ParamsFromValues toma el primer valor de cada parámetro de la query string.
func ParamsFromValues(v url.Values) map[string]string {
	out := make(map[string]string, len(v))
	for k, vals := range v {
		if len(vals) == 0 {
			continue
		}
		out[k] = vals[0]
	}
	return out
}
