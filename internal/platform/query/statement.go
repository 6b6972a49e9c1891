package query

import (
	"errors"
	"strconv"
	"strings"
)

var ErrNoFields = errors.New("query: no fields")

// Statement es SQL + bind params en orden.
type Statement struct {
	SQL  string
	Args []any
}

const (
	DefaultLimit = 50
	MaxLimit     = 200
)

// Page limita listados. Limit <= 0 usa DefaultLimit; nunca supera MaxLimit.
type Page struct {
	Limit  int
	Offset int
}

func (p Page) Normalize() Page {
	if p.Limit <= 0 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}

// PageFromParams lee limit/offset; valores inválidos caen al default.
func PageFromParams(params map[string]string) Page {
	var p Page
	if n, err := strconv.Atoi(strings.TrimSpace(params["limit"])); err == nil {
		p.Limit = n
	}
	if n, err := strconv.Atoi(strings.TrimSpace(params["offset"])); err == nil {
		p.Offset = n
	}
	return p.Normalize()
}

// Insert: columnas = keys de fields, valores = values de fields, mismo orden.
func Insert(d Dialect, table string, fields Fields) (Statement, error) {
	if err := checkIdent("table", table); err != nil {
		return Statement{}, err
	}
	if len(fields) == 0 {
		return Statement{}, ErrNoFields
	}

	cols := make([]string, 0, len(fields))
	ph := make([]string, 0, len(fields))
	for i, f := range fields {
		if err := checkIdent("column", f.Column); err != nil {
			return Statement{}, err
		}
		cols = append(cols, f.Column)
		ph = append(ph, d.Placeholder(i+1))
	}

	sql := "INSERT INTO " + table + " (" + strings.Join(cols, ", ") + ") VALUES (" + strings.Join(ph, ", ") + ")"
	return Statement{SQL: sql, Args: fields.Values()}, nil
}

// Update setea fields sobre la fila con id dado. El id es el último argumento.
func Update(d Dialect, table, id string, fields Fields) (Statement, error) {
	if err := checkIdent("table", table); err != nil {
		return Statement{}, err
	}
	if len(fields) == 0 {
		return Statement{}, ErrNoFields
	}

	sets := make([]string, 0, len(fields))
	for i, f := range fields {
		if err := checkIdent("column", f.Column); err != nil {
			return Statement{}, err
		}
		if f.Column == "id" {
			return Statement{}, errors.New("query: id is immutable")
		}
		sets = append(sets, f.Column+" = "+d.Placeholder(i+1))
	}

	args := append(fields.Values(), id)
	sql := "UPDATE " + table + " SET " + strings.Join(sets, ", ") + " WHERE id = " + d.Placeholder(len(fields)+1)
	return Statement{SQL: sql, Args: args}, nil
}

func Delete(d Dialect, table, id string) (Statement, error) {
	if err := checkIdent("table", table); err != nil {
		return Statement{}, err
	}
	return Statement{
		SQL:  "DELETE FROM " + table + " WHERE id = " + d.Placeholder(1),
		Args: []any{id},
	}, nil
}

// Select arma SELECT cols FROM table [WHERE filtro] [ORDER BY ...] LIMIT/OFFSET.
// orderBy acepta "col" o "col ASC|DESC".
func Select(d Dialect, table string, columns []string, f Filter, orderBy []string, p Page) (Statement, error) {
	if err := checkIdent("table", table); err != nil {
		return Statement{}, err
	}
	if len(columns) == 0 {
		return Statement{}, ErrNoFields
	}
	for _, c := range columns {
		if err := checkIdent("column", c); err != nil {
			return Statement{}, err
		}
	}

	var sb strings.Builder
	sb.WriteString("SELECT " + strings.Join(columns, ", ") + " FROM " + table)

	pred, args := f.SQL(d, 1)
	if pred != "" {
		sb.WriteString(" WHERE " + pred)
	}

	if len(orderBy) > 0 {
		parts := make([]string, 0, len(orderBy))
		for _, o := range orderBy {
			fs := strings.Fields(o)
			if len(fs) == 0 || len(fs) > 2 {
				return Statement{}, errors.New("query: invalid order by " + strconv.Quote(o))
			}
			if err := checkIdent("column", fs[0]); err != nil {
				return Statement{}, err
			}
			if len(fs) == 2 {
				dir := strings.ToUpper(fs[1])
				if dir != "ASC" && dir != "DESC" {
					return Statement{}, errors.New("query: invalid order direction " + strconv.Quote(fs[1]))
				}
				parts = append(parts, fs[0]+" "+dir)
				continue
			}
			parts = append(parts, fs[0])
		}
		sb.WriteString(" ORDER BY " + strings.Join(parts, ", "))
	}

	p = p.Normalize()
	n := len(args) + 1
	sb.WriteString(" LIMIT " + d.Placeholder(n) + " OFFSET " + d.Placeholder(n+1))
	args = append(args, p.Limit, p.Offset)

	return Statement{SQL: sb.String(), Args: args}, nil
}

// SelectByID arma SELECT cols FROM table WHERE id = ?.
func SelectByID(d Dialect, table string, columns []string, id string) (Statement, error) {
	if err := checkIdent("table", table); err != nil {
		return Statement{}, err
	}
	for _, c := range columns {
		if err := checkIdent("column", c); err != nil {
			return Statement{}, err
		}
	}
	return Statement{
		SQL:  "SELECT " + strings.Join(columns, ", ") + " FROM " + table + " WHERE id = " + d.Placeholder(1),
		Args: []any{id},
	}, nil
}
