// Package sqlrepo ejecuta los statements de platform/query contra *sql.DB.
// Sirve igual para Postgres (pgx) y SQLite (modernc); solo cambia el dialecto.
package sqlrepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/Virgo-SSS/Ternakku/internal/platform/apperr"
	"github.com/Virgo-SSS/Ternakku/internal/platform/query"
)

type Store struct {
	db      *sql.DB
	dialect query.Dialect
}

func NewStore(db *sql.DB, dialect query.Dialect) *Store {
	return &Store{db: db, dialect: dialect}
}

func (s *Store) Dialect() query.Dialect { return s.dialect }

// Insert ejecuta un único INSERT y devuelve el id insertado.
// Si fields trae "id" se usa ese; si no, se lo pide al motor.
func (s *Store) Insert(ctx context.Context, table string, fields query.Fields) (string, error) {
	st, err := query.Insert(s.dialect, table, fields)
	if err != nil {
		return "", apperr.Persistence("insert "+table, err)
	}

	if id, ok := fields.Get("id"); ok {
		if _, err := s.db.ExecContext(ctx, st.SQL, st.Args...); err != nil {
			return "", apperr.Persistence("insert "+table, err)
		}
		return fmt.Sprint(id), nil
	}

	if s.dialect == query.Postgres {
		var id any
		if err := s.db.QueryRowContext(ctx, st.SQL+" RETURNING id", st.Args...).Scan(&id); err != nil {
			return "", apperr.Persistence("insert "+table, err)
		}
		return fmt.Sprint(id), nil
	}

	res, err := s.db.ExecContext(ctx, st.SQL, st.Args...)
	if err != nil {
		return "", apperr.Persistence("insert "+table, err)
	}
	n, err := res.LastInsertId()
	if err != nil {
		return "", apperr.Persistence("insert "+table, err)
	}
	return strconv.FormatInt(n, 10), nil
}

// Update devuelve filas afectadas (0 => el caller decide si es not found).
func (s *Store) Update(ctx context.Context, table, id string, fields query.Fields) (int64, error) {
	st, err := query.Update(s.dialect, table, id, fields)
	if err != nil {
		return 0, apperr.Persistence("update "+table, err)
	}
	return s.exec(ctx, "update "+table, st)
}

func (s *Store) Delete(ctx context.Context, table, id string) (int64, error) {
	st, err := query.Delete(s.dialect, table, id)
	if err != nil {
		return 0, apperr.Persistence("delete "+table, err)
	}
	return s.exec(ctx, "delete "+table, st)
}

func (s *Store) exec(ctx context.Context, op string, st query.Statement) (int64, error) {
	res, err := s.db.ExecContext(ctx, st.SQL, st.Args...)
	if err != nil {
		return 0, apperr.Persistence(op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, apperr.Persistence(op, err)
	}
	return n, nil
}

func (s *Store) Find(
	ctx context.Context,
	table string,
	columns []string,
	filter query.Filter,
	orderBy []string,
	page query.Page,
) ([]query.Record, error) {
	st, err := query.Select(s.dialect, table, columns, filter, orderBy, page)
	if err != nil {
		return nil, apperr.Persistence("select "+table, err)
	}
	return s.queryRecords(ctx, "select "+table, st)
}

// FindByID devuelve sql.ErrNoRows envuelto como NotFoundError.
func (s *Store) FindByID(ctx context.Context, table string, columns []string, id string) (query.Record, error) {
	st, err := query.SelectByID(s.dialect, table, columns, id)
	if err != nil {
		return nil, apperr.Persistence("select "+table, err)
	}
	recs, err := s.queryRecords(ctx, "select "+table, st)
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, apperr.NotFound(table, id)
	}
	return recs[0], nil
}

func (s *Store) queryRecords(ctx context.Context, op string, st query.Statement) ([]query.Record, error) {
	rows, err := s.db.QueryContext(ctx, st.SQL, st.Args...)
	if err != nil {
		return nil, apperr.Persistence(op, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, apperr.Persistence(op, err)
	}

	out := make([]query.Record, 0)
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, apperr.Persistence(op, err)
		}

		rec := make(query.Record, len(cols))
		for i, c := range cols {
			if b, ok := vals[i].([]byte); ok {
				rec[c] = string(b)
				continue
			}
			rec[c] = vals[i]
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.Persistence(op, err)
	}
	return out, nil
}
