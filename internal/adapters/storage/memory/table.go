package memory

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/Virgo-SSS/Ternakku/internal/platform/apperr"
	"github.com/Virgo-SSS/Ternakku/internal/platform/query"
)

// Table guarda filas como query.Record y aplica los mismos filtros que SQL
// (query.Filter.Match). Se usa en modo dev (sin DB) y en tests.
type Table[T any] struct {
	mu    sync.RWMutex
	codec query.Codec[T]
	rows  map[string]query.Record
	order []string // orden de inserción (equivale a created_at asc)
}

func NewTable[T any](codec query.Codec[T]) *Table[T] {
	return &Table[T]{
		codec: codec,
		rows:  make(map[string]query.Record),
	}
}

func (t *Table[T]) Create(ctx context.Context, v T) (string, error) {
	fields := t.codec.ToFields(v)
	if len(fields) == 0 {
		return "", apperr.Persistence("insert "+t.codec.Table, query.ErrNoFields)
	}
	idv, ok := fields.Get("id")
	id := strings.TrimSpace(fmt.Sprint(idv))
	if !ok || id == "" {
		return "", apperr.Persistence("insert "+t.codec.Table, errors.New("id required"))
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if _, exists := t.rows[id]; exists {
		return "", apperr.Persistence("insert "+t.codec.Table, errors.New("duplicate key value violates unique constraint"))
	}

	rec := make(query.Record, len(fields))
	for _, f := range fields {
		rec[f.Column] = f.Value
	}
	t.rows[id] = rec
	t.order = append(t.order, id)
	return id, nil
}

func (t *Table[T]) GetByID(ctx context.Context, id string) (T, error) {
	var zero T

	t.mu.RLock()
	rec, ok := t.rows[id]
	t.mu.RUnlock()
	if !ok {
		return zero, apperr.NotFound(t.codec.Resource, id)
	}

	v, err := t.codec.FromRecord(copyRecord(rec))
	if err != nil {
		return zero, apperr.Persistence("decode "+t.codec.Table, err)
	}
	return v, nil
}

func (t *Table[T]) List(ctx context.Context, filter query.Filter, page query.Page) ([]T, error) {
	page = page.Normalize()

	t.mu.RLock()
	matched := make([]query.Record, 0)
	for _, id := range t.order {
		rec := t.rows[id]
		if filter.Match(rec) {
			matched = append(matched, copyRecord(rec))
		}
	}
	t.mu.RUnlock()

	// mismo ORDER BY que la versión SQL
	sort.SliceStable(matched, func(i, j int) bool {
		for _, col := range t.codec.OrderBy {
			a, b := matched[i].String(col), matched[j].String(col)
			if a != b {
				return a < b
			}
		}
		return false
	})

	if page.Offset >= len(matched) {
		return []T{}, nil
	}
	end := page.Offset + page.Limit
	if end > len(matched) {
		end = len(matched)
	}

	out := make([]T, 0, end-page.Offset)
	for _, rec := range matched[page.Offset:end] {
		v, err := t.codec.FromRecord(rec)
		if err != nil {
			return nil, apperr.Persistence("decode "+t.codec.Table, err)
		}
		out = append(out, v)
	}
	return out, nil
}

func (t *Table[T]) Update(ctx context.Context, id string, changes query.Fields) error {
	if len(changes) == 0 {
		return apperr.Persistence("update "+t.codec.Table, query.ErrNoFields)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	rec, ok := t.rows[id]
	if !ok {
		return apperr.NotFound(t.codec.Resource, id)
	}
	// primero validar todo; un error no deja la fila a medio actualizar
	for _, f := range changes {
		if f.Column == "id" {
			return apperr.Persistence("update "+t.codec.Table, errors.New("id is immutable"))
		}
	}
	for _, f := range changes {
		rec[f.Column] = f.Value
	}
	return nil
}

func (t *Table[T]) Delete(ctx context.Context, id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.rows[id]; !ok {
		return apperr.NotFound(t.codec.Resource, id)
	}
	delete(t.rows, id)
	for i, v := range t.order {
		if v == id {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
	return nil
}

func copyRecord(r query.Record) query.Record {
	out := make(query.Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}
