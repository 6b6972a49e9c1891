package sqlrepo

import (
	"context"
	"strings"

	"github.com/Virgo-SSS/Ternakku/internal/platform/apperr"
	"github.com/Virgo-SSS/Ternakku/internal/platform/query"
)

// Table implementa el repositorio CRUD de una entidad sobre Store.
// Satisface cows.Repository, workers.Repository, etc.
type Table[T any] struct {
	store *Store
	codec query.Codec[T]
}

func NewTable[T any](store *Store, codec query.Codec[T]) *Table[T] {
	return &Table[T]{store: store, codec: codec}
}

func (t *Table[T]) Create(ctx context.Context, v T) (string, error) {
	return t.store.Insert(ctx, t.codec.Table, t.codec.ToFields(v))
}

func (t *Table[T]) GetByID(ctx context.Context, id string) (T, error) {
	var zero T
	id = strings.TrimSpace(id)
	if id == "" {
		return zero, apperr.NotFound(t.codec.Resource, id)
	}

	rec, err := t.store.FindByID(ctx, t.codec.Table, t.codec.Columns, id)
	if err != nil {
		if apperr.IsNotFound(err) {
			return zero, apperr.NotFound(t.codec.Resource, id)
		}
		return zero, err
	}
	v, err := t.codec.FromRecord(rec)
	if err != nil {
		return zero, apperr.Persistence("decode "+t.codec.Table, err)
	}
	return v, nil
}

func (t *Table[T]) List(ctx context.Context, filter query.Filter, page query.Page) ([]T, error) {
	recs, err := t.store.Find(ctx, t.codec.Table, t.codec.Columns, filter, t.codec.OrderBy, page)
	if err != nil {
		return nil, err
	}

	out := make([]T, 0, len(recs))
	for _, rec := range recs {
		v, err := t.codec.FromRecord(rec)
		if err != nil {
			return nil, apperr.Persistence("decode "+t.codec.Table, err)
		}
		out = append(out, v)
	}
	return out, nil
}

func (t *Table[T]) Update(ctx context.Context, id string, changes query.Fields) error {
	n, err := t.store.Update(ctx, t.codec.Table, id, changes)
	if err != nil {
		return err
	}
	if n == 0 {
		return apperr.NotFound(t.codec.Resource, id)
	}
	return nil
}

func (t *Table[T]) Delete(ctx context.Context, id string) error {
	n, err := t.store.Delete(ctx, t.codec.Table, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return apperr.NotFound(t.codec.Resource, id)
	}
	return nil
}
