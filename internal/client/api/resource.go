package api

import (
	"context"
	"net/http"
	"net/url"
	"strings"
)

// Envelope es la forma de todas las respuestas de la API.
type Envelope[T any] struct {
	Message string `json:"message,omitempty"`
	Data    T      `json:"data"`
}

// Resource agrupa el CRUD de una colección (/cow, /worker, /keuangan).
type Resource[T any] struct {
	c    *Client
	path string
}

func NewResource[T any](c *Client, path string) *Resource[T] {
	return &Resource[T]{c: c, path: "/" + strings.Trim(path, "/")}
}

// List manda solo los filtros no vacíos.
func (r *Resource[T]) List(ctx context.Context, filter map[string]string) ([]T, error) {
	q := url.Values{}
	for k, v := range filter {
		if v = strings.TrimSpace(v); v != "" {
			q.Set(k, v)
		}
	}

	var env Envelope[[]T]
	if err := r.c.Do(ctx, http.MethodGet, r.path, q, nil, &env); err != nil {
		return nil, err
	}
	if env.Data == nil {
		env.Data = []T{}
	}
	return env.Data, nil
}

func (r *Resource[T]) Get(ctx context.Context, id string) (T, error) {
	var env Envelope[T]
	err := r.c.Do(ctx, http.MethodGet, r.item(id), nil, nil, &env)
	return env.Data, err
}

// Create devuelve el registro creado y el message del servidor.
func (r *Resource[T]) Create(ctx context.Context, in any) (T, string, error) {
	var env Envelope[T]
	err := r.c.Do(ctx, http.MethodPost, r.path, nil, in, &env)
	return env.Data, env.Message, err
}

// Update es un PATCH: in lleva solo los campos a cambiar.
func (r *Resource[T]) Update(ctx context.Context, id string, in any) (T, string, error) {
	var env Envelope[T]
	err := r.c.Do(ctx, http.MethodPatch, r.item(id), nil, in, &env)
	return env.Data, env.Message, err
}

func (r *Resource[T]) Delete(ctx context.Context, id string) error {
	return r.c.Do(ctx, http.MethodDelete, r.item(id), nil, nil, nil)
}

func (r *Resource[T]) item(id string) string {
	return r.path + "/" + url.PathEscape(strings.TrimSpace(id))
}
