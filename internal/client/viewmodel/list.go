package viewmodel

import (
	"context"
	"errors"
	"sync"

	"github.com/Virgo-SSS/Ternakku/internal/client/api"
)

// Lister es lo que una ListPage necesita del backend (api.Resource lo cumple).
type Lister[T any] interface {
	List(ctx context.Context, filter map[string]string) ([]T, error)
	Delete(ctx context.Context, id string) error
}

type RowState int

const (
	RowIdle RowState = iota
	RowPendingDelete
)

type Row[T any] struct {
	Item  T
	State RowState
}

var (
	ErrUnknownRow = errors.New("viewmodel: row not found")
	ErrRowBusy    = errors.New("viewmodel: row has a pending delete")
)

type ListMessages struct {
	ConfirmDelete string
	Deleted       string
}

var DefaultListMessages = ListMessages{
	ConfirmDelete: "Apakah anda yakin ingin menghapus data ini?",
	Deleted:       "Data berhasil dihapus",
}

// ListPage: filas cargadas + borrado con confirmación. Una fila solo se
// quita cuando el servidor confirmó el DELETE; si falla vuelve a RowIdle.
type ListPage[T any] struct {
	src     Lister[T]
	idOf    func(T) string
	dialog  Dialog
	confirm Confirmer
	msgs    ListMessages

	mu      sync.Mutex
	rows    []Row[T]
	loading bool
}

func NewListPage[T any](src Lister[T], idOf func(T) string, dialog Dialog, confirm Confirmer) *ListPage[T] {
	return &ListPage[T]{
		src:     src,
		idOf:    idOf,
		dialog:  dialog,
		confirm: confirm,
		msgs:    DefaultListMessages,
	}
}

func (p *ListPage[T]) WithMessages(m ListMessages) *ListPage[T] {
	p.msgs = m
	return p
}

// Load reemplaza las filas con el resultado de filter. Ante un error la
// lista queda vacía (nada de filas viejas) y se muestra el diálogo.
func (p *ListPage[T]) Load(ctx context.Context, filter map[string]string) error {
	p.mu.Lock()
	p.loading = true
	p.mu.Unlock()

	items, err := p.src.List(ctx, filter)

	p.mu.Lock()
	p.loading = false
	if err != nil {
		p.rows = nil
		p.mu.Unlock()
		p.dialog.Error(api.ErrorMessage(err))
		return err
	}
	p.rows = make([]Row[T], 0, len(items))
	for _, it := range items {
		p.rows = append(p.rows, Row[T]{Item: it})
	}
	p.mu.Unlock()
	return nil
}

// SetItems muestra filas que el caller ya tiene (p.ej. un detalle recién leído).
func (p *ListPage[T]) SetItems(items []T) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.rows = make([]Row[T], 0, len(items))
	for _, it := range items {
		p.rows = append(p.rows, Row[T]{Item: it})
	}
}

// Reset vuelve a cargar sin filtros.
func (p *ListPage[T]) Reset(ctx context.Context) error {
	return p.Load(ctx, nil)
}

func (p *ListPage[T]) Loading() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loading
}

func (p *ListPage[T]) Rows() []Row[T] {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Row[T], len(p.rows))
	copy(out, p.rows)
	return out
}

func (p *ListPage[T]) Items() []T {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]T, 0, len(p.rows))
	for _, r := range p.rows {
		out = append(out, r.Item)
	}
	return out
}

// Delete pide confirmación y borra. Devuelve false si el usuario canceló.
func (p *ListPage[T]) Delete(ctx context.Context, id string) (bool, error) {
	if err := p.setState(id, RowIdle, RowPendingDelete); err != nil {
		return false, err
	}

	if !p.confirm.Confirm(ctx, p.msgs.ConfirmDelete) {
		_ = p.setState(id, RowPendingDelete, RowIdle)
		return false, nil
	}

	if err := p.src.Delete(ctx, id); err != nil {
		_ = p.setState(id, RowPendingDelete, RowIdle)
		p.dialog.Error(api.ErrorMessage(err))
		return false, err
	}

	p.remove(id)
	p.dialog.Success(p.msgs.Deleted)
	return true, nil
}

func (p *ListPage[T]) setState(id string, from, to RowState) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	i := p.index(id)
	if i < 0 {
		return ErrUnknownRow
	}
	if p.rows[i].State != from {
		return ErrRowBusy
	}
	p.rows[i].State = to
	return nil
}

func (p *ListPage[T]) remove(id string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if i := p.index(id); i >= 0 {
		p.rows = append(p.rows[:i], p.rows[i+1:]...)
	}
}

// index: caller tiene p.mu.
func (p *ListPage[T]) index(id string) int {
	for i, r := range p.rows {
		if p.idOf(r.Item) == id {
			return i
		}
	}
	return -1
}
