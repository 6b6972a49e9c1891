package viewmodel

import (
	"context"
	"errors"
	"sync"

	"github.com/Virgo-SSS/Ternakku/internal/client/api"
)

type FormState int

const (
	FormIdle FormState = iota
	FormSubmitting
	FormSuccess
	FormError
)

func (s FormState) String() string {
	switch s {
	case FormSubmitting:
		return "submitting"
	case FormSuccess:
		return "success"
	case FormError:
		return "error"
	default:
		return "idle"
	}
}

// ErrBusy: ya hay un envío en curso para este formulario.
var ErrBusy = errors.New("viewmodel: form is already submitting")

// SubmitFunc manda el borrador y devuelve el message del servidor.
type SubmitFunc[T any] func(ctx context.Context, draft T) (string, error)

// FormPage: idle -> submitting -> success | error.
// En success se limpia el borrador y se navega a next; en error el
// borrador queda intacto para corregirlo.
type FormPage[T any] struct {
	submit SubmitFunc[T]
	dialog Dialog
	nav    Navigator
	next   string

	mu      sync.Mutex
	initial T
	draft   T
	state   FormState
	lastErr error
}

func NewFormPage[T any](initial T, submit SubmitFunc[T], dialog Dialog, nav Navigator, next string) *FormPage[T] {
	return &FormPage[T]{
		submit:  submit,
		dialog:  dialog,
		nav:     nav,
		next:    next,
		initial: initial,
		draft:   initial,
	}
}

// Seed carga el borrador de una página de edición.
func (f *FormPage[T]) Seed(ctx context.Context, fetch func(context.Context) (T, error)) error {
	v, err := fetch(ctx)
	if err != nil {
		f.dialog.Error(api.ErrorMessage(err))
		return err
	}
	f.mu.Lock()
	f.initial, f.draft = v, v
	f.mu.Unlock()
	return nil
}

func (f *FormPage[T]) Draft() T {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draft
}

// Edit modifica el borrador; no se permite mientras se envía.
func (f *FormPage[T]) Edit(fn func(*T)) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state == FormSubmitting {
		return ErrBusy
	}
	fn(&f.draft)
	return nil
}

func (f *FormPage[T]) State() FormState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

func (f *FormPage[T]) Err() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastErr
}

func (f *FormPage[T]) Submit(ctx context.Context) error {
	f.mu.Lock()
	if f.state == FormSubmitting {
		f.mu.Unlock()
		return ErrBusy
	}
	f.state = FormSubmitting
	draft := f.draft
	f.mu.Unlock()

	msg, err := f.submit(ctx, draft)

	f.mu.Lock()
	if err != nil {
		f.state = FormError
		f.lastErr = err
		f.mu.Unlock()
		f.dialog.Error(api.ErrorMessage(err))
		return err
	}
	f.state = FormSuccess
	f.lastErr = nil
	f.draft = f.initial
	f.mu.Unlock()

	f.dialog.Success(msg)
	if f.nav != nil && f.next != "" {
		f.nav.Navigate(f.next)
	}
	return nil
}
