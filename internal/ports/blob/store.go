package blob

import (
	"context"
	"errors"
	"io"
	"time"
)

var ErrNotFound = errors.New("blob not found")

type PutOptions struct {
	ContentType string
}

type Info struct {
	Key         string
	ContentType string
	Size        int64
	UpdatedAt   time.Time
}

// Store guarda archivos subidos (fotos de ganado). Put sobrescribe.
type Store interface {
	Put(ctx context.Context, key string, r io.Reader, opts PutOptions) (Info, error)
	Get(ctx context.Context, key string) (Info, io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}
