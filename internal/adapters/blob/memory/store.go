package memory

import (
	"bytes"
	"context"
	"io"
	"sync"
	"time"

	"github.com/Virgo-SSS/Ternakku/internal/ports/blob"
)

type object struct {
	data []byte
	info blob.Info
}

// Store guarda blobs en memoria (modo dev y tests).
type Store struct {
	mu   sync.RWMutex
	objs map[string]object
	now  func() time.Time
}

func NewStore() *Store {
	return &Store{objs: make(map[string]object), now: time.Now}
}

func (s *Store) Put(ctx context.Context, key string, r io.Reader, opts blob.PutOptions) (blob.Info, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return blob.Info{}, err
	}
	info := blob.Info{
		Key:         key,
		ContentType: opts.ContentType,
		Size:        int64(len(data)),
		UpdatedAt:   s.now().UTC(),
	}

	s.mu.Lock()
	s.objs[key] = object{data: data, info: info}
	s.mu.Unlock()
	return info, nil
}

func (s *Store) Get(ctx context.Context, key string) (blob.Info, io.ReadCloser, error) {
	s.mu.RLock()
	o, ok := s.objs[key]
	s.mu.RUnlock()
	if !ok {
		return blob.Info{}, nil, blob.ErrNotFound
	}
	return o.info, io.NopCloser(bytes.NewReader(o.data)), nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.objs[key]; !ok {
		return blob.ErrNotFound
	}
	delete(s.objs, key)
	return nil
}
