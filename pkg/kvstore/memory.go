package kvstore

import (
	"context"
	"sync"
)

// MemoryStore хранилище в памяти процесса.
// Atomically держит блокировку на всё время выполнения fn,
// поэтому внутри fn нужно работать только через переданный tx.
type MemoryStore struct {
	mu   sync.Mutex
	data map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

func (s *MemoryStore) Load(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return clone(s.data[key]), nil
}

func (s *MemoryStore) Save(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = clone(value)
	return nil
}

func (s *MemoryStore) Atomically(ctx context.Context, fn func(ctx context.Context, tx Executor) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &memoryTx{data: s.data, staged: make(map[string][]byte)}
	if err := fn(ctx, tx); err != nil {
		return err
	}

	for k, v := range tx.staged {
		s.data[k] = v
	}
	return nil
}

type memoryTx struct {
	data   map[string][]byte
	staged map[string][]byte
}

func (t *memoryTx) Load(_ context.Context, key string) ([]byte, error) {
	if v, ok := t.staged[key]; ok {
		return clone(v), nil
	}
	return clone(t.data[key]), nil
}

func (t *memoryTx) Save(_ context.Context, key string, value []byte) error {
	t.staged[key] = clone(value)
	return nil
}

func clone(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
