package repository

import (
	"context"
	"sync"

	"github.com/codequest/streak-engine/internal/core/domain"
)

var _ domain.KeyValueStore = (*InMemoryKeyValueStore)(nil)

type InMemoryKeyValueStore struct {
	store map[string]string

	mu sync.RWMutex
}

func NewInMemoryKeyValueStore() *InMemoryKeyValueStore {
	return &InMemoryKeyValueStore{
		store: make(map[string]string),
	}
}

func (r *InMemoryKeyValueStore) Get(ctx context.Context, key string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	value, ok := r.store[key]
	if !ok {
		return "", domain.ErrKeyNotFound
	}
	return value, nil
}

func (r *InMemoryKeyValueStore) Set(ctx context.Context, key, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.store[key] = value
	return nil
}

func (r *InMemoryKeyValueStore) Ping(ctx context.Context) error {
	return nil
}
