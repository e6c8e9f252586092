package kv

import (
	"context"
	"sync"

	"github.com/kylycht/coinboard/storage"
)

type memory struct {
	lock  sync.RWMutex      // guards values
	store map[string][]byte // values by key
}

func NewMemory() storage.KV {
	return &memory{store: make(map[string][]byte)}
}

// Get implements storage.KV.
func (m *memory) Get(_ context.Context, key string) ([]byte, error) {
	m.lock.RLock()
	defer m.lock.RUnlock()

	value, ok := m.store[key]
	if !ok {
		return nil, storage.ErrNotFound
	}

	return append([]byte(nil), value...), nil
}

// Set implements storage.KV.
func (m *memory) Set(_ context.Context, key string, value []byte) error {
	m.lock.Lock()
	m.store[key] = append([]byte(nil), value...)
	m.lock.Unlock()

	return nil
}

// Close implements storage.KV.
func (m *memory) Close(context.Context) error {
	return nil
}
