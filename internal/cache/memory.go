package cache

import (
	"context"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

type MemoryBackend struct {
	items *gocache.Cache
}

func NewMemoryBackend(defaultTTL, cleanupInterval time.Duration) *MemoryBackend {
	return &MemoryBackend{items: gocache.New(defaultTTL, cleanupInterval)}
}

func (m *MemoryBackend) Get(_ context.Context, key string) ([]byte, bool, error) {
	value, found := m.items.Get(key)
	if !found {
		return nil, false, nil
	}
	data, ok := value.([]byte)
	return data, ok, nil
}

func (m *MemoryBackend) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	m.items.Set(key, value, ttl)
	return nil
}

func (m *MemoryBackend) DeletePrefix(_ context.Context, prefix string) error {
	for key := range m.items.Items() {
		if strings.HasPrefix(key, prefix) {
			m.items.Delete(key)
		}
	}
	return nil
}

func (m *MemoryBackend) Len() int {
	return m.items.ItemCount()
}
