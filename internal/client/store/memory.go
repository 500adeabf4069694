package store

import (
	"context"
	"slices"
	"sync"

	"github.com/dmitrijs2005/safetrace/internal/common"
)

// MemoryBackend keeps blobs in process memory. Nothing survives a restart.
type MemoryBackend struct {
	mu    sync.Mutex
	blobs map[string][]byte
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{blobs: make(map[string][]byte)}
}

func (m *MemoryBackend) Get(ctx context.Context, ownerID string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.blobs[ownerID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return slices.Clone(b), nil
}

func (m *MemoryBackend) Put(ctx context.Context, ownerID string, blob []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blobs[ownerID] = slices.Clone(blob)
	return nil
}
