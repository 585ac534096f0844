package store

import (
	"context"
	"sync"

	"example.com/activitytrack/internal/domain"
)

// Memory holds the collection in process memory. It backs tests and
// ephemeral local runs; nothing survives a restart.
type Memory struct {
	mu    sync.RWMutex
	items []domain.Activity
}

// NewMemory constructs an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{items: []domain.Activity{}}
}

func (m *Memory) ReadAll(ctx context.Context) ([]domain.Activity, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]domain.Activity, len(m.items))
	copy(out, m.items)
	return out, nil
}

func (m *Memory) WriteAll(ctx context.Context, items []domain.Activity) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.items = make([]domain.Activity, len(items))
	copy(m.items, items)
	return nil
}

func (m *Memory) Close() error { return nil }
