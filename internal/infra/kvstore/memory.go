package kvstore

import (
	"context"
	"sync"
)

// Memory keeps every owner's entries in process memory.
type Memory struct {
	mu   sync.RWMutex
	data map[string]map[string]string
}

func NewMemory() *Memory {
	return &Memory{data: make(map[string]map[string]string)}
}

func (m *Memory) GetAll(_ context.Context, owner string) (map[string]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make(map[string]string, len(m.data[owner]))
	for k, v := range m.data[owner] {
		out[k] = v
	}
	return out, nil
}

func (m *Memory) SetMany(_ context.Context, owner string, values map[string]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.data[owner]
	if !ok {
		t = make(map[string]string, len(values))
		m.data[owner] = t
	}
	for k, v := range values {
		if v == "" {
			delete(t, k)
			continue
		}
		t[k] = v
	}
	return nil
}

func (m *Memory) Close() error { return nil }
