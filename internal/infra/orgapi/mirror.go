package orgapi

import (
	"context"
	"log"
	"sync"
)

// Mirror keeps a local copy of one collection. Every call flips the loading
// flag, and a failure is logged and kept in the error slot until the next
// call. Successful writes patch the copy without refetching.
type Mirror struct {
	client *Client
	res    Resource

	mu      sync.RWMutex
	items   []Record
	loading int
	lastErr error
}

// State is a point-in-time view of a Mirror.
type State struct {
	Resource Resource `json:"resource"`
	Items    []Record `json:"items"`
	Loading  bool     `json:"loading"`
	Error    string   `json:"error,omitempty"`
}

func NewMirror(client *Client, res Resource) *Mirror {
	return &Mirror{client: client, res: res}
}

func (m *Mirror) begin() {
	m.mu.Lock()
	m.loading++
	m.mu.Unlock()
}

func (m *Mirror) end(err error, patch func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loading--
	m.lastErr = err
	if err != nil {
		log.Printf("[orgapi] %s: %v", m.res, err)
		return
	}
	if patch != nil {
		patch()
	}
}

// Load replaces the copy with the remote list.
func (m *Mirror) Load(ctx context.Context, token string) ([]Record, error) {
	m.begin()
	list, err := m.client.List(ctx, token, m.res)
	m.end(err, func() { m.items = list })
	return list, err
}

// Create appends the created record.
func (m *Mirror) Create(ctx context.Context, token string, body Record) (Record, error) {
	m.begin()
	rec, err := m.client.Create(ctx, token, m.res, body)
	m.end(err, func() { m.items = append(m.items, rec) })
	return rec, err
}

// Update replaces the record with the same id.
func (m *Mirror) Update(ctx context.Context, token, id string, body Record) (Record, error) {
	m.begin()
	rec, err := m.client.Update(ctx, token, m.res, id, body)
	m.end(err, func() {
		for i, it := range m.items {
			if it.ID() == id {
				m.items[i] = rec
				return
			}
		}
	})
	return rec, err
}

// Delete removes the record with the id.
func (m *Mirror) Delete(ctx context.Context, token, id string) error {
	m.begin()
	err := m.client.Delete(ctx, token, m.res, id)
	m.end(err, func() {
		out := m.items[:0]
		for _, it := range m.items {
			if it.ID() != id {
				out = append(out, it)
			}
		}
		m.items = out
	})
	return err
}

func (m *Mirror) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	st := State{Resource: m.res, Items: make([]Record, len(m.items)), Loading: m.loading > 0}
	copy(st.Items, m.items)
	if m.lastErr != nil {
		st.Error = m.lastErr.Error()
	}
	return st
}
