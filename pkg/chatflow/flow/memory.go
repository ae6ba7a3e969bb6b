package flow

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepository is an in-memory flow repository for testing and examples.
type MemoryRepository struct {
	mu     sync.RWMutex
	flows  map[string]*Flow
	order  []string // insertion order, tie-break for equal priorities
	closed bool
}

// NewMemoryRepository creates a new in-memory flow repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		flows: make(map[string]*Flow),
	}
}

// Get implements Repository.
func (m *MemoryRepository) Get(_ context.Context, id string) (*Flow, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrRepositoryClosed
	}

	f, ok := m.flows[id]
	if !ok {
		return nil, ErrNotFound
	}
	return f, nil
}

// ActiveByDevice implements Repository.
// Ties on priority preserve insertion order.
func (m *MemoryRepository) ActiveByDevice(_ context.Context, deviceID string) ([]*Flow, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrRepositoryClosed
	}

	if deviceID == "" {
		return nil, nil
	}

	var flows []*Flow
	for _, id := range m.order {
		f := m.flows[id]
		if f.IsActive && f.DeviceID == deviceID {
			flows = append(flows, f)
		}
	}

	sort.SliceStable(flows, func(i, j int) bool {
		return flows[i].Priority < flows[j].Priority
	})
	return flows, nil
}

// Save implements Repository.
func (m *MemoryRepository) Save(_ context.Context, f *Flow) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrRepositoryClosed
	}

	if _, exists := m.flows[f.ID]; !exists {
		m.order = append(m.order, f.ID)
	}
	m.flows[f.ID] = f
	return nil
}

// Close implements Repository.
func (m *MemoryRepository) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	m.flows = nil
	m.order = nil
	return nil
}
