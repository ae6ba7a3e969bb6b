package session

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is an in-memory session store for testing and examples.
// Data is lost when the process exits.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session // session ID -> session
	closed   bool
}

// NewMemoryStore creates a new in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]*Session),
	}
}

// Active implements Store.
func (m *MemoryStore) Active(_ context.Context, deviceID, contactPhone string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrStoreClosed
	}

	var latest *Session
	for _, s := range m.sessions {
		if s.DeviceID != deviceID || s.ContactPhone != contactPhone || s.Status != StatusActive {
			continue
		}
		if latest == nil || s.LastInteraction.After(latest.LastInteraction) {
			latest = s
		}
	}
	if latest == nil {
		return nil, ErrNotFound
	}
	return copySession(latest), nil
}

// Save implements Store.
func (m *MemoryStore) Save(_ context.Context, s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}

	m.sessions[s.ID] = copySession(s)
	return nil
}

// Cleanup implements Store.
func (m *MemoryStore) Cleanup(_ context.Context, olderThan time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return 0, ErrStoreClosed
	}

	var removed int64
	for id, s := range m.sessions {
		if s.Status != StatusActive && s.LastInteraction.Before(olderThan) {
			delete(m.sessions, id)
			removed++
		}
	}
	return removed, nil
}

// Close implements Store.
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	m.sessions = nil
	return nil
}

// Len returns the number of stored sessions. Useful for testing.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// copySession returns a deep copy so callers never share live state
// with the store.
func copySession(s *Session) *Session {
	cp := *s
	if s.Variables != nil {
		cp.Variables = make(map[string]any, len(s.Variables))
		for k, v := range s.Variables {
			cp.Variables[k] = v
		}
	}
	if s.Context != nil {
		cp.Context = make([]Turn, len(s.Context))
		copy(cp.Context, s.Context)
	}
	return &cp
}
