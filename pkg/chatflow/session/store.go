package session

import (
	"context"
	"errors"
	"time"
)

// Store persists sessions across turns.
// Implementations must be safe for concurrent use.
//
// The contract is read-validate-execute-write: Store does not provide
// optimistic concurrency. Callers that need mutual exclusion per
// (device, contact) pair should hold a KeyedLock around the full turn.
type Store interface {
	// Active returns the active session for a (device, contact) pair.
	// Returns ErrNotFound if no active session exists.
	Active(ctx context.Context, deviceID, contactPhone string) (*Session, error)

	// Save inserts or updates a session by ID.
	Save(ctx context.Context, s *Session) error

	// Cleanup deletes terminal sessions whose last interaction is older
	// than the cutoff. Returns the number of rows removed.
	Cleanup(ctx context.Context, olderThan time.Time) (int64, error)

	// Close releases any resources (connections, files).
	Close() error
}

// Sentinel errors for store operations.
var (
	// ErrNotFound indicates no active session exists for the pair.
	ErrNotFound = errors.New("session not found")

	// ErrStoreClosed indicates the store has been closed.
	ErrStoreClosed = errors.New("session store closed")
)
