package flow

import (
	"context"
	"errors"
)

// Repository loads flow records.
// Implementations must be safe for concurrent use.
type Repository interface {
	// Get returns a flow by ID.
	// Returns ErrNotFound if the flow doesn't exist.
	Get(ctx context.Context, id string) (*Flow, error)

	// ActiveByDevice returns the active flows assigned to a device in
	// ascending priority order. Ties are returned in repository order;
	// the SQLite repository orders equal priorities by creation time.
	// Orphaned flows (no device) are never returned.
	ActiveByDevice(ctx context.Context, deviceID string) ([]*Flow, error)

	// Save inserts or updates a flow by ID.
	Save(ctx context.Context, f *Flow) error

	// Close releases any resources (connections, files).
	Close() error
}

// Sentinel errors for repository operations.
var (
	// ErrNotFound indicates a flow doesn't exist.
	ErrNotFound = errors.New("flow not found")

	// ErrRepositoryClosed indicates the repository has been closed.
	ErrRepositoryClosed = errors.New("flow repository closed")
)
