package flow

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// SQLiteRepository persists flows to SQLite.
type SQLiteRepository struct {
	db     *sql.DB
	mu     sync.RWMutex
	closed bool
}

// NewSQLiteRepository creates a new SQLite flow repository.
// The path should be a file path or ":memory:" for testing.
func NewSQLiteRepository(path string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS flows (
			id TEXT PRIMARY KEY,
			tenant_id TEXT NOT NULL DEFAULT '',
			name TEXT NOT NULL,
			device_id TEXT NOT NULL DEFAULT '',
			priority INTEGER NOT NULL DEFAULT 0,
			is_active INTEGER NOT NULL DEFAULT 1,
			keywords TEXT NOT NULL DEFAULT '[]',
			graph TEXT NOT NULL DEFAULT '{}',
			created_at TEXT NOT NULL
		)
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create table: %w", err)
	}

	if _, err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_flows_device
		ON flows(device_id, is_active, priority)
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create index: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

// Get implements Repository.
func (r *SQLiteRepository) Get(ctx context.Context, id string) (*Flow, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.closed {
		return nil, ErrRepositoryClosed
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT id, tenant_id, name, device_id, priority, is_active, keywords, graph, created_at
		FROM flows WHERE id = ?
	`, id)

	f, err := scanFlow(row.Scan)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	return f, err
}

// ActiveByDevice implements Repository.
// Equal priorities are ordered by creation time as a tie-break; this is an
// assumption, not a guaranteed contract.
func (r *SQLiteRepository) ActiveByDevice(ctx context.Context, deviceID string) ([]*Flow, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.closed {
		return nil, ErrRepositoryClosed
	}

	if deviceID == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, tenant_id, name, device_id, priority, is_active, keywords, graph, created_at
		FROM flows
		WHERE device_id = ? AND is_active = 1
		ORDER BY priority, created_at
	`, deviceID)
	if err != nil {
		return nil, fmt.Errorf("list flows: %w", err)
	}
	defer rows.Close()

	var flows []*Flow
	for rows.Next() {
		f, err := scanFlow(rows.Scan)
		if err != nil {
			return nil, err
		}
		flows = append(flows, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate flows: %w", err)
	}
	return flows, nil
}

// Save implements Repository.
func (r *SQLiteRepository) Save(ctx context.Context, f *Flow) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return ErrRepositoryClosed
	}

	keywords, err := json.Marshal(f.Keywords)
	if err != nil {
		return fmt.Errorf("marshal keywords: %w", err)
	}

	createdAt := f.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	graph := f.Graph
	if len(graph) == 0 {
		graph = json.RawMessage("{}")
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO flows (id, tenant_id, name, device_id, priority, is_active, keywords, graph, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			tenant_id = excluded.tenant_id,
			name = excluded.name,
			device_id = excluded.device_id,
			priority = excluded.priority,
			is_active = excluded.is_active,
			keywords = excluded.keywords,
			graph = excluded.graph
	`, f.ID, f.TenantID, f.Name, f.DeviceID, f.Priority, boolToInt(f.IsActive),
		string(keywords), string(graph), createdAt.Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("save flow: %w", err)
	}
	return nil
}

// Close implements Repository.
func (r *SQLiteRepository) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil
	}

	r.closed = true
	return r.db.Close()
}

// scanFlow reads one flow row via the given scan function.
func scanFlow(scan func(dest ...any) error) (*Flow, error) {
	var f Flow
	var keywords, graph, createdAt string
	var active int
	err := scan(&f.ID, &f.TenantID, &f.Name, &f.DeviceID, &f.Priority,
		&active, &keywords, &graph, &createdAt)
	if err != nil {
		return nil, err
	}

	f.IsActive = active != 0
	if err := json.Unmarshal([]byte(keywords), &f.Keywords); err != nil {
		return nil, fmt.Errorf("unmarshal keywords: %w", err)
	}
	f.Graph = json.RawMessage(graph)
	f.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
	return &f, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
