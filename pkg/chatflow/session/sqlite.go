package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// SQLiteStore persists sessions to SQLite.
// It is suitable for single-process production use.
type SQLiteStore struct {
	db     *sql.DB
	mu     sync.RWMutex
	closed bool
}

// NewSQLiteStore creates a new SQLite session store.
// The path should be a file path (e.g., "./sessions.db") or ":memory:" for testing.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Enable WAL mode for better concurrent read performance
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			flow_id TEXT NOT NULL,
			device_id TEXT NOT NULL,
			contact_phone TEXT NOT NULL,
			current_node_id TEXT NOT NULL,
			variables TEXT NOT NULL DEFAULT '{}',
			context TEXT NOT NULL DEFAULT '[]',
			status TEXT NOT NULL,
			last_interaction TEXT NOT NULL
		)
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create table: %w", err)
	}

	if _, err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_sessions_active
		ON sessions(device_id, contact_phone, status)
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create index: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Active implements Store.
func (s *SQLiteStore) Active(ctx context.Context, deviceID, contactPhone string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrStoreClosed
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT id, flow_id, device_id, contact_phone, current_node_id,
		       variables, context, status, last_interaction
		FROM sessions
		WHERE device_id = ? AND contact_phone = ? AND status = ?
		ORDER BY last_interaction DESC
		LIMIT 1
	`, deviceID, contactPhone, StatusActive)

	return scanSession(row)
}

// Save implements Store.
func (s *SQLiteStore) Save(ctx context.Context, sess *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}

	variables, err := json.Marshal(orEmptyMap(sess.Variables))
	if err != nil {
		return fmt.Errorf("marshal variables: %w", err)
	}
	turns, err := json.Marshal(orEmptyTurns(sess.Context))
	if err != nil {
		return fmt.Errorf("marshal context: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO sessions (id, flow_id, device_id, contact_phone,
			current_node_id, variables, context, status, last_interaction)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			current_node_id = excluded.current_node_id,
			variables = excluded.variables,
			context = excluded.context,
			status = excluded.status,
			last_interaction = excluded.last_interaction
	`, sess.ID, sess.FlowID, sess.DeviceID, sess.ContactPhone,
		sess.CurrentNodeID, string(variables), string(turns), sess.Status,
		sess.LastInteraction.UTC().Format(time.RFC3339Nano))

	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Cleanup implements Store.
func (s *SQLiteStore) Cleanup(ctx context.Context, olderThan time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return 0, ErrStoreClosed
	}

	res, err := s.db.ExecContext(ctx, `
		DELETE FROM sessions
		WHERE status != ? AND last_interaction < ?
	`, StatusActive, olderThan.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return 0, fmt.Errorf("cleanup sessions: %w", err)
	}
	return res.RowsAffected()
}

// Close implements Store.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}

	s.closed = true
	return s.db.Close()
}

// scanSession reads one session row.
func scanSession(row *sql.Row) (*Session, error) {
	var sess Session
	var variables, turns, lastInteraction string
	err := row.Scan(&sess.ID, &sess.FlowID, &sess.DeviceID, &sess.ContactPhone,
		&sess.CurrentNodeID, &variables, &turns, &sess.Status, &lastInteraction)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan session: %w", err)
	}

	if err := json.Unmarshal([]byte(variables), &sess.Variables); err != nil {
		return nil, fmt.Errorf("unmarshal variables: %w", err)
	}
	if err := json.Unmarshal([]byte(turns), &sess.Context); err != nil {
		return nil, fmt.Errorf("unmarshal context: %w", err)
	}
	sess.LastInteraction, _ = time.Parse(time.RFC3339Nano, lastInteraction)

	return &sess, nil
}

func orEmptyMap(m map[string]any) map[string]any {
	if m == nil {
		return map[string]any{}
	}
	return m
}

func orEmptyTurns(t []Turn) []Turn {
	if t == nil {
		return []Turn{}
	}
	return t
}
