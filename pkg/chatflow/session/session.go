// Package session persists conversation cursors between inbound messages.
package session

import (
	"time"

	"github.com/google/uuid"
)

// Status is the lifecycle state of a session.
type Status string

// Session lifecycle states. Completed and Error are terminal: the store
// excludes them from active lookups and a fresh trigger match runs for the
// next inbound message.
const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusError     Status = "error"
)

// Turn is one entry of the AI conversation memory.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Session is the persisted cursor for one (device, contact) conversation
// currently inside a flow. At most one session per pair has StatusActive.
type Session struct {
	ID              string
	FlowID          string
	DeviceID        string
	ContactPhone    string
	CurrentNodeID   string
	Variables       map[string]any
	Context         []Turn
	Status          Status
	LastInteraction time.Time
}

// New creates an active session positioned at startNodeID.
func New(flowID, deviceID, contactPhone, startNodeID string) *Session {
	return &Session{
		ID:              uuid.New().String(),
		FlowID:          flowID,
		DeviceID:        deviceID,
		ContactPhone:    contactPhone,
		CurrentNodeID:   startNodeID,
		Variables:       make(map[string]any),
		Status:          StatusActive,
		LastInteraction: time.Now().UTC(),
	}
}

// SetVariable stores a scalar under name, allocating the map if needed.
func (s *Session) SetVariable(name string, value any) {
	if s.Variables == nil {
		s.Variables = make(map[string]any)
	}
	s.Variables[name] = value
}

// AppendTurn appends one conversation-memory entry.
func (s *Session) AppendTurn(role, content string) {
	s.Context = append(s.Context, Turn{Role: role, Content: content})
}

// Terminal reports whether the session can no longer advance.
func (s *Session) Terminal() bool {
	return s.Status == StatusCompleted || s.Status == StatusError
}
