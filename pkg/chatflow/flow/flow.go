// Package flow stores the flow records the engine matches and interprets.
package flow

import (
	"encoding/json"
	"strings"
	"time"
)

// Keyword match types.
const (
	// MatchExact requires case-insensitive trimmed equality.
	MatchExact = "exact"
	// MatchContains requires case-insensitive substring containment.
	// Any unrecognized type falls back to this behavior.
	MatchContains = "contains"
)

// Keyword is one trigger descriptor. The editor historically stored bare
// strings; those decode as contains-type keywords.
type Keyword struct {
	Term string `json:"term"`
	Type string `json:"type,omitempty"`
}

// UnmarshalJSON accepts both the legacy bare-string form and the
// {term, type} object form.
func (k *Keyword) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		k.Term = s
		k.Type = MatchContains
		return nil
	}

	type keyword Keyword
	var obj keyword
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	*k = Keyword(obj)
	return nil
}

// Matches reports whether the keyword matches the inbound message text.
func (k Keyword) Matches(text string) bool {
	term := strings.ToLower(strings.TrimSpace(k.Term))
	if term == "" {
		return false
	}

	if k.Type == MatchExact {
		return strings.ToLower(strings.TrimSpace(text)) == term
	}
	return strings.Contains(strings.ToLower(text), term)
}

// Flow is one stored automated conversation: trigger keywords plus the
// graph JSON produced by the visual editor. The engine treats Graph as an
// opaque blob until a session needs it.
type Flow struct {
	ID        string
	TenantID  string
	Name      string
	DeviceID  string // empty = orphaned, excluded from trigger matching
	Priority  int
	IsActive  bool
	Keywords  []Keyword
	Graph     json.RawMessage
	CreatedAt time.Time
}

// MatchesKeyword reports whether any of the flow's keywords matches text.
func (f *Flow) MatchesKeyword(text string) bool {
	for _, k := range f.Keywords {
		if k.Matches(text) {
			return true
		}
	}
	return false
}
