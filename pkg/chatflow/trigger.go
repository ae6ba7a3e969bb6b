package chatflow

import (
	"context"
	"errors"

	"github.com/randalmurphal/chatflow/pkg/chatflow/flow"
	"github.com/randalmurphal/chatflow/pkg/chatflow/observability"
	"github.com/randalmurphal/chatflow/pkg/chatflow/session"
)

// MatchFlow scans flows in order and returns the first one whose keyword
// set matches the message text. Flows without an assigned device are never
// matched. Returns nil when nothing matches.
//
// The caller supplies flows in ascending priority order (the repository
// contract); ties keep repository order.
func MatchFlow(flows []*flow.Flow, text string) *flow.Flow {
	for _, f := range flows {
		if f.DeviceID == "" {
			continue
		}
		if f.MatchesKeyword(text) {
			return f
		}
	}
	return nil
}

// turnSetup is everything resolveSession produces for one turn.
type turnSetup struct {
	sess    *session.Session
	flow    *flow.Flow
	graph   *FlowGraph
	resumed bool
}

// resolveSession either validates and returns the pair's active session or
// runs trigger matching for a new one.
//
// A session pointing at a flow or node that no longer exists is invalidated
// (marked completed) and matching restarts fresh within the same invocation.
// The restart happens at most once: matching never re-enters validation
// because a freshly triggered session is built from the current graph.
func (e *Engine) resolveSession(ctx context.Context, deviceID, contact, text string) (*turnSetup, error) {
	sess, err := e.sessions.Active(ctx, deviceID, contact)
	if err != nil && !errors.Is(err, session.ErrNotFound) {
		return nil, err
	}

	if sess != nil {
		setup, healed, err := e.validateSession(ctx, sess)
		if err != nil {
			return nil, err
		}
		if !healed {
			return setup, nil
		}
		// Invalidated; fall through to a fresh trigger match.
	}

	return e.matchNewSession(ctx, deviceID, contact, text)
}

// validateSession checks that the session's flow and current node still
// exist. Returns healed=true when the session was invalidated.
func (e *Engine) validateSession(ctx context.Context, sess *session.Session) (*turnSetup, bool, error) {
	f, err := e.flows.Get(ctx, sess.FlowID)
	if errors.Is(err, flow.ErrNotFound) {
		return nil, true, e.heal(ctx, sess, "flow deleted")
	}
	if err != nil {
		return nil, false, err
	}

	g, err := ParseGraph(f.Graph)
	if err != nil {
		return nil, true, e.heal(ctx, sess, "graph unparseable")
	}

	if _, ok := g.Node(sess.CurrentNodeID); !ok {
		return nil, true, e.heal(ctx, sess, "current node deleted")
	}

	return &turnSetup{sess: sess, flow: f, graph: g, resumed: true}, false, nil
}

// heal marks a stale session completed so it drops out of active lookups.
func (e *Engine) heal(ctx context.Context, sess *session.Session, reason string) error {
	observability.LogSelfHeal(e.logger, sess.ID, reason)
	sess.Status = session.StatusCompleted
	return e.sessions.Save(ctx, sess)
}

// matchNewSession runs trigger matching and creates a session when a flow
// matches. A nil setup with nil error means no flow matched.
func (e *Engine) matchNewSession(ctx context.Context, deviceID, contact, text string) (*turnSetup, error) {
	flows, err := e.flows.ActiveByDevice(ctx, deviceID)
	if err != nil {
		return nil, err
	}

	f := MatchFlow(flows, text)
	if f == nil {
		return nil, nil
	}

	g, err := ParseGraph(f.Graph)
	if err != nil {
		return nil, &NodeError{NodeID: "", Op: "parse", Err: err}
	}

	start, ok := g.Start()
	if !ok {
		// A matched flow without a start node cannot run; treat as no match.
		return nil, nil
	}

	observability.LogTriggerMatch(e.logger, f.ID, deviceID)
	sess := session.New(f.ID, deviceID, contact, start.ID)
	return &turnSetup{sess: sess, flow: f, graph: g, resumed: false}, nil
}
