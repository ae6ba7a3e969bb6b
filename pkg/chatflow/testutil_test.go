package chatflow

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/randalmurphal/chatflow/pkg/chatflow/ai"
	"github.com/randalmurphal/chatflow/pkg/chatflow/flow"
	"github.com/randalmurphal/chatflow/pkg/chatflow/gateway"
	"github.com/randalmurphal/chatflow/pkg/chatflow/session"
	"github.com/stretchr/testify/require"
)

// tnode is a graph node under construction in a test.
type tnode struct {
	ID   string         `json:"id"`
	Type string         `json:"type"`
	Data map[string]any `json:"data"`
}

// tedge is a graph edge under construction in a test.
type tedge struct {
	ID           string `json:"id"`
	Source       string `json:"source"`
	Target       string `json:"target"`
	SourceHandle string `json:"sourceHandle,omitempty"`
}

// graphJSON marshals nodes and edges into the editor's wire format.
func graphJSON(t *testing.T, nodes []tnode, edges []tedge) json.RawMessage {
	t.Helper()
	raw, err := json.Marshal(map[string]any{"nodes": nodes, "edges": edges})
	require.NoError(t, err)
	return raw
}

// edge builds an unconditional edge between two nodes.
func edge(source, target string) tedge {
	return tedge{ID: source + "-" + target, Source: source, Target: target}
}

// hedge builds a handle-keyed edge (condition branches, button routing).
func hedge(source, target, handle string) tedge {
	return tedge{ID: source + "-" + target, Source: source, Target: target, SourceHandle: handle}
}

// parseGraph is a require-wrapped ParseGraph.
func parseGraph(t *testing.T, raw json.RawMessage) *FlowGraph {
	t.Helper()
	g, err := ParseGraph(raw)
	require.NoError(t, err)
	return g
}

// turnFor builds a TurnState over a fresh session parked at nodeID.
func turnFor(g *FlowGraph, nodeID, inbound string) *TurnState {
	return &TurnState{
		Graph:   g,
		Flow:    &flow.Flow{ID: "flow-1", TenantID: "tenant-1"},
		Session: session.New("flow-1", "device-1", "+551", nodeID),
		Inbound: inbound,
	}
}

// stepNode runs one interpreter step against the named node.
func stepNode(t *testing.T, it *Interpreter, ts *TurnState, nodeID string) StepResult {
	t.Helper()
	node, ok := ts.Graph.Node(nodeID)
	require.True(t, ok, "node %s not in graph", nodeID)
	res, err := it.Step(context.Background(), ts, node)
	require.NoError(t, err)
	return res
}

// testEnv bundles the wired engine and its collaborators for end-to-end
// turn tests.
type testEnv struct {
	engine   *Engine
	flows    *flow.MemoryRepository
	sessions *session.MemoryStore
	gw       *gateway.Recorder
	slept    []time.Duration
}

// newTestEnv wires an engine over in-memory stores and a recording gateway.
// Delays are captured instead of slept.
func newTestEnv(t *testing.T, opts ...Option) *testEnv {
	t.Helper()

	env := &testEnv{
		flows:    flow.NewMemoryRepository(),
		sessions: session.NewMemoryStore(),
		gw:       gateway.NewRecorder(),
	}

	registry := gateway.NewRegistry()
	registry.Register("waha", env.gw)

	resolver := ai.NewResolver(ai.NewMemoryCredentials(), &ai.Canned{Reply: "canned reply"})
	interp := NewInterpreter(resolver, WithRandInt(func(min, _ int) int { return min }))

	base := []Option{
		WithSleeper(func(_ context.Context, d time.Duration) error {
			env.slept = append(env.slept, d)
			return nil
		}),
	}
	env.engine = New(env.flows, env.sessions, registry, nil, interp, append(base, opts...)...)
	return env
}

// addFlow saves an active flow with a contains-keyword trigger.
func (env *testEnv) addFlow(t *testing.T, id, keyword string, graph json.RawMessage) {
	t.Helper()
	require.NoError(t, env.flows.Save(context.Background(), &flow.Flow{
		ID:       id,
		TenantID: "tenant-1",
		Name:     id,
		DeviceID: "device-1",
		IsActive: true,
		Keywords: []flow.Keyword{{Term: keyword, Type: flow.MatchContains}},
		Graph:    graph,
	}))
}

// handle runs one inbound turn from the default test contact.
func (env *testEnv) handle(t *testing.T, text string) *TurnResult {
	t.Helper()
	result, err := env.engine.HandleMessage(context.Background(), InboundMessage{
		DeviceID:     "device-1",
		ContactPhone: "+551",
		Text:         text,
	})
	require.NoError(t, err)
	return result
}

// sentTexts returns the text bodies of all message-sending gateway calls.
func (env *testEnv) sentTexts() []string {
	var texts []string
	for _, c := range env.gw.Sent() {
		texts = append(texts, c.Text)
	}
	return texts
}
