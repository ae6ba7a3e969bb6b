package chatflow

import (
	"encoding/json"
	"fmt"

	"github.com/randalmurphal/chatflow/pkg/chatflow/config"
)

// Edge is a directed transition between nodes. SourceHandle discriminates
// multi-exit nodes: condition nodes use "true"/"false", selection nodes use
// the chosen option's id.
type Edge struct {
	ID           string `json:"id"`
	Source       string `json:"source"`
	Target       string `json:"target"`
	SourceHandle string `json:"sourceHandle,omitempty"`
}

// Node is one step in a flow. Data carries kind-specific configuration.
type Node struct {
	ID   string
	Kind NodeKind
	Data config.Data
}

// FlowGraph is the immutable in-memory representation of a flow's nodes
// and edges, decoded once per invocation from the editor's JSON.
//
// The graph tolerates dangling edge references: resolution happens at step
// time and a missing target converts the session to error status instead
// of panicking.
type FlowGraph struct {
	nodes    map[string]*Node
	outgoing map[string][]Edge
	edges    []Edge
}

// wireNode is the editor's node wire format.
type wireNode struct {
	ID   string         `json:"id"`
	Type string         `json:"type"`
	Data map[string]any `json:"data"`
}

// wireGraph is the editor's graph wire format.
type wireGraph struct {
	Nodes []wireNode `json:"nodes"`
	Edges []Edge     `json:"edges"`
}

// ParseGraph decodes the editor's graph JSON.
// Duplicate node IDs are an error; dangling edges are not.
func ParseGraph(raw []byte) (*FlowGraph, error) {
	var wire wireGraph
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, fmt.Errorf("parse graph: %w", err)
	}

	g := &FlowGraph{
		nodes:    make(map[string]*Node, len(wire.Nodes)),
		outgoing: make(map[string][]Edge),
		edges:    wire.Edges,
	}

	for _, n := range wire.Nodes {
		if n.ID == "" {
			return nil, fmt.Errorf("parse graph: node with empty id")
		}
		if _, exists := g.nodes[n.ID]; exists {
			return nil, fmt.Errorf("parse graph: duplicate node id %q", n.ID)
		}
		g.nodes[n.ID] = &Node{
			ID:   n.ID,
			Kind: NodeKind(n.Type),
			Data: config.New(n.Data),
		}
	}

	for _, e := range wire.Edges {
		g.outgoing[e.Source] = append(g.outgoing[e.Source], e)
	}

	return g, nil
}

// Node returns the node with the given id.
func (g *FlowGraph) Node(id string) (*Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// Len returns the number of nodes.
func (g *FlowGraph) Len() int {
	return len(g.nodes)
}

// FirstEdge returns the first outgoing edge of a node.
// Used by single-exit kinds that advance unconditionally.
func (g *FlowGraph) FirstEdge(source string) (Edge, bool) {
	edges := g.outgoing[source]
	if len(edges) == 0 {
		return Edge{}, false
	}
	return edges[0], true
}

// EdgeByHandle returns the outgoing edge of a node keyed by sourceHandle.
func (g *FlowGraph) EdgeByHandle(source, handle string) (Edge, bool) {
	for _, e := range g.outgoing[source] {
		if e.SourceHandle == handle {
			return e, true
		}
	}
	return Edge{}, false
}

// Start returns the graph's entry node: the first node of kind start or
// keyword_trigger.
func (g *FlowGraph) Start() (*Node, bool) {
	for _, n := range g.nodes {
		if n.Kind == KindStart || n.Kind == KindKeywordTrigger {
			return n, true
		}
	}
	return nil, false
}

// Validate reports editor-facing diagnostics: a missing entry node and
// edges referencing unknown nodes. Execution does not require a clean
// report; the engine tolerates dangling references at runtime.
func (g *FlowGraph) Validate() []string {
	var problems []string

	if _, ok := g.Start(); !ok {
		problems = append(problems, "graph has no start node")
	}

	for _, e := range g.edges {
		if _, ok := g.nodes[e.Source]; !ok {
			problems = append(problems, fmt.Sprintf("edge %s references unknown source node %q", e.ID, e.Source))
		}
		if _, ok := g.nodes[e.Target]; !ok {
			problems = append(problems, fmt.Sprintf("edge %s references unknown target node %q", e.ID, e.Target))
		}
	}

	return problems
}
