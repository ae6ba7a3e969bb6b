package chatflow

import (
	"context"
	"math/rand"
	"time"

	"github.com/randalmurphal/chatflow/pkg/chatflow/ai"
	"github.com/randalmurphal/chatflow/pkg/chatflow/expr"
	"github.com/randalmurphal/chatflow/pkg/chatflow/flow"
	"github.com/randalmurphal/chatflow/pkg/chatflow/gateway"
	"github.com/randalmurphal/chatflow/pkg/chatflow/session"
	"github.com/randalmurphal/chatflow/pkg/chatflow/template"
)

// TurnState carries everything one node execution can see: the graph, the
// owning flow record, the mutable session, and the inbound text. Inbound is
// non-empty only for the first step of a resumed turn; auto-advance steps
// and freshly triggered sessions see an empty string, which is how
// two-phase nodes distinguish their prompt visit from a reply.
type TurnState struct {
	Graph   *FlowGraph
	Flow    *flow.Flow
	Session *session.Session
	Inbound string
}

// stepFunc executes one node kind.
type stepFunc func(ctx context.Context, t *TurnState, node *Node) (StepResult, error)

// Interpreter maps node kinds to execution functions.
// It is stateless across turns; all conversation state lives on the session.
type Interpreter struct {
	steps    map[NodeKind]stepFunc
	resolver *ai.Resolver
	randInt  func(min, max int) int
}

// InterpreterOption configures an Interpreter.
type InterpreterOption func(*Interpreter)

// WithRandInt replaces the random-delay source. min and max are inclusive.
// Tests inject a deterministic function.
func WithRandInt(fn func(min, max int) int) InterpreterOption {
	return func(it *Interpreter) { it.randInt = fn }
}

// NewInterpreter creates the dispatch table. The resolver may be nil when
// no flow uses ai nodes; executing an ai node then degrades to an in-band
// error message.
func NewInterpreter(resolver *ai.Resolver, opts ...InterpreterOption) *Interpreter {
	it := &Interpreter{
		resolver: resolver,
		randInt: func(min, max int) int {
			if max <= min {
				return min
			}
			return min + rand.Intn(max-min+1)
		},
	}

	it.steps = map[NodeKind]stepFunc{
		KindStart:          it.execStart,
		KindKeywordTrigger: it.execStart,
		KindMessage:        it.execMessage,
		KindButton:         it.execButton,
		KindList:           it.execList,
		KindQuickReply:     it.execQuickReply,
		KindCondition:      it.execCondition,
		KindAI:             it.execAI,
		KindDelay:          it.execDelay,
		KindHumanTakeover:  it.execHumanTakeover,
		KindSendImage:      it.execSendMedia,
		KindSendVideo:      it.execSendMedia,
		KindSendPDF:        it.execSendMedia,
	}

	for _, opt := range opts {
		opt(it)
	}
	return it
}

// Step executes one node and returns its result.
// Errors are fatal for the turn; recoverable conditions (bad selection, AI
// misconfiguration) surface as messages inside the result instead.
func (it *Interpreter) Step(ctx context.Context, t *TurnState, node *Node) (StepResult, error) {
	fn, ok := it.steps[node.Kind]
	if !ok {
		return StepResult{}, &NodeError{NodeID: node.ID, Op: "dispatch", Err: ErrUnknownNodeKind}
	}
	return fn(ctx, t, node)
}

// advance resolves the unconditional next node. A node without an outgoing
// edge completes the flow.
func advance(t *TurnState, node *Node) StepResult {
	edge, ok := t.Graph.FirstEdge(node.ID)
	if !ok {
		return StepResult{Completed: true}
	}
	return StepResult{NextNodeID: edge.Target}
}

// execStart handles start and keyword_trigger: no side effect, advance.
func (it *Interpreter) execStart(_ context.Context, t *TurnState, node *Node) (StepResult, error) {
	return advance(t, node), nil
}

// execMessage resolves variables in the body and emits one text message.
func (it *Interpreter) execMessage(_ context.Context, t *TurnState, node *Node) (StepResult, error) {
	body := node.Data.String("message", node.Data.String("text", ""))
	resolved := template.Resolve(body, t.Session.Variables)

	res := advance(t, node)
	res.Messages = []gateway.Outbound{gateway.Text(resolved)}
	return res, nil
}

// execCondition resolves and evaluates the stored expression, then routes
// via the "true" or "false" handle. Condition nodes are exempt from loop
// detection, so flows may legitimately cycle through them within a turn.
func (it *Interpreter) execCondition(_ context.Context, t *TurnState, node *Node) (StepResult, error) {
	expression := node.Data.String("condition", "")
	resolved := template.Resolve(expression, t.Session.Variables)

	handle := "false"
	if expr.Evaluate(resolved) {
		handle = "true"
	}

	edge, ok := t.Graph.EdgeByHandle(node.ID, handle)
	if !ok {
		return StepResult{Completed: true}, nil
	}
	return StepResult{NextNodeID: edge.Target}, nil
}

// execDelay computes the pause duration without emitting messages.
// The orchestrator owns the actual sleep and the typing indicator.
func (it *Interpreter) execDelay(_ context.Context, t *TurnState, node *Node) (StepResult, error) {
	seconds := node.Data.Int("delay", 1)
	if node.Data.Bool("random", false) {
		min := node.Data.Int("minDelay", 1)
		max := node.Data.Int("maxDelay", min)
		seconds = it.randInt(min, max)
	}

	res := advance(t, node)
	res.Delay = time.Duration(seconds) * time.Second
	return res, nil
}

// execHumanTakeover emits the hand-off message and terminates the flow.
func (it *Interpreter) execHumanTakeover(_ context.Context, t *TurnState, node *Node) (StepResult, error) {
	body := node.Data.String("message", "An agent will continue this conversation shortly.")
	resolved := template.Resolve(body, t.Session.Variables)

	return StepResult{
		Messages:  []gateway.Outbound{gateway.Text(resolved)},
		Completed: true,
	}, nil
}

// mediaDefaults maps a media node kind to its default filename and mimetype.
var mediaDefaults = map[NodeKind]struct{ filename, mimetype string }{
	KindSendImage: {"image.jpg", "image/jpeg"},
	KindSendVideo: {"video.mp4", "video/mp4"},
	KindSendPDF:   {"document.pdf", "application/pdf"},
}

// execSendMedia emits one media message, or a placeholder error text when
// no file URL is configured - a misconfigured node must not fail the turn.
func (it *Interpreter) execSendMedia(_ context.Context, t *TurnState, node *Node) (StepResult, error) {
	res := advance(t, node)

	url := node.Data.String("fileUrl", node.Data.String("url", ""))
	if url == "" {
		res.Messages = []gateway.Outbound{gateway.Text("[File not available: no URL configured for this step]")}
		return res, nil
	}

	defaults := mediaDefaults[node.Kind]
	media := gateway.Media{
		URL:      url,
		Filename: node.Data.String("filename", defaults.filename),
		Mimetype: node.Data.String("mimetype", defaults.mimetype),
		Caption:  template.Resolve(node.Data.String("caption", ""), t.Session.Variables),
	}

	if node.Kind == KindSendImage {
		res.Messages = []gateway.Outbound{gateway.Image(media)}
	} else {
		res.Messages = []gateway.Outbound{gateway.File(media)}
	}
	return res, nil
}
