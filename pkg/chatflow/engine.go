package chatflow

import (
	"context"
	"log/slog"
	"time"

	"github.com/randalmurphal/chatflow/pkg/chatflow/flow"
	"github.com/randalmurphal/chatflow/pkg/chatflow/gateway"
	"github.com/randalmurphal/chatflow/pkg/chatflow/observability"
	"github.com/randalmurphal/chatflow/pkg/chatflow/session"
)

// InboundMessage is one message arriving from the messaging network.
type InboundMessage struct {
	DeviceID     string
	ContactPhone string
	// ChatID is the gateway-level conversation identifier.
	// Defaults to ContactPhone when empty.
	ChatID string
	Text   string
}

// TurnResult reports what one inbound-message turn did.
type TurnResult struct {
	// Matched is false when no active session existed and no flow's
	// keywords matched; nothing was sent or persisted.
	Matched bool
	// SessionID identifies the session the turn ran under.
	SessionID string
	// Status is the session status after the turn.
	Status session.Status
	// Sent lists the outbound messages dispatched, in order.
	Sent []gateway.Outbound
	// Steps counts executed nodes.
	Steps int
}

// DeviceDirectory reports a device's configured gateway channel type.
type DeviceDirectory interface {
	GatewayType(ctx context.Context, deviceID string) (string, error)
}

// StaticDevices is a DeviceDirectory backed by a fixed map.
// Unknown devices resolve to the empty string, which makes the engine fall
// back to its default channel type.
type StaticDevices map[string]string

// GatewayType implements DeviceDirectory.
func (d StaticDevices) GatewayType(_ context.Context, deviceID string) (string, error) {
	return d[deviceID], nil
}

// Engine drives the interpreter for each inbound message: session
// resolution, the auto-advance loop, outbound dispatch, delays, and
// persistence.
type Engine struct {
	flows    flow.Repository
	sessions session.Store
	gateways *gateway.Registry
	devices  DeviceDirectory
	interp   *Interpreter
	locks    *session.KeyedLock

	logger         *slog.Logger
	metrics        observability.MetricsRecorder
	spans          observability.SpanManager
	maxSteps       int
	defaultChannel string
	sleep          func(ctx context.Context, d time.Duration) error
}

// New creates an engine. The devices directory may be nil; every device
// then uses the default channel type (see WithDefaultChannel).
func New(flows flow.Repository, sessions session.Store, gateways *gateway.Registry,
	devices DeviceDirectory, interp *Interpreter, opts ...Option) *Engine {
	e := &Engine{
		flows:          flows,
		sessions:       sessions,
		gateways:       gateways,
		devices:        devices,
		interp:         interp,
		locks:          session.NewKeyedLock(),
		metrics:        observability.NoopMetrics{},
		spans:          observability.NoopSpanManager{},
		maxSteps:       100,
		defaultChannel: "waha",
		sleep:          sleepCtx,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// sleepCtx sleeps for d or until ctx is done, whichever comes first.
// Keeps long auto-advance delay chains interruptible by the hosting
// runtime's request deadline.
func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// HandleMessage processes one inbound message end to end and persists the
// resulting session state.
//
// Fatal step errors (missing node, loop, send failure) convert the session
// to error status before returning; the returned TurnResult is always
// non-nil for a matched turn so callers can report what was sent before
// the failure. The end user only ever sees chat messages, never transport
// errors.
func (e *Engine) HandleMessage(ctx context.Context, msg InboundMessage) (*TurnResult, error) {
	unlock := e.locks.Lock(msg.DeviceID, msg.ContactPhone)
	defer unlock()

	done := observability.TimedOperation()
	observability.LogTurnStart(e.logger, msg.DeviceID, msg.ContactPhone)

	ctx, span := e.spans.StartTurnSpan(ctx, msg.DeviceID, msg.ContactPhone)
	result, err := e.runTurn(ctx, msg)
	e.spans.EndSpanWithError(span, err)

	status := "unmatched"
	if result != nil && result.Matched {
		status = string(result.Status)
		observability.LogTurnComplete(e.logger, result.SessionID, status, done(), result.Steps)
	}
	e.metrics.RecordTurn(ctx, status, time.Duration(done())*time.Millisecond)

	return result, err
}

// runTurn is HandleMessage without locking and turn-level observability.
func (e *Engine) runTurn(ctx context.Context, msg InboundMessage) (*TurnResult, error) {
	gw, err := e.gatewayFor(ctx, msg.DeviceID)
	if err != nil {
		return nil, err
	}

	setup, err := e.resolveSession(ctx, msg.DeviceID, msg.ContactPhone, msg.Text)
	if err != nil {
		return nil, err
	}
	if setup == nil {
		return &TurnResult{Matched: false}, nil
	}

	chatID := msg.ChatID
	if chatID == "" {
		chatID = msg.ContactPhone
	}

	// Read receipt is best-effort, like typing indicators.
	_ = gw.SendSeen(ctx, chatID)

	t := &TurnState{
		Graph:   setup.graph,
		Flow:    setup.flow,
		Session: setup.sess,
	}
	if setup.resumed {
		// Only a resumed turn carries fresh user input; for a newly
		// triggered session the text was the trigger keyword.
		t.Inbound = msg.Text
	}

	result := &TurnResult{Matched: true, SessionID: setup.sess.ID}
	err = e.runSteps(ctx, t, gw, chatID, result)

	setup.sess.LastInteraction = time.Now().UTC()
	if err != nil {
		observability.LogTurnError(e.logger, setup.sess.ID, err, setup.sess.CurrentNodeID)
		setup.sess.Status = session.StatusError
	}

	if saveErr := e.sessions.Save(ctx, setup.sess); saveErr != nil && err == nil {
		err = saveErr
	}
	observability.LogSessionSaved(e.logger, setup.sess.ID, setup.sess.CurrentNodeID, string(setup.sess.Status))

	result.Status = setup.sess.Status
	return result, err
}

// runSteps drives the interpreter until the flow waits, completes, or
// fails. It mutates t.Session's cursor and status but does not persist.
func (e *Engine) runSteps(ctx context.Context, t *TurnState, gw gateway.Gateway, chatID string, result *TurnResult) error {
	sess := t.Session
	visited := make(map[string]bool)

	for {
		if result.Steps >= e.maxSteps {
			return &MaxStepsError{Max: e.maxSteps, LastNodeID: sess.CurrentNodeID}
		}

		node, ok := t.Graph.Node(sess.CurrentNodeID)
		if !ok {
			return &NodeNotFoundError{NodeID: sess.CurrentNodeID}
		}

		// Condition nodes may be revisited within a turn; everything else
		// revisiting means the graph cycles without yielding.
		if node.Kind != KindCondition {
			if visited[node.ID] {
				return &LoopError{NodeID: node.ID}
			}
			visited[node.ID] = true
		}

		res, err := e.step(ctx, t, node)
		if err != nil {
			return err
		}
		result.Steps++

		for _, out := range res.Messages {
			if err := gateway.Send(ctx, gw, chatID, out); err != nil {
				return &SendError{NodeID: node.ID, Err: err}
			}
			e.metrics.RecordOutbound(ctx, out.Kind)
			result.Sent = append(result.Sent, out)
		}

		if res.Delay > 0 {
			// Typing indicators are best-effort; only the sleep itself
			// can fail the turn, via context cancellation.
			_ = gw.StartTyping(ctx, chatID)
			err := e.sleep(ctx, res.Delay)
			_ = gw.StopTyping(ctx, chatID)
			if err != nil {
				return err
			}
		}

		if res.Completed || res.NextNodeID == "" {
			sess.Status = session.StatusCompleted
			return nil
		}

		sess.CurrentNodeID = res.NextNodeID
		if res.Wait {
			// Parked: the visited set resets when the next message arrives.
			return nil
		}

		// The inbound text is consumed by the first step.
		t.Inbound = ""
	}
}

// step executes one node with per-node observability.
func (e *Engine) step(ctx context.Context, t *TurnState, node *Node) (StepResult, error) {
	observability.LogNodeStart(e.logger, node.ID, string(node.Kind))
	nodeCtx, span := e.spans.StartNodeSpan(ctx, node.ID, string(node.Kind))

	start := time.Now()
	res, err := e.interp.Step(nodeCtx, t, node)
	elapsed := time.Since(start)

	e.metrics.RecordNodeExecution(nodeCtx, string(node.Kind), elapsed, err)
	e.spans.EndSpanWithError(span, err)

	if err != nil {
		observability.LogNodeError(e.logger, node.ID, err)
		return res, err
	}
	observability.LogNodeComplete(e.logger, node.ID, float64(elapsed.Milliseconds()))
	return res, nil
}

// gatewayFor selects the gateway implementation for a device.
func (e *Engine) gatewayFor(ctx context.Context, deviceID string) (gateway.Gateway, error) {
	channel := ""
	if e.devices != nil {
		var err error
		channel, err = e.devices.GatewayType(ctx, deviceID)
		if err != nil {
			return nil, err
		}
	}
	if channel == "" {
		channel = e.defaultChannel
	}
	return e.gateways.Get(channel)
}
