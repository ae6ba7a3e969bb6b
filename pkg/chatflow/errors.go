package chatflow

import (
	"errors"
	"fmt"
)

// Sentinel errors for turn execution.
var (
	// ErrLoopDetected indicates a non-condition node was visited twice
	// within one turn.
	ErrLoopDetected = errors.New("loop detected")

	// ErrMaxSteps indicates a turn exceeded the configured step limit.
	ErrMaxSteps = errors.New("exceeded maximum steps per turn")

	// ErrUnknownNodeKind indicates a node kind the interpreter has no
	// execution function for.
	ErrUnknownNodeKind = errors.New("unknown node kind")
)

// NodeNotFoundError indicates the session points at a node that is missing
// from the graph. Fatal for the turn: the session converts to error status.
type NodeNotFoundError struct {
	// NodeID is the missing node's identifier.
	NodeID string
}

// Error implements the error interface.
func (e *NodeNotFoundError) Error() string {
	return fmt.Sprintf("node %s not found in graph", e.NodeID)
}

// LoopError indicates a non-condition node was revisited within one turn.
type LoopError struct {
	// NodeID is the node that was visited twice.
	NodeID string
}

// Error implements the error interface.
func (e *LoopError) Error() string {
	return fmt.Sprintf("loop detected at node %s", e.NodeID)
}

// Unwrap returns ErrLoopDetected for errors.Is support.
func (e *LoopError) Unwrap() error {
	return ErrLoopDetected
}

// NodeError wraps an error with node context.
type NodeError struct {
	// NodeID is the identifier of the node that failed.
	NodeID string
	// Op is the operation that failed (e.g., "execute", "routing").
	Op string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *NodeError) Error() string {
	return fmt.Sprintf("node %s: %s: %v", e.NodeID, e.Op, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *NodeError) Unwrap() error {
	return e.Err
}

// SendError indicates the gateway rejected an outbound message.
// Fatal for the turn: the session converts to error status.
type SendError struct {
	// NodeID is the node whose message failed to send.
	NodeID string
	// Err is the underlying gateway error.
	Err error
}

// Error implements the error interface.
func (e *SendError) Error() string {
	return fmt.Sprintf("send from node %s: %v", e.NodeID, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *SendError) Unwrap() error {
	return e.Err
}

// MaxStepsError provides context when the per-turn step limit is exceeded.
type MaxStepsError struct {
	// Max is the configured step limit.
	Max int
	// LastNodeID is the node that would have executed next.
	LastNodeID string
}

// Error implements the error interface.
func (e *MaxStepsError) Error() string {
	return fmt.Sprintf("exceeded maximum steps per turn (%d) at node %s", e.Max, e.LastNodeID)
}

// Unwrap returns ErrMaxSteps for errors.Is support.
func (e *MaxStepsError) Unwrap() error {
	return ErrMaxSteps
}
