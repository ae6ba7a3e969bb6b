package chatflow

import (
	"time"

	"github.com/randalmurphal/chatflow/pkg/chatflow/gateway"
)

// NodeKind discriminates the per-kind configuration in a node's data bag
// and selects the interpreter's execution function.
type NodeKind string

// Node kinds understood by the interpreter.
const (
	KindStart          NodeKind = "start"
	KindKeywordTrigger NodeKind = "keyword_trigger"
	KindMessage        NodeKind = "message"
	KindButton         NodeKind = "button"
	KindList           NodeKind = "list"
	KindCondition      NodeKind = "condition"
	KindAI             NodeKind = "ai"
	KindDelay          NodeKind = "delay"
	KindHumanTakeover  NodeKind = "human_takeover"
	KindQuickReply     NodeKind = "quick_reply"
	KindSendImage      NodeKind = "send_image"
	KindSendVideo      NodeKind = "send_video"
	KindSendPDF        NodeKind = "send_pdf"
)

// StepResult is the outcome of interpreting one node.
type StepResult struct {
	// Messages to dispatch through the gateway, in order.
	Messages []gateway.Outbound

	// NextNodeID is the node the session moves to. Empty means the flow
	// has no further node and the session completes.
	NextNodeID string

	// Wait parks the session on NextNodeID until the next inbound message.
	Wait bool

	// Completed marks the flow finished regardless of NextNodeID.
	Completed bool

	// Delay asks the orchestrator to pause (with a typing indicator)
	// before the next step.
	Delay time.Duration
}
