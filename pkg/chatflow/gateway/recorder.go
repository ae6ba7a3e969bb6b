package gateway

import (
	"context"
	"sync"
)

// Call is one recorded gateway invocation.
type Call struct {
	Op      string // "sendText", "sendImage", "sendFile", "sendButtons", "sendSeen", "startTyping", "stopTyping"
	ChatID  string
	Text    string
	Media   Media
	Buttons []ButtonOption
}

// Recorder is a Gateway that records every call. It backs tests and the
// runnable examples; SendErr and TypingErr inject failures.
type Recorder struct {
	mu    sync.Mutex
	calls []Call

	// SendErr, when set, is returned by all Send* operations.
	SendErr error
	// TypingErr, when set, is returned by StartTyping/StopTyping/SendSeen.
	TypingErr error
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Calls returns a snapshot of recorded calls.
func (r *Recorder) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Call, len(r.calls))
	copy(out, r.calls)
	return out
}

// Sent returns only the message-sending calls (typing and seen excluded).
func (r *Recorder) Sent() []Call {
	var sent []Call
	for _, c := range r.Calls() {
		switch c.Op {
		case "sendText", "sendImage", "sendFile", "sendButtons":
			sent = append(sent, c)
		}
	}
	return sent
}

func (r *Recorder) record(c Call) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, c)
}

// SendText implements Gateway.
func (r *Recorder) SendText(_ context.Context, chatID, text string) error {
	r.record(Call{Op: "sendText", ChatID: chatID, Text: text})
	return r.SendErr
}

// SendImage implements Gateway.
func (r *Recorder) SendImage(_ context.Context, chatID string, media Media) error {
	r.record(Call{Op: "sendImage", ChatID: chatID, Media: media})
	return r.SendErr
}

// SendFile implements Gateway.
func (r *Recorder) SendFile(_ context.Context, chatID string, media Media) error {
	r.record(Call{Op: "sendFile", ChatID: chatID, Media: media})
	return r.SendErr
}

// SendButtons implements Gateway.
func (r *Recorder) SendButtons(_ context.Context, chatID, prompt string, options []ButtonOption) error {
	r.record(Call{Op: "sendButtons", ChatID: chatID, Text: prompt, Buttons: options})
	return r.SendErr
}

// SendSeen implements Gateway.
func (r *Recorder) SendSeen(_ context.Context, chatID string) error {
	r.record(Call{Op: "sendSeen", ChatID: chatID})
	return r.TypingErr
}

// StartTyping implements Gateway.
func (r *Recorder) StartTyping(_ context.Context, chatID string) error {
	r.record(Call{Op: "startTyping", ChatID: chatID})
	return r.TypingErr
}

// StopTyping implements Gateway.
func (r *Recorder) StopTyping(_ context.Context, chatID string) error {
	r.record(Call{Op: "stopTyping", ChatID: chatID})
	return r.TypingErr
}
