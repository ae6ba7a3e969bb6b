package chatflow

import (
	"context"
	"log/slog"
	"time"

	"github.com/randalmurphal/chatflow/pkg/chatflow/observability"
)

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the structured logger. A nil logger disables logging.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// WithMetrics sets the metrics recorder. Defaults to a no-op recorder.
func WithMetrics(m observability.MetricsRecorder) Option {
	return func(e *Engine) { e.metrics = m }
}

// WithSpans sets the trace span manager. Defaults to a no-op manager.
func WithSpans(s observability.SpanManager) Option {
	return func(e *Engine) { e.spans = s }
}

// WithMaxSteps caps the number of node executions per turn. The default
// is 100, which is far above any reasonable graph depth; hitting the cap
// means a cycle the loop detector could not see (all-condition cycles).
func WithMaxSteps(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.maxSteps = n
		}
	}
}

// WithSleeper replaces the delay-node sleep. Tests inject a recording
// function to avoid real waits.
func WithSleeper(fn func(ctx context.Context, d time.Duration) error) Option {
	return func(e *Engine) { e.sleep = fn }
}

// WithDefaultChannel sets the gateway channel type used for devices the
// directory has no entry for. Defaults to "waha".
func WithDefaultChannel(channel string) Option {
	return func(e *Engine) { e.defaultChannel = channel }
}
