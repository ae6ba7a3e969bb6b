package observability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNoopMetrics(t *testing.T) {
	m := NoopMetrics{}
	ctx := context.Background()

	assert.NotPanics(t, func() {
		m.RecordNodeExecution(ctx, "message", time.Millisecond, nil)
		m.RecordNodeExecution(ctx, "message", time.Millisecond, errors.New("x"))
		m.RecordTurn(ctx, "completed", time.Millisecond)
		m.RecordOutbound(ctx, "text")
	})
}

func TestNoopSpanManager(t *testing.T) {
	m := NoopSpanManager{}
	ctx := context.Background()

	newCtx, span := m.StartTurnSpan(ctx, "device-1", "+551")
	assert.Equal(t, ctx, newCtx)
	assert.NotNil(t, span)

	newCtx, span = m.StartNodeSpan(ctx, "n1", "message")
	assert.Equal(t, ctx, newCtx)

	assert.NotPanics(t, func() {
		m.EndSpanWithError(span, errors.New("x"))
		m.EndSpanWithError(span, nil)
	})
}
