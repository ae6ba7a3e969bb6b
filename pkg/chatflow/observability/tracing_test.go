package observability

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// setupTracingTest installs an in-memory span exporter and returns it plus
// a cleanup function.
func setupTracingTest(t *testing.T) (*tracetest.InMemoryExporter, func()) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(exporter),
	)

	originalProvider := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)

	// Update the package-level tracer
	tracer = otel.Tracer("chatflow")

	cleanup := func() {
		otel.SetTracerProvider(originalProvider)
		if err := tp.Shutdown(context.Background()); err != nil {
			t.Logf("Error shutting down tracer provider: %v", err)
		}
	}

	return exporter, cleanup
}

func TestStartTurnSpan(t *testing.T) {
	exporter, cleanup := setupTracingTest(t)
	defer cleanup()

	m := NewSpanManager()

	ctx := context.Background()
	newCtx, span := m.StartTurnSpan(ctx, "device-1", "+551")
	require.NotNil(t, span)
	assert.NotEqual(t, ctx, newCtx)

	span.End()

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	s := spans[0]
	assert.Equal(t, "chatflow.turn", s.Name)

	var deviceID, contact string
	for _, attr := range s.Attributes {
		switch attr.Key {
		case "device.id":
			deviceID = attr.Value.AsString()
		case "contact":
			contact = attr.Value.AsString()
		}
	}
	assert.Equal(t, "device-1", deviceID)
	assert.Equal(t, "+551", contact)
}

func TestStartNodeSpan(t *testing.T) {
	exporter, cleanup := setupTracingTest(t)
	defer cleanup()

	m := NewSpanManager()

	// Node spans nest under the turn span.
	ctx, turnSpan := m.StartTurnSpan(context.Background(), "device-1", "+551")
	_, nodeSpan := m.StartNodeSpan(ctx, "n1", "message")

	nodeSpan.End()
	turnSpan.End()

	spans := exporter.GetSpans()
	require.Len(t, spans, 2)

	node := spans[0]
	assert.Equal(t, "chatflow.node.message", node.Name)
	assert.Equal(t, spans[1].SpanContext.SpanID(), node.Parent.SpanID())
}

func TestEndSpanWithError(t *testing.T) {
	exporter, cleanup := setupTracingTest(t)
	defer cleanup()

	m := NewSpanManager()

	t.Run("success sets ok status", func(t *testing.T) {
		exporter.Reset()

		_, span := m.StartNodeSpan(context.Background(), "n1", "message")
		m.EndSpanWithError(span, nil)

		spans := exporter.GetSpans()
		require.Len(t, spans, 1)
		assert.Equal(t, codes.Ok, spans[0].Status.Code)
	})

	t.Run("error records and sets error status", func(t *testing.T) {
		exporter.Reset()

		_, span := m.StartNodeSpan(context.Background(), "n1", "message")
		m.EndSpanWithError(span, errors.New("send failed"))

		spans := exporter.GetSpans()
		require.Len(t, spans, 1)
		assert.Equal(t, codes.Error, spans[0].Status.Code)
		assert.Equal(t, "send failed", spans[0].Status.Description)
		require.NotEmpty(t, spans[0].Events)
	})

	t.Run("nil span is a no-op", func(t *testing.T) {
		assert.NotPanics(t, func() {
			m.EndSpanWithError(nil, errors.New("x"))
		})
	})
}
