// Package observability provides structured logging, metrics, and tracing
// for the flow engine.
//
// Features:
//   - Structured logging via slog (Go stdlib)
//   - Metrics via OpenTelemetry
//   - Tracing via OpenTelemetry
//
// All features are opt-in and have no-op implementations when disabled.
package observability

import (
	"log/slog"
	"time"
)

// EnrichLogger adds engine context to a logger.
// Returns a new logger with session_id, device_id, and node_id fields.
func EnrichLogger(logger *slog.Logger, sessionID, deviceID, nodeID string) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(
		slog.String("session_id", sessionID),
		slog.String("device_id", deviceID),
		slog.String("node_id", nodeID),
	)
}

// LogTurnStart logs the start of one inbound-message turn.
func LogTurnStart(logger *slog.Logger, deviceID, contact string) {
	if logger == nil {
		return
	}
	logger.Info("turn starting",
		slog.String("device_id", deviceID),
		slog.String("contact", contact),
	)
}

// LogTurnComplete logs a finished turn.
func LogTurnComplete(logger *slog.Logger, sessionID, status string, durationMs float64, steps int) {
	if logger == nil {
		return
	}
	logger.Info("turn completed",
		slog.String("session_id", sessionID),
		slog.String("status", status),
		slog.Float64("duration_ms", durationMs),
		slog.Int("steps", steps),
	)
}

// LogTurnError logs a turn that converted the session to error status.
func LogTurnError(logger *slog.Logger, sessionID string, err error, lastNode string) {
	if logger == nil {
		return
	}
	logger.Error("turn failed",
		slog.String("session_id", sessionID),
		slog.String("error", err.Error()),
		slog.String("last_node", lastNode),
	)
}

// LogNodeStart logs node execution start.
func LogNodeStart(logger *slog.Logger, nodeID, kind string) {
	if logger == nil {
		return
	}
	logger.Debug("node starting",
		slog.String("node_id", nodeID),
		slog.String("kind", kind),
	)
}

// LogNodeComplete logs successful node completion.
func LogNodeComplete(logger *slog.Logger, nodeID string, durationMs float64) {
	if logger == nil {
		return
	}
	logger.Debug("node completed",
		slog.String("node_id", nodeID),
		slog.Float64("duration_ms", durationMs),
	)
}

// LogNodeError logs node execution error.
func LogNodeError(logger *slog.Logger, nodeID string, err error) {
	if logger == nil {
		return
	}
	logger.Error("node failed",
		slog.String("node_id", nodeID),
		slog.String("error", err.Error()),
	)
}

// LogTriggerMatch logs a flow selected by keyword matching.
func LogTriggerMatch(logger *slog.Logger, flowID, deviceID string) {
	if logger == nil {
		return
	}
	logger.Info("flow triggered",
		slog.String("flow_id", flowID),
		slog.String("device_id", deviceID),
	)
}

// LogSelfHeal logs an invalidated session (flow or node gone).
func LogSelfHeal(logger *slog.Logger, sessionID, reason string) {
	if logger == nil {
		return
	}
	logger.Warn("session invalidated",
		slog.String("session_id", sessionID),
		slog.String("reason", reason),
	)
}

// LogSessionSaved logs session persistence.
func LogSessionSaved(logger *slog.Logger, sessionID, nodeID, status string) {
	if logger == nil {
		return
	}
	logger.Debug("session saved",
		slog.String("session_id", sessionID),
		slog.String("node_id", nodeID),
		slog.String("status", status),
	)
}

// TimedOperation measures the duration of an operation.
// Returns a function that, when called, returns the elapsed time in milliseconds.
func TimedOperation() func() float64 {
	start := time.Now()
	return func() float64 {
		return float64(time.Since(start).Milliseconds())
	}
}
