// Package ai provides the text-generation capability boundary and the
// tenant-aware provider resolution the ai node kind depends on.
package ai

import (
	"context"
)

// Message is one conversation-memory turn passed to a provider.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Standard message roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// GenerateOptions configures one text-generation call.
type GenerateOptions struct {
	SystemPrompt string
	Model        string
	Temperature  float32
	MaxTokens    int
	// History is the session's conversation memory, oldest first.
	// The prompt itself is appended by the provider.
	History []Message
}

// Provider is an external AI capability.
//
// GenerateEmbedding is part of the shared contract even though the flow
// engine itself never calls it; dashboard features (knowledge-base search)
// share provider credentials with the engine.
type Provider interface {
	GenerateText(ctx context.Context, prompt string, opts GenerateOptions) (string, error)
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
}
