package ai

import (
	"context"
	"fmt"
)

// Bundled is the platform's built-in inference capability. It proxies to an
// OpenAI-compatible endpoint operated by the platform, so tenants get AI
// nodes working before configuring their own provider.
//
// NewBundled wires it with the platform endpoint and service key; tests use
// Canned instead.
func NewBundled(endpoint, serviceKey string) Provider {
	return NewOpenAI(serviceKey, WithBaseURL(endpoint))
}

// Canned is a deterministic Provider for tests and examples.
// GenerateText returns Reply (or echoes the prompt if Reply is empty);
// Err, when set, is returned from every call.
type Canned struct {
	Reply string
	Err   error
}

// GenerateText implements Provider.
func (c *Canned) GenerateText(_ context.Context, prompt string, _ GenerateOptions) (string, error) {
	if c.Err != nil {
		return "", c.Err
	}
	if c.Reply != "" {
		return c.Reply, nil
	}
	return fmt.Sprintf("echo: %s", prompt), nil
}

// GenerateEmbedding implements Provider.
func (c *Canned) GenerateEmbedding(_ context.Context, _ string) ([]float32, error) {
	if c.Err != nil {
		return nil, c.Err
	}
	return []float32{0}, nil
}
