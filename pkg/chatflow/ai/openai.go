package ai

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAI implements Provider using the OpenAI chat completion and
// embedding APIs. A custom base URL supports OpenAI-compatible backends.
type OpenAI struct {
	client         *openai.Client
	defaultModel   string
	embeddingModel string
}

// OpenAIOption configures the OpenAI provider.
type OpenAIOption func(*openAIConfig)

type openAIConfig struct {
	baseURL        string
	defaultModel   string
	embeddingModel string
}

// WithBaseURL points the client at an OpenAI-compatible endpoint.
func WithBaseURL(url string) OpenAIOption {
	return func(c *openAIConfig) { c.baseURL = url }
}

// WithDefaultModel sets the model used when a node doesn't specify one.
// Default: gpt-4o-mini.
func WithDefaultModel(model string) OpenAIOption {
	return func(c *openAIConfig) { c.defaultModel = model }
}

// WithEmbeddingModel sets the embedding model. Default: text-embedding-3-small.
func WithEmbeddingModel(model string) OpenAIOption {
	return func(c *openAIConfig) { c.embeddingModel = model }
}

// NewOpenAI creates an OpenAI-backed provider.
func NewOpenAI(apiKey string, opts ...OpenAIOption) *OpenAI {
	cfg := openAIConfig{
		defaultModel:   openai.GPT4oMini,
		embeddingModel: string(openai.SmallEmbedding3),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	clientCfg := openai.DefaultConfig(apiKey)
	if cfg.baseURL != "" {
		clientCfg.BaseURL = cfg.baseURL
	}

	return &OpenAI{
		client:         openai.NewClientWithConfig(clientCfg),
		defaultModel:   cfg.defaultModel,
		embeddingModel: cfg.embeddingModel,
	}
}

// GenerateText implements Provider.
func (p *OpenAI) GenerateText(ctx context.Context, prompt string, opts GenerateOptions) (string, error) {
	model := opts.Model
	if model == "" {
		model = p.defaultModel
	}

	messages := make([]openai.ChatCompletionMessage, 0, len(opts.History)+2)
	if opts.SystemPrompt != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: opts.SystemPrompt,
		})
	}
	for _, turn := range opts.History {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    turn.Role,
			Content: turn.Content,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: prompt,
	})

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       model,
		Messages:    messages,
		Temperature: opts.Temperature,
		MaxTokens:   opts.MaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("chat completion: empty response")
	}
	return resp.Choices[0].Message.Content, nil
}

// GenerateEmbedding implements Provider.
func (p *OpenAI) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	resp, err := p.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Model: openai.EmbeddingModel(p.embeddingModel),
		Input: []string{text},
	})
	if err != nil {
		return nil, fmt.Errorf("create embedding: %w", err)
	}
	if len(resp.Data) == 0 {
		return nil, errors.New("create embedding: empty response")
	}
	return resp.Data[0].Embedding, nil
}
