package gateway

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// HTTPBridge implements Gateway against a WAHA-style WhatsApp HTTP API.
// Every operation is one POST to /api/<op> carrying the session name and
// chat ID in the body.
type HTTPBridge struct {
	client  *resty.Client
	session string
}

// BridgeOption configures HTTPBridge.
type BridgeOption func(*HTTPBridge)

// WithTimeout sets the per-request timeout. Default: 30s.
func WithTimeout(d time.Duration) BridgeOption {
	return func(b *HTTPBridge) { b.client.SetTimeout(d) }
}

// WithRetries sets the retry count for failed requests. Default: 0.
func WithRetries(n int) BridgeOption {
	return func(b *HTTPBridge) { b.client.SetRetryCount(n) }
}

// WithDebug enables resty request/response logging.
func WithDebug(debug bool) BridgeOption {
	return func(b *HTTPBridge) { b.client.SetDebug(debug) }
}

// NewHTTPBridge creates a gateway client for the bridge at baseURL.
// The session name identifies the device's connection on the bridge;
// apiKey may be empty when the bridge runs without authentication.
func NewHTTPBridge(baseURL, apiKey, session string, opts ...BridgeOption) *HTTPBridge {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(30 * time.Second).
		SetHeader("Content-Type", "application/json")
	if apiKey != "" {
		client.SetHeader("X-Api-Key", apiKey)
	}

	b := &HTTPBridge{client: client, session: session}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// post sends one bridge API call and maps non-2xx responses to errors.
func (b *HTTPBridge) post(ctx context.Context, path string, body map[string]any) error {
	body["session"] = b.session

	resp, err := b.client.R().
		SetContext(ctx).
		SetBody(body).
		Post(path)
	if err != nil {
		return fmt.Errorf("bridge %s: %w", path, err)
	}
	if resp.IsError() {
		return fmt.Errorf("bridge %s: %s: %s", path, resp.Status(), resp.String())
	}
	return nil
}

// SendText implements Gateway.
func (b *HTTPBridge) SendText(ctx context.Context, chatID, text string) error {
	return b.post(ctx, "/api/sendText", map[string]any{
		"chatId": chatID,
		"text":   text,
	})
}

// SendImage implements Gateway.
func (b *HTTPBridge) SendImage(ctx context.Context, chatID string, media Media) error {
	return b.post(ctx, "/api/sendImage", map[string]any{
		"chatId":  chatID,
		"file":    mediaPayload(media),
		"caption": media.Caption,
	})
}

// SendFile implements Gateway.
func (b *HTTPBridge) SendFile(ctx context.Context, chatID string, media Media) error {
	return b.post(ctx, "/api/sendFile", map[string]any{
		"chatId":  chatID,
		"file":    mediaPayload(media),
		"caption": media.Caption,
	})
}

// SendButtons implements Gateway.
func (b *HTTPBridge) SendButtons(ctx context.Context, chatID, prompt string, options []ButtonOption) error {
	buttons := make([]map[string]any, len(options))
	for i, opt := range options {
		buttons[i] = map[string]any{"id": opt.ID, "text": opt.Label}
	}
	return b.post(ctx, "/api/sendButtons", map[string]any{
		"chatId":  chatID,
		"text":    prompt,
		"buttons": buttons,
	})
}

// SendSeen implements Gateway.
func (b *HTTPBridge) SendSeen(ctx context.Context, chatID string) error {
	return b.post(ctx, "/api/sendSeen", map[string]any{"chatId": chatID})
}

// StartTyping implements Gateway.
func (b *HTTPBridge) StartTyping(ctx context.Context, chatID string) error {
	return b.post(ctx, "/api/startTyping", map[string]any{"chatId": chatID})
}

// StopTyping implements Gateway.
func (b *HTTPBridge) StopTyping(ctx context.Context, chatID string) error {
	return b.post(ctx, "/api/stopTyping", map[string]any{"chatId": chatID})
}

func mediaPayload(media Media) map[string]any {
	return map[string]any{
		"url":      media.URL,
		"filename": media.Filename,
		"mimetype": media.Mimetype,
	}
}
