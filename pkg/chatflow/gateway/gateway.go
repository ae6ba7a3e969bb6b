// Package gateway defines the messaging-transport capability the engine
// sends through, plus a channel-type registry and an HTTP bridge client.
package gateway

import (
	"context"
	"fmt"
)

// Gateway is the transport capability for one messaging channel.
// Implementations must be safe for concurrent use.
//
// Send failures are fatal for the turn and convert the session to error
// status. Typing-indicator and read-receipt failures are best-effort only;
// the engine swallows them.
type Gateway interface {
	SendText(ctx context.Context, chatID, text string) error
	SendImage(ctx context.Context, chatID string, media Media) error
	SendFile(ctx context.Context, chatID string, media Media) error
	SendButtons(ctx context.Context, chatID, prompt string, options []ButtonOption) error
	SendSeen(ctx context.Context, chatID string) error
	StartTyping(ctx context.Context, chatID string) error
	StopTyping(ctx context.Context, chatID string) error
}

// Media describes an outbound attachment fetched by URL.
type Media struct {
	URL      string `json:"url"`
	Filename string `json:"filename,omitempty"`
	Mimetype string `json:"mimetype,omitempty"`
	Caption  string `json:"caption,omitempty"`
}

// ButtonOption is one selectable button in a prompt.
type ButtonOption struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// Outbound message kinds.
const (
	KindText    = "text"
	KindImage   = "image"
	KindFile    = "file"
	KindButtons = "buttons"
)

// Outbound is one message the interpreter asks the engine to dispatch.
type Outbound struct {
	Kind    string
	Text    string // text body or button prompt
	Media   Media
	Buttons []ButtonOption
}

// Text builds a plain text message.
func Text(body string) Outbound {
	return Outbound{Kind: KindText, Text: body}
}

// Image builds an image message.
func Image(media Media) Outbound {
	return Outbound{Kind: KindImage, Media: media}
}

// File builds a document message.
func File(media Media) Outbound {
	return Outbound{Kind: KindFile, Media: media}
}

// Buttons builds a button prompt message.
func Buttons(prompt string, options []ButtonOption) Outbound {
	return Outbound{Kind: KindButtons, Text: prompt, Buttons: options}
}

// Send dispatches one outbound message through the gateway.
func Send(ctx context.Context, gw Gateway, chatID string, msg Outbound) error {
	switch msg.Kind {
	case KindText:
		return gw.SendText(ctx, chatID, msg.Text)
	case KindImage:
		return gw.SendImage(ctx, chatID, msg.Media)
	case KindFile:
		return gw.SendFile(ctx, chatID, msg.Media)
	case KindButtons:
		return gw.SendButtons(ctx, chatID, msg.Text, msg.Buttons)
	default:
		return fmt.Errorf("unknown outbound kind: %s", msg.Kind)
	}
}
