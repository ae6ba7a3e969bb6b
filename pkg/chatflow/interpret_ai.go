package chatflow

import (
	"context"

	"github.com/randalmurphal/chatflow/pkg/chatflow/ai"
	"github.com/randalmurphal/chatflow/pkg/chatflow/gateway"
	"github.com/randalmurphal/chatflow/pkg/chatflow/template"
)

// execAI resolves a provider, generates a reply, and records both sides in
// the session's conversation memory.
//
// Provider failures of any sort - disabled config, missing key, call error -
// become the reply text itself. The flow keeps moving and the end user sees
// a message instead of silence; only the operator-facing logs carry the
// underlying error.
func (it *Interpreter) execAI(ctx context.Context, t *TurnState, node *Node) (StepResult, error) {
	vars := t.Session.Variables
	prompt := template.Resolve(node.Data.String("prompt", ""), vars)
	if prompt == "" {
		prompt = t.Inbound
	}

	reply := it.generateReply(ctx, t, node, prompt)

	if prompt != "" {
		t.Session.AppendTurn(ai.RoleUser, prompt)
	}
	t.Session.AppendTurn(ai.RoleAssistant, reply)

	if name := node.Data.String("saveAs", ""); name != "" {
		t.Session.SetVariable(name, reply)
	}

	res := advance(t, node)
	res.Messages = []gateway.Outbound{gateway.Text(reply)}
	return res, nil
}

// generateReply runs provider resolution and the completion call,
// converting every failure into user-visible reply text.
func (it *Interpreter) generateReply(ctx context.Context, t *TurnState, node *Node, prompt string) string {
	if it.resolver == nil {
		return "AI is not configured for this workspace."
	}

	providerID := node.Data.String("provider", ai.BundledProviderID)
	tenantID := ""
	if t.Flow != nil {
		tenantID = t.Flow.TenantID
	}

	provider, err := it.resolver.Resolve(ctx, tenantID, providerID)
	if err != nil {
		return err.Error()
	}

	history := make([]ai.Message, 0, len(t.Session.Context))
	for _, turn := range t.Session.Context {
		history = append(history, ai.Message{Role: turn.Role, Content: turn.Content})
	}

	reply, err := provider.GenerateText(ctx, prompt, ai.GenerateOptions{
		SystemPrompt: template.Resolve(node.Data.String("systemPrompt", ""), t.Session.Variables),
		Model:        node.Data.String("model", ""),
		Temperature:  float32(node.Data.Float("temperature", 0.7)),
		MaxTokens:    node.Data.Int("maxTokens", 1024),
		History:      history,
	})
	if err != nil {
		return "Sorry, I could not generate a response right now."
	}
	return reply
}
