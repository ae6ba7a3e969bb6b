package chatflow

import (
	"context"
	"strings"

	"github.com/randalmurphal/chatflow/pkg/chatflow/gateway"
	"github.com/randalmurphal/chatflow/pkg/chatflow/template"
)

// selection is one choosable option of a button, list, or quick_reply node.
type selection struct {
	id    string
	label string
}

// park emits prompt and keeps the session on the node until the next
// inbound message.
func park(node *Node, prompt gateway.Outbound) StepResult {
	return StepResult{
		Messages:   []gateway.Outbound{prompt},
		NextNodeID: node.ID,
		Wait:       true,
	}
}

// matchSelection finds the option whose label equals the inbound text,
// case-insensitively and ignoring surrounding whitespace.
func matchSelection(options []selection, inbound string) (selection, bool) {
	text := strings.ToLower(strings.TrimSpace(inbound))
	for _, opt := range options {
		if strings.ToLower(strings.TrimSpace(opt.label)) == text {
			return opt, true
		}
	}
	return selection{}, false
}

// storeSelection persists the chosen label under data.saveAs, if set.
func storeSelection(t *TurnState, node *Node, chosen selection) {
	if name := node.Data.String("saveAs", ""); name != "" {
		t.Session.SetVariable(name, chosen.label)
	}
}

// advanceByHandle routes via the edge keyed by the chosen option's id.
// A missing edge completes the flow rather than erroring; the editor may
// not have wired every option.
func advanceByHandle(t *TurnState, node *Node, handle string) StepResult {
	edge, ok := t.Graph.EdgeByHandle(node.ID, handle)
	if !ok {
		return StepResult{Completed: true}
	}
	return StepResult{NextNodeID: edge.Target}
}

// buttonOptions reads the node's button definitions.
func buttonOptions(node *Node) []selection {
	var options []selection
	for _, b := range node.Data.MapSlice("buttons") {
		options = append(options, selection{
			id:    b.String("id", ""),
			label: b.String("label", b.String("text", "")),
		})
	}
	return options
}

// promptFor builds the button prompt for a set of options.
func promptFor(t *TurnState, node *Node, options []selection) gateway.Outbound {
	body := node.Data.String("message", node.Data.String("text", ""))
	resolved := template.Resolve(body, t.Session.Variables)

	buttons := make([]gateway.ButtonOption, len(options))
	for i, opt := range options {
		buttons[i] = gateway.ButtonOption{ID: opt.id, Label: opt.label}
	}
	return gateway.Buttons(resolved, buttons)
}

// errorPrompt is the re-prompt sent on an unrecognized selection.
func errorPrompt(node *Node) gateway.Outbound {
	text := node.Data.String("errorMessage", "Please choose one of the available options.")
	return gateway.Text(text)
}

// execButton implements the two-phase button node: prompt and park on the
// first visit, match the reply against button labels on the next turn.
func (it *Interpreter) execButton(_ context.Context, t *TurnState, node *Node) (StepResult, error) {
	options := buttonOptions(node)

	if t.Inbound == "" {
		return park(node, promptFor(t, node, options)), nil
	}

	chosen, ok := matchSelection(options, t.Inbound)
	if !ok {
		return park(node, errorPrompt(node)), nil
	}

	storeSelection(t, node, chosen)
	return advanceByHandle(t, node, chosen.id), nil
}

// execQuickReply is the button pattern with a fallback exit: an unmatched
// reply advances via the "fallback"-keyed edge when one exists, otherwise
// it re-prompts.
func (it *Interpreter) execQuickReply(_ context.Context, t *TurnState, node *Node) (StepResult, error) {
	options := buttonOptions(node)

	if t.Inbound == "" {
		return park(node, promptFor(t, node, options)), nil
	}

	chosen, ok := matchSelection(options, t.Inbound)
	if !ok {
		if edge, hasFallback := t.Graph.EdgeByHandle(node.ID, "fallback"); hasFallback {
			return StepResult{NextNodeID: edge.Target}, nil
		}
		return park(node, errorPrompt(node)), nil
	}

	storeSelection(t, node, chosen)
	return advanceByHandle(t, node, chosen.id), nil
}

// listOptions flattens the node's sections into row selections.
func listOptions(node *Node) []selection {
	var options []selection
	for _, section := range node.Data.MapSlice("sections") {
		for _, row := range section.MapSlice("rows") {
			options = append(options, selection{
				id:    row.String("id", ""),
				label: row.String("title", ""),
			})
		}
	}
	return options
}

// execList is the button pattern over list rows: matching runs against row
// titles across all sections, and routing is keyed by row id.
func (it *Interpreter) execList(_ context.Context, t *TurnState, node *Node) (StepResult, error) {
	options := listOptions(node)

	if t.Inbound == "" {
		return park(node, promptFor(t, node, options)), nil
	}

	chosen, ok := matchSelection(options, t.Inbound)
	if !ok {
		return park(node, errorPrompt(node)), nil
	}

	storeSelection(t, node, chosen)
	return advanceByHandle(t, node, chosen.id), nil
}
