// Package chatflow executes visual conversation flows over messaging
// gateways. A flow is a directed graph of typed nodes (messages, buttons,
// lists, conditions, delays, AI replies); the engine matches inbound
// messages to flows by keyword, walks the graph one turn at a time, and
// parks the session whenever a node needs user input.
//
// The core loop is Engine.HandleMessage: resolve or trigger a session,
// auto-advance through nodes until one waits or the flow completes, send
// each node's messages through the device's gateway, and persist the
// session cursor. All conversation state lives on the session record, so
// any engine instance can pick up any turn.
//
// Subpackages:
//
//   - flow: flow records, keyword definitions, and repositories
//   - session: session state, stores, and per-contact locking
//   - gateway: the outbound message abstraction and implementations
//   - ai: LLM provider resolution with per-tenant credentials
//   - expr: the condition-node comparison language
//   - template: {{variable}} substitution
//   - config: file-backed configuration loading
//   - observability: logging, metrics, and tracing helpers
package chatflow
