package gateway

import (
	"fmt"
	"sync"
)

// Registry maps a device's configured channel type (e.g. "waha") to a
// Gateway implementation. Safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	gateways map[string]Gateway
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		gateways: make(map[string]Gateway),
	}
}

// Register adds or replaces the gateway for a channel type.
func (r *Registry) Register(channelType string, gw Gateway) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.gateways[channelType] = gw
}

// Get returns the gateway for a channel type.
func (r *Registry) Get(channelType string) (Gateway, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	gw, ok := r.gateways[channelType]
	if !ok {
		return nil, fmt.Errorf("no gateway registered for channel type %q", channelType)
	}
	return gw, nil
}

// Types returns the registered channel types. The order is not guaranteed.
func (r *Registry) Types() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	types := make([]string, 0, len(r.gateways))
	for t := range r.gateways {
		types = append(types, t)
	}
	return types
}
