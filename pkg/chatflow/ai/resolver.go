package ai

import (
	"context"
	"errors"
	"fmt"
)

// BundledProviderID identifies the platform's built-in inference
// capability. It resolves without credentials when nothing else applies.
const BundledProviderID = "bundled"

// Credentials is one provider configuration row.
// TenantID is empty for system-wide records.
type Credentials struct {
	ProviderID string
	TenantID   string
	APIKey     string
	BaseURL    string
	Model      string
	Disabled   bool
}

// CredentialsRepository loads provider configurations. The resolver takes
// it as an injected dependency so tests can substitute a fixture.
type CredentialsRepository interface {
	// TenantCredentials returns the tenant-specific configuration for a
	// provider, or ErrNoCredentials if the tenant has none.
	TenantCredentials(ctx context.Context, tenantID, providerID string) (*Credentials, error)

	// SystemCredentials returns the globally active system record for a
	// provider, or ErrNoCredentials if there is none.
	SystemCredentials(ctx context.Context, providerID string) (*Credentials, error)
}

// ErrNoCredentials indicates no configuration row exists.
var ErrNoCredentials = errors.New("no credentials configured")

// ConfigError is a provider-resolution failure. Its message is written for
// the end user: the engine embeds it into the conversation as an assistant
// turn instead of aborting the flow, so AI misconfiguration degrades to a
// visible chat message rather than a dead conversation.
type ConfigError struct {
	ProviderID string
	Reason     string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return fmt.Sprintf("AI provider %q is unavailable: %s", e.ProviderID, e.Reason)
}

// Factory builds a Provider from resolved credentials.
type Factory func(creds *Credentials) (Provider, error)

// Resolver selects the provider and credentials for an ai-node request.
type Resolver struct {
	repo      CredentialsRepository
	factories map[string]Factory
	bundled   Provider
}

// NewResolver creates a resolver over the given repository.
// The bundled provider may be nil when the platform ships without one.
func NewResolver(repo CredentialsRepository, bundled Provider) *Resolver {
	return &Resolver{
		repo:      repo,
		factories: make(map[string]Factory),
		bundled:   bundled,
	}
}

// RegisterFactory installs the constructor for a provider ID.
func (r *Resolver) RegisterFactory(providerID string, f Factory) {
	r.factories[providerID] = f
}

// Resolve finds the provider for (tenant, providerID).
//
// Resolution order:
//  1. tenant-specific configuration; an explicit disabled flag
//     short-circuits to a ConfigError
//  2. globally active system record
//  3. the bundled provider, credential-free, when providerID requests it
//
// All failures return a *ConfigError whose message is user-visible.
func (r *Resolver) Resolve(ctx context.Context, tenantID, providerID string) (Provider, error) {
	if creds, err := r.lookupTenant(ctx, tenantID, providerID); err != nil {
		return nil, err
	} else if creds != nil {
		return r.build(providerID, creds)
	}

	if creds, err := r.lookupSystem(ctx, providerID); err != nil {
		return nil, err
	} else if creds != nil {
		return r.build(providerID, creds)
	}

	if providerID == BundledProviderID && r.bundled != nil {
		return r.bundled, nil
	}

	return nil, &ConfigError{ProviderID: providerID, Reason: "not configured for this workspace"}
}

func (r *Resolver) lookupTenant(ctx context.Context, tenantID, providerID string) (*Credentials, error) {
	if tenantID == "" {
		return nil, nil
	}
	creds, err := r.repo.TenantCredentials(ctx, tenantID, providerID)
	if errors.Is(err, ErrNoCredentials) {
		return nil, nil
	}
	if err != nil {
		return nil, &ConfigError{ProviderID: providerID, Reason: "configuration lookup failed"}
	}
	if creds.Disabled {
		return nil, &ConfigError{ProviderID: providerID, Reason: "disabled by the workspace administrator"}
	}
	if creds.APIKey == "" {
		return nil, &ConfigError{ProviderID: providerID, Reason: "missing API key"}
	}
	return creds, nil
}

func (r *Resolver) lookupSystem(ctx context.Context, providerID string) (*Credentials, error) {
	creds, err := r.repo.SystemCredentials(ctx, providerID)
	if errors.Is(err, ErrNoCredentials) {
		return nil, nil
	}
	if err != nil {
		return nil, &ConfigError{ProviderID: providerID, Reason: "configuration lookup failed"}
	}
	if creds.Disabled {
		return nil, nil
	}
	return creds, nil
}

func (r *Resolver) build(providerID string, creds *Credentials) (Provider, error) {
	factory, ok := r.factories[providerID]
	if !ok {
		return nil, &ConfigError{ProviderID: providerID, Reason: "unknown provider"}
	}
	p, err := factory(creds)
	if err != nil {
		return nil, &ConfigError{ProviderID: providerID, Reason: "initialization failed"}
	}
	return p, nil
}
