package ai

import (
	"context"
	"sync"
)

// MemoryCredentials is an in-memory CredentialsRepository for testing
// and examples.
type MemoryCredentials struct {
	mu     sync.RWMutex
	tenant map[string]map[string]*Credentials // tenantID -> providerID -> creds
	system map[string]*Credentials            // providerID -> creds
}

// NewMemoryCredentials creates an empty repository.
func NewMemoryCredentials() *MemoryCredentials {
	return &MemoryCredentials{
		tenant: make(map[string]map[string]*Credentials),
		system: make(map[string]*Credentials),
	}
}

// PutTenant stores a tenant-specific configuration.
func (m *MemoryCredentials) PutTenant(creds *Credentials) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.tenant[creds.TenantID] == nil {
		m.tenant[creds.TenantID] = make(map[string]*Credentials)
	}
	m.tenant[creds.TenantID][creds.ProviderID] = creds
}

// PutSystem stores a system-wide configuration.
func (m *MemoryCredentials) PutSystem(creds *Credentials) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.system[creds.ProviderID] = creds
}

// TenantCredentials implements CredentialsRepository.
func (m *MemoryCredentials) TenantCredentials(_ context.Context, tenantID, providerID string) (*Credentials, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if creds, ok := m.tenant[tenantID][providerID]; ok {
		return creds, nil
	}
	return nil, ErrNoCredentials
}

// SystemCredentials implements CredentialsRepository.
func (m *MemoryCredentials) SystemCredentials(_ context.Context, providerID string) (*Credentials, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if creds, ok := m.system[providerID]; ok {
		return creds, nil
	}
	return nil, ErrNoCredentials
}
