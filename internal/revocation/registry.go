// Package revocation tracks token ids (jti claims) that must be rejected even
// though their signature still verifies. The registry is consulted on every
// authenticated request, so both implementations are safe for concurrent use.
package revocation

import (
	"context"
	"sync"
	"time"
)

type Registry interface {
	// Revoke adds a token id to the registry. Idempotent.
	Revoke(ctx context.Context, jti string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// Memory is a mutex-guarded in-process registry. Entries carry the token's own
// expiry and are pruned once it passes: a token past its exp is rejected by
// signature validation anyway, so keeping its id buys nothing.
type Memory struct {
	mu      sync.RWMutex
	revoked map[string]time.Time
	now     func() time.Time
}

func NewMemory() *Memory {
	return &Memory{
		revoked: make(map[string]time.Time),
		now:     time.Now,
	}
}

func (m *Memory) Revoke(_ context.Context, jti string, expiresAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pruneLocked()
	m.revoked[jti] = expiresAt
	return nil
}

func (m *Memory) IsRevoked(_ context.Context, jti string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	exp, ok := m.revoked[jti]
	if !ok {
		return false, nil
	}
	return m.now().Before(exp), nil
}

func (m *Memory) pruneLocked() {
	now := m.now()
	for jti, exp := range m.revoked {
		if now.After(exp) {
			delete(m.revoked, jti)
		}
	}
}

// Len reports the number of live entries. Exposed for tests and debugging.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.revoked)
}
