// Package token provides the default in-memory grant store. It is
// constructed once at process start and injected into the token issuer and
// the access gate; a durable keyed store can replace it without changing
// either collaborator.
package token

import (
	"context"
	"sync"
	"time"

	"github.com/eventdesk/registration-api/internal/core/domain"
)

// MemoryStore keeps grants in two maps, keyed by access and by refresh
// token. A single RWMutex serializes writes against reads so no lookup
// ever observes a half-written grant.
type MemoryStore struct {
	mu        sync.RWMutex
	byAccess  map[string]*domain.Grant
	byRefresh map[string]*domain.Grant
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byAccess:  make(map[string]*domain.Grant),
		byRefresh: make(map[string]*domain.Grant),
	}
}

// Put stores a grant. A duplicate access-token string is a generation
// error; the caller retries with a fresh random token.
func (s *MemoryStore) Put(_ context.Context, grant *domain.Grant) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byAccess[grant.AccessToken]; exists {
		return domain.ErrTokenCollision
	}
	if _, exists := s.byRefresh[grant.RefreshToken]; exists {
		return domain.ErrTokenCollision
	}

	stored := cloneGrant(grant)
	s.byAccess[stored.AccessToken] = stored
	s.byRefresh[stored.RefreshToken] = stored
	return nil
}

func (s *MemoryStore) GetByAccessToken(_ context.Context, token string) (*domain.Grant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	grant, ok := s.byAccess[token]
	if !ok {
		return nil, domain.ErrGrantNotFound
	}
	return cloneGrant(grant), nil
}

func (s *MemoryStore) GetByRefreshToken(_ context.Context, token string) (*domain.Grant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	grant, ok := s.byRefresh[token]
	if !ok {
		return nil, domain.ErrGrantNotFound
	}
	return cloneGrant(grant), nil
}

// Revoke marks the grant dead. Revoking an unknown token is a no-op; the
// caller cannot act on the difference.
func (s *MemoryStore) Revoke(_ context.Context, accessToken string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if grant, ok := s.byAccess[accessToken]; ok {
		grant.Revoked = true
	}
	return nil
}

// PurgeExpired drops grants whose refresh window has closed. Grants with an
// expired access token but a live refresh token stay, so they can still be
// refreshed.
func (s *MemoryStore) PurgeExpired(_ context.Context, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for access, grant := range s.byAccess {
		if grant.RefreshExpired(now) {
			delete(s.byAccess, access)
			delete(s.byRefresh, grant.RefreshToken)
		}
	}
	return nil
}

func cloneGrant(g *domain.Grant) *domain.Grant {
	clone := *g
	clone.Scopes = append([]string(nil), g.Scopes...)
	return &clone
}
