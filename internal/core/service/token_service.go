package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/eventdesk/registration-api/internal/api/metrics"
	"github.com/eventdesk/registration-api/internal/core/domain"
	"github.com/eventdesk/registration-api/internal/core/ports"
)

// mintRetries bounds how often a colliding access token is regenerated
// before the mint is treated as failed.
const mintRetries = 5

// CredentialChecker abstracts resource-owner credential verification.
type CredentialChecker interface {
	Authenticate(ctx context.Context, email, password string) (*domain.Account, error)
}

// TokenService issues and renews grants. Clients are config-seeded and
// read-only; the token store is the single authority on live grants.
type TokenService struct {
	clients  map[string]*domain.Client
	accounts CredentialChecker
	hasher   ports.PasswordHasher
	store    ports.TokenStore
	audit    ports.AuditTrail
	logger   zerolog.Logger
}

func NewTokenService(
	clients []domain.Client,
	accounts CredentialChecker,
	hasher ports.PasswordHasher,
	store ports.TokenStore,
	audit ports.AuditTrail,
	logger zerolog.Logger,
) *TokenService {
	byID := make(map[string]*domain.Client, len(clients))
	for i := range clients {
		byID[clients[i].ID] = &clients[i]
	}
	return &TokenService{
		clients:  byID,
		accounts: accounts,
		hasher:   hasher,
		store:    store,
		audit:    audit,
		logger:   logger,
	}
}

// IssuePasswordGrant validates the client and resource-owner credentials
// and mints a fresh access/refresh token pair.
func (s *TokenService) IssuePasswordGrant(ctx context.Context, in ports.PasswordGrantInput) (*domain.Grant, error) {
	client, err := s.authenticateClient(in.ClientID, in.ClientSecret)
	if err != nil {
		return nil, err
	}
	if !client.AllowsGrantType(domain.GrantTypePassword) {
		metrics.TokenDeniedTotal.WithLabelValues("unauthorized_grant_type").Inc()
		return nil, domain.ErrUnauthorizedGrantType
	}

	scopes, err := resolveScopes(client, in.Scopes)
	if err != nil {
		metrics.TokenDeniedTotal.WithLabelValues("invalid_scope").Inc()
		return nil, err
	}

	account, err := s.accounts.Authenticate(ctx, in.Username, in.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidGrant) {
			metrics.TokenDeniedTotal.WithLabelValues("invalid_grant").Inc()
		}
		return nil, err
	}

	grant, err := s.mint(ctx, client, account.Email, scopes)
	if err != nil {
		return nil, err
	}

	metrics.TokensIssuedTotal.WithLabelValues(domain.GrantTypePassword).Inc()
	s.audit.Record(auditNow(account.Email, domain.AuditTokenIssued, in.ClientID))
	s.logger.Info().
		Str("client_id", in.ClientID).
		Str("subject", account.Email).
		Time("expires_at", grant.ExpiresAt).
		Msg("password grant issued")

	return grant, nil
}

// Refresh revokes the prior access token and mints a fresh pair preserving
// the subject and scopes of the original grant.
func (s *TokenService) Refresh(ctx context.Context, in ports.RefreshGrantInput) (*domain.Grant, error) {
	client, err := s.authenticateClient(in.ClientID, in.ClientSecret)
	if err != nil {
		return nil, err
	}
	if !client.AllowsGrantType(domain.GrantTypeRefreshToken) {
		metrics.TokenDeniedTotal.WithLabelValues("unauthorized_grant_type").Inc()
		return nil, domain.ErrUnauthorizedGrantType
	}

	now := time.Now().UTC()
	// Opportunistic sweep; there is no background expiry task.
	if err := s.store.PurgeExpired(ctx, now); err != nil {
		s.logger.Warn().Err(err).Msg("token purge failed, continuing")
	}

	old, err := s.store.GetByRefreshToken(ctx, in.RefreshToken)
	if err != nil {
		if errors.Is(err, domain.ErrGrantNotFound) {
			metrics.TokenDeniedTotal.WithLabelValues("invalid_grant").Inc()
			return nil, domain.ErrInvalidGrant
		}
		return nil, err
	}
	if old.Revoked || old.RefreshExpired(now) {
		metrics.TokenDeniedTotal.WithLabelValues("invalid_grant").Inc()
		return nil, domain.ErrInvalidGrant
	}

	if err := s.store.Revoke(ctx, old.AccessToken); err != nil {
		return nil, fmt.Errorf("revoke prior access token: %w", err)
	}

	grant, err := s.mint(ctx, client, old.Subject, old.Scopes)
	if err != nil {
		return nil, err
	}

	metrics.TokensIssuedTotal.WithLabelValues(domain.GrantTypeRefreshToken).Inc()
	s.audit.Record(auditNow(old.Subject, domain.AuditTokenRefreshed, in.ClientID))
	s.logger.Info().
		Str("client_id", in.ClientID).
		Str("subject", old.Subject).
		Msg("grant refreshed")

	return grant, nil
}

func (s *TokenService) authenticateClient(clientID, clientSecret string) (*domain.Client, error) {
	client, ok := s.clients[clientID]
	if !ok || !s.hasher.Verify(clientSecret, client.SecretHash) {
		metrics.TokenDeniedTotal.WithLabelValues("invalid_client").Inc()
		return nil, domain.ErrInvalidClient
	}
	return client, nil
}

// mint stores a new grant, regenerating the token pair when the access
// token string collides with one already stored.
func (s *TokenService) mint(ctx context.Context, client *domain.Client, subject string, scopes []string) (*domain.Grant, error) {
	now := time.Now().UTC()
	for attempt := 0; attempt < mintRetries; attempt++ {
		grant := &domain.Grant{
			AccessToken:  newOpaqueToken(),
			RefreshToken: newOpaqueToken(),
			Subject:      subject,
			ClientID:     client.ID,
			Scopes:       scopes,
			IssuedAt:     now,
			ExpiresAt:    now.Add(client.AccessTokenTTL),
			RefreshUntil: now.Add(client.RefreshTokenTTL),
		}
		err := s.store.Put(ctx, grant)
		if err == nil {
			return grant, nil
		}
		if !errors.Is(err, domain.ErrTokenCollision) {
			return nil, fmt.Errorf("store grant: %w", err)
		}
		s.logger.Warn().Int("attempt", attempt+1).Msg("access token collision, regenerating")
	}
	return nil, fmt.Errorf("store grant: %w", domain.ErrTokenCollision)
}

func resolveScopes(client *domain.Client, requested []string) ([]string, error) {
	if len(requested) == 0 {
		out := make([]string, len(client.Scopes))
		copy(out, client.Scopes)
		return out, nil
	}
	for _, scope := range requested {
		if !client.AllowsScope(scope) {
			return nil, domain.ErrInvalidScope
		}
	}
	out := make([]string, len(requested))
	copy(out, requested)
	return out, nil
}

// newOpaqueToken returns a 32-hex-char random token string.
func newOpaqueToken() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		// fallback: derive from the clock, still unique enough to retry on
		return fmt.Sprintf("%032x", time.Now().UnixNano())
	}
	return hex.EncodeToString(b)
}

func auditNow(actor, action, resource string) domain.AuditRecord {
	return domain.AuditRecord{
		Actor:    actor,
		Action:   action,
		Resource: resource,
		At:       time.Now().UTC(),
	}
}
