package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/eventdesk/registration-api/internal/core/domain"
	"github.com/eventdesk/registration-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Stubs
// ---------------------------------------------------------------------------

type plainHasher struct{}

func (plainHasher) Hash(plaintext string) (string, error) { return "plain:" + plaintext, nil }

func (plainHasher) Verify(plaintext, encoded string) bool { return "plain:"+plaintext == encoded }

type stubAccounts struct {
	email    string
	password string
}

func (a *stubAccounts) Authenticate(_ context.Context, email, password string) (*domain.Account, error) {
	if email != a.email || password != a.password {
		return nil, domain.ErrInvalidGrant
	}
	return &domain.Account{Email: a.email, Roles: []domain.AccountRole{domain.RoleUser}}, nil
}

type stubTokenStore struct {
	byAccess  map[string]*domain.Grant
	byRefresh map[string]*domain.Grant
	// collideNext forces the next N Put calls to report a collision.
	collideNext int
	putCalls    int
	purgeCalls  int
}

func newStubTokenStore() *stubTokenStore {
	return &stubTokenStore{
		byAccess:  make(map[string]*domain.Grant),
		byRefresh: make(map[string]*domain.Grant),
	}
}

func (s *stubTokenStore) Put(_ context.Context, grant *domain.Grant) error {
	s.putCalls++
	if s.collideNext > 0 {
		s.collideNext--
		return domain.ErrTokenCollision
	}
	if _, ok := s.byAccess[grant.AccessToken]; ok {
		return domain.ErrTokenCollision
	}
	s.byAccess[grant.AccessToken] = grant
	s.byRefresh[grant.RefreshToken] = grant
	return nil
}

func (s *stubTokenStore) GetByAccessToken(_ context.Context, token string) (*domain.Grant, error) {
	g, ok := s.byAccess[token]
	if !ok {
		return nil, domain.ErrGrantNotFound
	}
	return g, nil
}

func (s *stubTokenStore) GetByRefreshToken(_ context.Context, token string) (*domain.Grant, error) {
	g, ok := s.byRefresh[token]
	if !ok {
		return nil, domain.ErrGrantNotFound
	}
	return g, nil
}

func (s *stubTokenStore) Revoke(_ context.Context, accessToken string) error {
	if g, ok := s.byAccess[accessToken]; ok {
		g.Revoked = true
	}
	return nil
}

func (s *stubTokenStore) PurgeExpired(context.Context, time.Time) error {
	s.purgeCalls++
	return nil
}

const (
	testClientID     = "myApp"
	testClientSecret = "pass"
	testEmail        = "user@eventdesk.local"
	testPassword     = "user"
	testAccessTTL    = 10 * time.Minute
	testRefreshTTL   = time.Hour
)

func newTokenSvc(store ports.TokenStore) *TokenService {
	clients := []domain.Client{{
		ID:              testClientID,
		SecretHash:      "plain:" + testClientSecret,
		GrantTypes:      []string{domain.GrantTypePassword, domain.GrantTypeRefreshToken},
		Scopes:          []string{domain.ScopeRead, domain.ScopeWrite},
		AccessTokenTTL:  testAccessTTL,
		RefreshTokenTTL: testRefreshTTL,
	}}
	accounts := &stubAccounts{email: testEmail, password: testPassword}
	return NewTokenService(clients, accounts, plainHasher{}, store, &recordingTrail{}, zerolog.Nop())
}

func passwordGrant() ports.PasswordGrantInput {
	return ports.PasswordGrantInput{
		ClientID:     testClientID,
		ClientSecret: testClientSecret,
		Username:     testEmail,
		Password:     testPassword,
	}
}

// ---------------------------------------------------------------------------
// Password grant
// ---------------------------------------------------------------------------

func TestTokenService_PasswordGrant_HappyPath(t *testing.T) {
	store := newStubTokenStore()
	svc := newTokenSvc(store)

	grant, err := svc.IssuePasswordGrant(context.Background(), passwordGrant())
	if err != nil {
		t.Fatalf("IssuePasswordGrant returned error: %v", err)
	}
	if grant.AccessToken == "" || grant.RefreshToken == "" {
		t.Fatalf("empty token pair: %+v", grant)
	}
	if grant.AccessToken == grant.RefreshToken {
		t.Fatalf("access and refresh tokens identical")
	}
	if grant.Subject != testEmail {
		t.Fatalf("subject = %q, want %q", grant.Subject, testEmail)
	}
	if got := grant.ExpiresAt.Sub(grant.IssuedAt); got != testAccessTTL {
		t.Fatalf("access lifetime = %v, want %v", got, testAccessTTL)
	}
	if got := grant.RefreshUntil.Sub(grant.IssuedAt); got != testRefreshTTL {
		t.Fatalf("refresh lifetime = %v, want %v", got, testRefreshTTL)
	}

	stored, err := store.GetByAccessToken(context.Background(), grant.AccessToken)
	if err != nil {
		t.Fatalf("minted grant not stored: %v", err)
	}
	if stored.Revoked {
		t.Fatalf("fresh grant already revoked")
	}
}

func TestTokenService_PasswordGrant_DefaultsToClientScopes(t *testing.T) {
	svc := newTokenSvc(newStubTokenStore())

	grant, err := svc.IssuePasswordGrant(context.Background(), passwordGrant())
	if err != nil {
		t.Fatalf("IssuePasswordGrant returned error: %v", err)
	}
	if !grant.HasScope(domain.ScopeRead) || !grant.HasScope(domain.ScopeWrite) {
		t.Fatalf("expected full client scopes, got %v", grant.Scopes)
	}
}

func TestTokenService_PasswordGrant_NarrowedScope(t *testing.T) {
	svc := newTokenSvc(newStubTokenStore())

	in := passwordGrant()
	in.Scopes = []string{domain.ScopeRead}

	grant, err := svc.IssuePasswordGrant(context.Background(), in)
	if err != nil {
		t.Fatalf("IssuePasswordGrant returned error: %v", err)
	}
	if grant.HasScope(domain.ScopeWrite) {
		t.Fatalf("narrowed grant still carries write scope")
	}
}

func TestTokenService_PasswordGrant_UnknownScope(t *testing.T) {
	svc := newTokenSvc(newStubTokenStore())

	in := passwordGrant()
	in.Scopes = []string{"admin"}

	if _, err := svc.IssuePasswordGrant(context.Background(), in); !errors.Is(err, domain.ErrInvalidScope) {
		t.Fatalf("expected ErrInvalidScope, got %v", err)
	}
}

func TestTokenService_PasswordGrant_WrongClientSecret(t *testing.T) {
	svc := newTokenSvc(newStubTokenStore())

	in := passwordGrant()
	in.ClientSecret = "nope"

	if _, err := svc.IssuePasswordGrant(context.Background(), in); !errors.Is(err, domain.ErrInvalidClient) {
		t.Fatalf("expected ErrInvalidClient, got %v", err)
	}
}

func TestTokenService_PasswordGrant_UnknownClient(t *testing.T) {
	svc := newTokenSvc(newStubTokenStore())

	in := passwordGrant()
	in.ClientID = "otherApp"

	if _, err := svc.IssuePasswordGrant(context.Background(), in); !errors.Is(err, domain.ErrInvalidClient) {
		t.Fatalf("expected ErrInvalidClient, got %v", err)
	}
}

func TestTokenService_PasswordGrant_BadCredentials(t *testing.T) {
	store := newStubTokenStore()
	svc := newTokenSvc(store)

	in := passwordGrant()
	in.Password = "wrong"

	if _, err := svc.IssuePasswordGrant(context.Background(), in); !errors.Is(err, domain.ErrInvalidGrant) {
		t.Fatalf("expected ErrInvalidGrant, got %v", err)
	}
	if store.putCalls != 0 {
		t.Fatalf("grant minted despite bad credentials")
	}
}

func TestTokenService_PasswordGrant_GrantTypeNotAllowed(t *testing.T) {
	clients := []domain.Client{{
		ID:         testClientID,
		SecretHash: "plain:" + testClientSecret,
		GrantTypes: []string{domain.GrantTypeRefreshToken},
		Scopes:     []string{domain.ScopeRead},
	}}
	accounts := &stubAccounts{email: testEmail, password: testPassword}
	svc := NewTokenService(clients, accounts, plainHasher{}, newStubTokenStore(), &recordingTrail{}, zerolog.Nop())

	if _, err := svc.IssuePasswordGrant(context.Background(), passwordGrant()); !errors.Is(err, domain.ErrUnauthorizedGrantType) {
		t.Fatalf("expected ErrUnauthorizedGrantType, got %v", err)
	}
}

func TestTokenService_Mint_RetriesOnCollision(t *testing.T) {
	store := newStubTokenStore()
	store.collideNext = 2
	svc := newTokenSvc(store)

	grant, err := svc.IssuePasswordGrant(context.Background(), passwordGrant())
	if err != nil {
		t.Fatalf("IssuePasswordGrant returned error: %v", err)
	}
	if store.putCalls != 3 {
		t.Fatalf("expected 3 Put attempts, got %d", store.putCalls)
	}
	if _, err := store.GetByAccessToken(context.Background(), grant.AccessToken); err != nil {
		t.Fatalf("grant missing after retried mint: %v", err)
	}
}

func TestTokenService_Mint_GivesUpAfterRetries(t *testing.T) {
	store := newStubTokenStore()
	store.collideNext = mintRetries
	svc := newTokenSvc(store)

	if _, err := svc.IssuePasswordGrant(context.Background(), passwordGrant()); !errors.Is(err, domain.ErrTokenCollision) {
		t.Fatalf("expected ErrTokenCollision, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Refresh grant
// ---------------------------------------------------------------------------

func TestTokenService_Refresh_RotatesPair(t *testing.T) {
	store := newStubTokenStore()
	svc := newTokenSvc(store)

	in := passwordGrant()
	in.Scopes = []string{domain.ScopeRead}
	old, err := svc.IssuePasswordGrant(context.Background(), in)
	if err != nil {
		t.Fatalf("IssuePasswordGrant returned error: %v", err)
	}

	fresh, err := svc.Refresh(context.Background(), ports.RefreshGrantInput{
		ClientID:     testClientID,
		ClientSecret: testClientSecret,
		RefreshToken: old.RefreshToken,
	})
	if err != nil {
		t.Fatalf("Refresh returned error: %v", err)
	}
	if fresh.AccessToken == old.AccessToken {
		t.Fatalf("refresh reused the old access token")
	}
	if fresh.Subject != old.Subject {
		t.Fatalf("refresh changed subject: %q -> %q", old.Subject, fresh.Subject)
	}
	if fresh.HasScope(domain.ScopeWrite) {
		t.Fatalf("refresh widened scopes: %v", fresh.Scopes)
	}

	prior, err := store.GetByAccessToken(context.Background(), old.AccessToken)
	if err != nil {
		t.Fatalf("prior grant lookup: %v", err)
	}
	if !prior.Revoked {
		t.Fatalf("prior access token still live after refresh")
	}
}

func TestTokenService_Refresh_UnknownToken(t *testing.T) {
	svc := newTokenSvc(newStubTokenStore())

	_, err := svc.Refresh(context.Background(), ports.RefreshGrantInput{
		ClientID:     testClientID,
		ClientSecret: testClientSecret,
		RefreshToken: "deadbeef",
	})
	if !errors.Is(err, domain.ErrInvalidGrant) {
		t.Fatalf("expected ErrInvalidGrant, got %v", err)
	}
}

func TestTokenService_Refresh_RevokedGrant(t *testing.T) {
	store := newStubTokenStore()
	svc := newTokenSvc(store)

	old, err := svc.IssuePasswordGrant(context.Background(), passwordGrant())
	if err != nil {
		t.Fatalf("IssuePasswordGrant returned error: %v", err)
	}
	if err := store.Revoke(context.Background(), old.AccessToken); err != nil {
		t.Fatalf("Revoke returned error: %v", err)
	}

	_, err = svc.Refresh(context.Background(), ports.RefreshGrantInput{
		ClientID:     testClientID,
		ClientSecret: testClientSecret,
		RefreshToken: old.RefreshToken,
	})
	if !errors.Is(err, domain.ErrInvalidGrant) {
		t.Fatalf("expected ErrInvalidGrant, got %v", err)
	}
}

func TestTokenService_Refresh_ExpiredRefreshWindow(t *testing.T) {
	store := newStubTokenStore()
	svc := newTokenSvc(store)

	old, err := svc.IssuePasswordGrant(context.Background(), passwordGrant())
	if err != nil {
		t.Fatalf("IssuePasswordGrant returned error: %v", err)
	}
	// Age out the refresh window in place.
	stored := store.byRefresh[old.RefreshToken]
	stored.RefreshUntil = time.Now().UTC().Add(-time.Minute)

	_, err = svc.Refresh(context.Background(), ports.RefreshGrantInput{
		ClientID:     testClientID,
		ClientSecret: testClientSecret,
		RefreshToken: old.RefreshToken,
	})
	if !errors.Is(err, domain.ErrInvalidGrant) {
		t.Fatalf("expected ErrInvalidGrant, got %v", err)
	}
}

func TestTokenService_Refresh_SweepsBeforeLookup(t *testing.T) {
	store := newStubTokenStore()
	svc := newTokenSvc(store)

	old, err := svc.IssuePasswordGrant(context.Background(), passwordGrant())
	if err != nil {
		t.Fatalf("IssuePasswordGrant returned error: %v", err)
	}

	if _, err := svc.Refresh(context.Background(), ports.RefreshGrantInput{
		ClientID:     testClientID,
		ClientSecret: testClientSecret,
		RefreshToken: old.RefreshToken,
	}); err != nil {
		t.Fatalf("Refresh returned error: %v", err)
	}
	if store.purgeCalls == 0 {
		t.Fatalf("refresh skipped the opportunistic purge")
	}
}
