package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/eventdesk/registration-api/internal/core/domain"
)

type stubAccountRepo struct {
	byEmail map[string]*domain.Account
}

func newStubAccountRepo() *stubAccountRepo {
	return &stubAccountRepo{byEmail: make(map[string]*domain.Account)}
}

func (r *stubAccountRepo) FindByEmail(_ context.Context, email string) (*domain.Account, error) {
	a, ok := r.byEmail[email]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	return a, nil
}

func (r *stubAccountRepo) Create(_ context.Context, account *domain.Account) (*domain.Account, error) {
	if _, ok := r.byEmail[account.Email]; ok {
		return nil, domain.ErrAccountExists
	}
	r.byEmail[account.Email] = account
	return account, nil
}

func (r *stubAccountRepo) UpdatePassword(_ context.Context, email, passwordHash string) error {
	a, ok := r.byEmail[email]
	if !ok {
		return domain.ErrAccountNotFound
	}
	a.PasswordHash = passwordHash
	return nil
}

func newAccountSvc(repo *stubAccountRepo) *AccountService {
	return NewAccountService(repo, plainHasher{}, zerolog.Nop())
}

func TestAccountService_Register_HashesSecret(t *testing.T) {
	repo := newStubAccountRepo()
	svc := newAccountSvc(repo)

	account, err := svc.Register(context.Background(), "admin@eventdesk.local", "admin", []domain.AccountRole{domain.RoleAdmin, domain.RoleUser})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if account.PasswordHash == "admin" {
		t.Fatalf("secret stored as plaintext")
	}
	if !account.HasRole(domain.RoleAdmin) || !account.HasRole(domain.RoleUser) {
		t.Fatalf("roles lost on register: %v", account.Roles)
	}
}

func TestAccountService_Register_CollapsesDuplicateRoles(t *testing.T) {
	svc := newAccountSvc(newStubAccountRepo())

	account, err := svc.Register(context.Background(), "user@eventdesk.local", "user", []domain.AccountRole{domain.RoleUser, domain.RoleUser})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if len(account.Roles) != 1 {
		t.Fatalf("duplicate roles kept: %v", account.Roles)
	}
}

func TestAccountService_Register_RejectsEmptyInput(t *testing.T) {
	svc := newAccountSvc(newStubAccountRepo())

	cases := []struct {
		name     string
		email    string
		password string
		roles    []domain.AccountRole
	}{
		{"empty email", "", "pw", []domain.AccountRole{domain.RoleUser}},
		{"empty password", "a@b.c", "", []domain.AccountRole{domain.RoleUser}},
		{"no roles", "a@b.c", "pw", nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Register(context.Background(), tc.email, tc.password, tc.roles); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestAccountService_Register_Duplicate(t *testing.T) {
	svc := newAccountSvc(newStubAccountRepo())

	if _, err := svc.Register(context.Background(), "user@eventdesk.local", "user", []domain.AccountRole{domain.RoleUser}); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	_, err := svc.Register(context.Background(), "user@eventdesk.local", "user", []domain.AccountRole{domain.RoleUser})
	if !errors.Is(err, domain.ErrAccountExists) {
		t.Fatalf("expected ErrAccountExists, got %v", err)
	}
}

func TestAccountService_Authenticate(t *testing.T) {
	svc := newAccountSvc(newStubAccountRepo())

	if _, err := svc.Register(context.Background(), "user@eventdesk.local", "user", []domain.AccountRole{domain.RoleUser}); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	account, err := svc.Authenticate(context.Background(), "user@eventdesk.local", "user")
	if err != nil {
		t.Fatalf("Authenticate returned error: %v", err)
	}
	if account.Email != "user@eventdesk.local" {
		t.Fatalf("wrong account returned: %+v", account)
	}

	if _, err := svc.Authenticate(context.Background(), "user@eventdesk.local", "wrong"); !errors.Is(err, domain.ErrInvalidGrant) {
		t.Fatalf("wrong password: expected ErrInvalidGrant, got %v", err)
	}
	// Unknown identities must be indistinguishable from bad secrets.
	if _, err := svc.Authenticate(context.Background(), "ghost@eventdesk.local", "user"); !errors.Is(err, domain.ErrInvalidGrant) {
		t.Fatalf("unknown account: expected ErrInvalidGrant, got %v", err)
	}
}

func TestAccountService_RotatePassword(t *testing.T) {
	svc := newAccountSvc(newStubAccountRepo())

	if _, err := svc.Register(context.Background(), "user@eventdesk.local", "old", []domain.AccountRole{domain.RoleUser}); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if err := svc.RotatePassword(context.Background(), "user@eventdesk.local", "new"); err != nil {
		t.Fatalf("RotatePassword returned error: %v", err)
	}

	if _, err := svc.Authenticate(context.Background(), "user@eventdesk.local", "old"); !errors.Is(err, domain.ErrInvalidGrant) {
		t.Fatalf("old secret still accepted after rotation")
	}
	if _, err := svc.Authenticate(context.Background(), "user@eventdesk.local", "new"); err != nil {
		t.Fatalf("new secret rejected after rotation: %v", err)
	}
}

func TestAccountService_EnsureAccount_Idempotent(t *testing.T) {
	repo := newStubAccountRepo()
	svc := newAccountSvc(repo)

	roles := []domain.AccountRole{domain.RoleAdmin, domain.RoleUser}
	if err := svc.EnsureAccount(context.Background(), "admin@eventdesk.local", "admin", roles); err != nil {
		t.Fatalf("first EnsureAccount returned error: %v", err)
	}
	if err := svc.EnsureAccount(context.Background(), "admin@eventdesk.local", "admin", roles); err != nil {
		t.Fatalf("second EnsureAccount returned error: %v", err)
	}
	if len(repo.byEmail) != 1 {
		t.Fatalf("seeding created duplicates: %d accounts", len(repo.byEmail))
	}
}
