package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/eventdesk/registration-api/internal/core/domain"
	"github.com/eventdesk/registration-api/internal/core/ports"
)

// AccountService owns account records: registration, credential checks,
// secret rotation, and bootstrap seeding.
type AccountService struct {
	repo   ports.AccountRepository
	hasher ports.PasswordHasher
	logger zerolog.Logger
}

func NewAccountService(repo ports.AccountRepository, hasher ports.PasswordHasher, logger zerolog.Logger) *AccountService {
	return &AccountService{repo: repo, hasher: hasher, logger: logger}
}

// Register creates an account with a hashed secret. Roles must be non-empty;
// duplicates are collapsed.
func (s *AccountService) Register(ctx context.Context, email, password string, roles []domain.AccountRole) (*domain.Account, error) {
	if email == "" || password == "" || len(roles) == 0 {
		return nil, domain.ErrInvalidGrant
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	account := &domain.Account{
		Email:        email,
		PasswordHash: hash,
		Roles:        uniqueRoles(roles),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, account)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("email", email).Msg("account registered")
	return created, nil
}

// Authenticate verifies the resource-owner credentials. Absent accounts and
// secret mismatches both surface as ErrInvalidGrant so the token endpoint
// cannot be used to probe which identities exist.
func (s *AccountService) Authenticate(ctx context.Context, email, password string) (*domain.Account, error) {
	account, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil, domain.ErrInvalidGrant
		}
		return nil, err
	}
	if !s.hasher.Verify(password, account.PasswordHash) {
		return nil, domain.ErrInvalidGrant
	}
	return account, nil
}

// RotatePassword re-hashes and stores a new secret for an existing account.
func (s *AccountService) RotatePassword(ctx context.Context, email, newPassword string) error {
	if newPassword == "" {
		return domain.ErrInvalidGrant
	}
	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return err
	}
	if err := s.repo.UpdatePassword(ctx, email, hash); err != nil {
		return err
	}
	s.logger.Info().Str("email", email).Msg("account secret rotated")
	return nil
}

// EnsureAccount registers the account unless it already exists. Used for
// bootstrap seeding of the admin and default user accounts.
func (s *AccountService) EnsureAccount(ctx context.Context, email, password string, roles []domain.AccountRole) error {
	_, err := s.Register(ctx, email, password, roles)
	if errors.Is(err, domain.ErrAccountExists) {
		return nil
	}
	return err
}

func uniqueRoles(roles []domain.AccountRole) []domain.AccountRole {
	seen := make(map[domain.AccountRole]struct{}, len(roles))
	out := make([]domain.AccountRole, 0, len(roles))
	for _, r := range roles {
		if _, ok := seen[r]; ok {
			continue
		}
		seen[r] = struct{}{}
		out = append(out, r)
	}
	return out
}
