package ports

import (
	"context"

	"github.com/eventdesk/registration-api/internal/core/domain"
)

// AccountRepository defines persistence for account records.
type AccountRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.Account, error)
	Create(ctx context.Context, account *domain.Account) (*domain.Account, error)
	// UpdatePassword replaces the stored hash for an existing account
	// (secret rotation; identity stays immutable).
	UpdatePassword(ctx context.Context, email, passwordHash string) error
}
