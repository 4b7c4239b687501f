package ports

import (
	"context"
	"time"

	"github.com/eventdesk/registration-api/internal/core/domain"
)

// TokenStore is the single authority on live grants. Implementations must
// serialize writes against reads so a lookup never observes a half-written
// grant. Put returns domain.ErrTokenCollision when the access-token string
// is already present; the caller retries with a fresh token.
type TokenStore interface {
	Put(ctx context.Context, grant *domain.Grant) error
	GetByAccessToken(ctx context.Context, token string) (*domain.Grant, error)
	GetByRefreshToken(ctx context.Context, token string) (*domain.Grant, error)
	Revoke(ctx context.Context, accessToken string) error
	// PurgeExpired drops grants whose refresh window has closed. It is
	// invoked opportunistically on lookups, not from a background task.
	PurgeExpired(ctx context.Context, now time.Time) error
}
