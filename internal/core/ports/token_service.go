package ports

import (
	"context"

	"github.com/eventdesk/registration-api/internal/core/domain"
)

// PasswordGrantInput carries a resource-owner password grant request.
type PasswordGrantInput struct {
	ClientID     string
	ClientSecret string
	Username     string
	Password     string
	// Scopes requested by the caller. Empty means every scope the client
	// is allowed to issue.
	Scopes []string
}

// RefreshGrantInput carries a refresh-token grant request.
type RefreshGrantInput struct {
	ClientID     string
	ClientSecret string
	RefreshToken string
}

// TokenService issues and renews grants.
type TokenService interface {
	IssuePasswordGrant(ctx context.Context, in PasswordGrantInput) (*domain.Grant, error)
	Refresh(ctx context.Context, in RefreshGrantInput) (*domain.Grant, error)
}
