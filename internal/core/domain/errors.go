package domain

import "errors"

// Sentinel errors. Every failure in this core reflects bad input or an
// authorization decision; none is retryable internally.
var (
	ErrEventNotFound   = errors.New("event not found")
	ErrAccountNotFound = errors.New("account not found")
	ErrAccountExists   = errors.New("account already exists")

	// Token endpoint failures (OAuth taxonomy).
	ErrInvalidClient         = errors.New("invalid client credentials")
	ErrUnauthorizedGrantType = errors.New("grant type not allowed for client")
	ErrInvalidGrant          = errors.New("invalid grant")
	ErrInvalidScope          = errors.New("requested scope not allowed")
	ErrUnsupportedGrantType  = errors.New("unsupported grant type")

	// Access gate denials, distinguishable so the boundary can render a
	// structured body rather than a bare status code.
	ErrMissingCredential     = errors.New("missing credential")
	ErrInvalidOrExpiredToken = errors.New("invalid or expired token")
	ErrInsufficientScope     = errors.New("insufficient scope")

	// Token store lookups and minting.
	ErrGrantNotFound  = errors.New("grant not found")
	ErrTokenCollision = errors.New("token collision")
)
