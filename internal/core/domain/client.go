package domain

import "time"

// Grant types supported by the token endpoint.
const (
	GrantTypePassword     = "password"
	GrantTypeRefreshToken = "refresh_token"
)

// Scope names recognised by the access gate.
const (
	ScopeRead  = "read"
	ScopeWrite = "write"
)

// Client is a registered API caller. Clients are config-seeded and
// read-only at runtime; the secret is stored hashed like account secrets.
type Client struct {
	ID              string
	SecretHash      string
	GrantTypes      []string
	Scopes          []string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
}

// AllowsGrantType reports whether the client may use the given grant type.
func (c *Client) AllowsGrantType(grantType string) bool {
	for _, g := range c.GrantTypes {
		if g == grantType {
			return true
		}
	}
	return false
}

// AllowsScope reports whether the client may issue tokens with the scope.
func (c *Client) AllowsScope(scope string) bool {
	for _, s := range c.Scopes {
		if s == scope {
			return true
		}
	}
	return false
}
