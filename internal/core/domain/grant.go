package domain

import "time"

// Grant is an issued token pair plus its metadata. The access and refresh
// token strings are opaque; the token store is the single authority on
// whether a grant is still live.
type Grant struct {
	AccessToken  string
	RefreshToken string
	Subject      string // account email
	ClientID     string
	Scopes       []string
	IssuedAt     time.Time
	ExpiresAt    time.Time // access-token expiry: IssuedAt + client TTL
	RefreshUntil time.Time // refresh-token expiry
	Revoked      bool
}

// Expired reports whether the access token has passed its expiry.
func (g *Grant) Expired(now time.Time) bool {
	return now.After(g.ExpiresAt)
}

// RefreshExpired reports whether the refresh token has passed its expiry.
func (g *Grant) RefreshExpired(now time.Time) bool {
	return now.After(g.RefreshUntil)
}

// HasScope reports whether the grant carries the given scope.
func (g *Grant) HasScope(scope string) bool {
	for _, s := range g.Scopes {
		if s == scope {
			return true
		}
	}
	return false
}
