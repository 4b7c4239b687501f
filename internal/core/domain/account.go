package domain

import "time"

// AccountRole is a coarse permission bucket attached to an account.
type AccountRole string

const (
	RoleAdmin AccountRole = "ADMIN"
	RoleUser  AccountRole = "USER"
)

// Account models a resource owner. The identity is an email-like string,
// immutable after creation. The secret is stored only as a one-way hash
// carrying an algorithm tag; it never holds the plaintext.
type Account struct {
	ID           string        `json:"id"`
	Email        string        `json:"email"`
	PasswordHash string        `json:"-"`
	Roles        []AccountRole `json:"roles"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

// HasRole reports whether the account carries the given role.
func (a *Account) HasRole(role AccountRole) bool {
	for _, r := range a.Roles {
		if r == role {
			return true
		}
	}
	return false
}
