package service

import (
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// bcryptTag prefixes every encoded secret so the hashing scheme is
// self-describing, mirroring how delegating encoders tag their output.
const bcryptTag = "{bcrypt}"

// BcryptHasher hashes secrets with bcrypt and tags the encoded form.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher returns a hasher using the given bcrypt cost.
// Cost <= 0 selects bcrypt.DefaultCost.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Hash(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", fmt.Errorf("hash secret: %w", err)
	}
	return bcryptTag + string(hash), nil
}

// Verify reports whether plaintext matches the encoded secret. Untagged
// values are treated as raw bcrypt output.
func (h *BcryptHasher) Verify(plaintext, encoded string) bool {
	encoded = strings.TrimPrefix(encoded, bcryptTag)
	return bcrypt.CompareHashAndPassword([]byte(encoded), []byte(plaintext)) == nil
}
