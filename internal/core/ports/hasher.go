package ports

// PasswordHasher provides one-way hashing for secrets. The encoded form
// carries an algorithm tag so the scheme can evolve without rehashing
// everything at once.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	// Verify reports whether plaintext was the original secret behind encoded.
	Verify(plaintext, encoded string) bool
}
