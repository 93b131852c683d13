package ports

// PasswordHasher wraps a one-way adaptive hash for storing and verifying
// passwords. Verify returns false, never an error, on mismatch.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hashed string) bool
}
