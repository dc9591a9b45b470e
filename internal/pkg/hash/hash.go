// Package hash provides one-way hashing for secrets.
//
// Only the hash is ever stored; verification compares user input against the
// stored value. Implementations live behind the Hash interface so the
// algorithm can change without touching business code.
package hash

// Hash hashes and verifies secret values.
type Hash interface {
	// Hash returns the encoded hash of plaintext.
	Hash(plaintext string) ([]byte, error)
	// Verify reports whether plaintext matches the stored hash.
	Verify(hashed, plaintext string) bool
}
