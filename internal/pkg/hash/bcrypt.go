package hash

import "golang.org/x/crypto/bcrypt"

// Bcrypt implements Hash using bcrypt.
//
// A configured pepper is appended to the plaintext before hashing and
// verifying. The pepper lives in configuration, never in the database.
type Bcrypt struct {
	cost   int
	pepper string
}

// NewBcrypt returns a bcrypt hasher. cost is the bcrypt work factor; pepper
// is optional.
func NewBcrypt(cost int, pepper string) *Bcrypt {
	return &Bcrypt{cost: cost, pepper: pepper}
}

// Hash hashes plaintext with the configured cost.
func (b *Bcrypt) Hash(plaintext string) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(plaintext+b.pepper), b.cost)
}

// Verify reports whether plaintext matches hashed.
func (b *Bcrypt) Verify(hashed, plaintext string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plaintext+b.pepper)) == nil
}
