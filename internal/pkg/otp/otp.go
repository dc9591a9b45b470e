// Package otp generates the short numeric codes sent to users during login.
package otp

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
)

// Generator produces one-time codes.
type Generator interface {
	Generate() (string, error)
}

// Numeric generates uniformly distributed six-digit codes from crypto/rand.
type Numeric struct{}

// NewNumeric returns a six-digit code generator.
func NewNumeric() *Numeric {
	return &Numeric{}
}

const (
	codeMin  = 100000
	codeSpan = 900000
)

// Generate returns a code in the range 100000 to 999999 inclusive. Rejection
// sampling keeps the distribution uniform across the span.
func (*Numeric) Generate() (string, error) {
	// Largest multiple of codeSpan below 2^64, to discard biased draws.
	const limit = ^uint64(0) - ^uint64(0)%codeSpan

	var buf [8]byte
	for {
		if _, err := rand.Read(buf[:]); err != nil {
			return "", fmt.Errorf("otp: read random: %w", err)
		}

		n := binary.BigEndian.Uint64(buf[:])
		if n >= limit {
			continue
		}

		return fmt.Sprintf("%06d", codeMin+n%codeSpan), nil
	}
}
