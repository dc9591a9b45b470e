package otp

import (
	"strconv"
	"testing"
)

func TestNumericGenerate(t *testing.T) {

	// Arrange
	gen := NewNumeric()

	// Act & Assert
	for range 1000 {
		code, err := gen.Generate()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(code) != 6 {
			t.Fatalf("expected 6 digits, got %q", code)
		}
		n, err := strconv.Atoi(code)
		if err != nil {
			t.Fatalf("expected numeric code, got %q", code)
		}
		if n < 100000 || n > 999999 {
			t.Fatalf("code %d out of range", n)
		}
	}
}
