package hash

import (
	"strings"
	"testing"
)

func TestArgon2idRoundTrip(t *testing.T) {

	// Arrange
	hasher := NewArgon2id("")

	// Act
	hashed, err := hasher.Hash("correct-horse-9")

	// Assert
	if err != nil {
		t.Fatalf("expected hash to succeed, got %v", err)
	}
	if !strings.HasPrefix(string(hashed), "$argon2id$") {
		t.Fatalf("expected PHC-encoded argon2id hash, got %q", hashed)
	}
	if !hasher.Verify(string(hashed), "correct-horse-9") {
		t.Fatal("expected the original password to verify")
	}
	if hasher.Verify(string(hashed), "wrong-password") {
		t.Fatal("expected a wrong password to fail verification")
	}
}

func TestArgon2idSaltsAreUnique(t *testing.T) {

	// Arrange
	hasher := NewArgon2id("")

	// Act
	first, err1 := hasher.Hash("correct-horse-9")
	second, err2 := hasher.Hash("correct-horse-9")

	// Assert
	if err1 != nil || err2 != nil {
		t.Fatalf("expected hashing to succeed, got %v / %v", err1, err2)
	}
	if string(first) == string(second) {
		t.Fatal("expected distinct salts to produce distinct hashes")
	}
}

func TestArgon2idPepperMismatch(t *testing.T) {

	// Arrange
	hashed, err := NewArgon2id("pepper-a").Hash("correct-horse-9")
	if err != nil {
		t.Fatalf("expected hash to succeed, got %v", err)
	}

	// Act & Assert
	if NewArgon2id("pepper-b").Verify(string(hashed), "correct-horse-9") {
		t.Fatal("expected verification to fail under a different pepper")
	}
}

func TestArgon2idRejectsMalformedEncodings(t *testing.T) {

	// Arrange
	hasher := NewArgon2id("")

	tests := []struct {
		name   string
		hashed string
	}{
		{"Empty", ""},
		{"WrongAlgorithm", "$bcrypt$v=19$m=32768,t=3,p=2$c2FsdA$a2V5"},
		{"MissingParts", "$argon2id$v=19$m=32768,t=3,p=2"},
		{"BadSaltEncoding", "$argon2id$v=19$m=32768,t=3,p=2$!!!$a2V5"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {

			// Act & Assert
			if hasher.Verify(tc.hashed, "correct-horse-9") {
				t.Fatalf("expected %q to fail verification", tc.hashed)
			}
		})
	}
}

func TestBcryptRoundTrip(t *testing.T) {

	// Arrange
	hasher := NewBcrypt(4, "pepper")

	// Act
	hashed, err := hasher.Hash("correct-horse-9")

	// Assert
	if err != nil {
		t.Fatalf("expected hash to succeed, got %v", err)
	}
	if !hasher.Verify(string(hashed), "correct-horse-9") {
		t.Fatal("expected the original password to verify")
	}
	if hasher.Verify(string(hashed), "wrong-password") {
		t.Fatal("expected a wrong password to fail verification")
	}
}
