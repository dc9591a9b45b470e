package uid

import (
	"encoding/hex"
	"testing"
)

func TestObjectIDGenerate(t *testing.T) {

	// Arrange
	gen, err := NewObjectID()
	if err != nil {
		t.Fatalf("new object id: %v", err)
	}

	// Act
	id := gen.Generate()

	// Assert
	if len(id) != 64 {
		t.Fatalf("expected 64 hex characters, got %d (%q)", len(id), id)
	}
	if _, err := hex.DecodeString(id); err != nil {
		t.Fatalf("expected hex encoding, got %v", err)
	}
}

func TestObjectIDGenerateUnique(t *testing.T) {

	// Arrange
	gen, err := NewObjectID()
	if err != nil {
		t.Fatalf("new object id: %v", err)
	}

	// Act
	seen := make(map[string]bool, 1000)
	for i := 0; i < 1000; i++ {
		id := gen.Generate()

		// Assert
		if seen[id] {
			t.Fatalf("duplicate id %q after %d generations", id, i)
		}
		seen[id] = true
	}
}
