package jwt

import (
	"context"
	"errors"
	"testing"
	"time"
)

type stubClock struct{ now time.Time }

func (c *stubClock) Now() time.Time { return c.now }

type stubID struct{}

func (stubID) Generate() string { return "token-id-1" }

var testSecret = []byte("0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef")

func newTestJWT(t *testing.T, clk *stubClock) *Symmetric {
	t.Helper()

	s, err := NewHS512(Config{
		Secret:    testSecret,
		Issuer:    "otpgate",
		Audiences: []string{"otpgate-api"},
		TTL:       15 * time.Minute,
		Clock:     clk,
		TokenID:   stubID{},
	})
	if err != nil {
		t.Fatalf("new hs512: %v", err)
	}

	return s
}

func TestNewHS512RejectsShortKey(t *testing.T) {

	// Act
	_, err := NewHS512(Config{Secret: []byte("too short")})

	// Assert
	if !errors.Is(err, ErrKeyTooShort) {
		t.Fatalf("expected ErrKeyTooShort, got %v", err)
	}
}

func TestGenerateVerifyRoundTrip(t *testing.T) {

	// Arrange
	clk := &stubClock{now: time.Now()}
	s := newTestJWT(t, clk)

	// Act
	token, err := s.Generate(42, "jane@example.com", "Jane Roe")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	claims, err := s.Verify(token)

	// Assert
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.UserID != 42 {
		t.Fatalf("expected user id 42, got %d", claims.UserID)
	}
	if claims.UserEmail != "jane@example.com" {
		t.Fatalf("unexpected email claim: %q", claims.UserEmail)
	}
	if claims.UserName != "Jane Roe" {
		t.Fatalf("unexpected name claim: %q", claims.UserName)
	}
	if claims.Subject != "42" {
		t.Fatalf("unexpected subject: %q", claims.Subject)
	}
}

func TestVerifyExpiredToken(t *testing.T) {

	// Arrange
	clk := &stubClock{now: time.Now().Add(-time.Hour)}
	s := newTestJWT(t, clk)
	token, err := s.Generate(42, "jane@example.com", "Jane Roe")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	// Act
	_, err = s.Verify(token)

	// Assert
	if !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestVerifyTamperedToken(t *testing.T) {

	// Arrange
	clk := &stubClock{now: time.Now()}
	s := newTestJWT(t, clk)
	token, err := s.Generate(42, "jane@example.com", "Jane Roe")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	// Act
	_, err = s.Verify(token + "x")

	// Assert
	if err == nil {
		t.Fatal("expected verification failure")
	}
}

func TestAuthContext(t *testing.T) {

	// Arrange
	ctx := context.Background()
	if got := GetAuth(ctx); got != nil {
		t.Fatalf("expected nil claims on empty context, got %+v", got)
	}

	// Act
	ctx = SetAuth(ctx, Claims{UserID: 7, UserEmail: "a@b.co"})
	got := GetAuth(ctx)

	// Assert
	if got == nil || got.UserID != 7 || got.UserEmail != "a@b.co" {
		t.Fatalf("unexpected claims: %+v", got)
	}
}
