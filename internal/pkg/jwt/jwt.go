package jwt

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalidSigningMethod is returned when a token uses an unexpected algorithm.
	ErrInvalidSigningMethod = errors.New("jwt: invalid signing method")

	// ErrKeyTooShort is returned when the HS512 key is shorter than 64 bytes.
	ErrKeyTooShort = errors.New("jwt: HS512 key must be at least 64 bytes")

	// ErrTokenExpired is returned when the token is past its expiry.
	ErrTokenExpired = errors.New("jwt: token expired")

	// ErrInvalidToken is returned when the token fails parsing or validation.
	ErrInvalidToken = errors.New("jwt: invalid token")
)

// JWT generates and verifies signed access tokens.
type JWT interface {
	// Generate creates a signed token carrying the user's identity.
	Generate(uid int64, email, name string) (string, error)
	// Verify parses and validates tokenStr and returns its claims.
	Verify(tokenStr string) (Claims, error)
}

type clocker interface {
	Now() time.Time
}

type stringID interface {
	Generate() string
}

// Config carries the inputs for building a JWT implementation.
type Config struct {
	// Secret is the HMAC signing key.
	Secret []byte
	// Issuer is written to the iss claim.
	Issuer string
	// Audiences are the accepted aud values.
	Audiences []string
	// TTL is the token lifetime.
	TTL time.Duration
	// Clock supplies the current time.
	Clock clocker
	// TokenID generates jti values.
	TokenID stringID
}

// Claims is the token payload: registered claims plus the user identity.
type Claims struct {
	jwt.RegisteredClaims

	// UserID is the authenticated user's identifier.
	UserID int64 `json:"user_id,string"`
	// UserEmail is the authenticated user's email address.
	UserEmail string `json:"user_email"`
	// UserName is the authenticated user's display name.
	UserName string `json:"user_name"`
}

type claimsContextKey struct{}

// GetAuth returns the claims stored in ctx, or nil when unauthenticated.
func GetAuth(ctx context.Context) *Claims {
	clm, ok := ctx.Value(claimsContextKey{}).(Claims)
	if !ok {
		return nil
	}
	return &clm
}

// SetAuth stores claims in ctx for downstream handlers.
func SetAuth(ctx context.Context, clm Claims) context.Context {
	return context.WithValue(ctx, claimsContextKey{}, clm)
}
