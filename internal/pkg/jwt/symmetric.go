package jwt

import (
	"errors"
	"strconv"

	libjwt "github.com/golang-jwt/jwt/v5"
)

// Symmetric signs and verifies tokens with an HMAC-SHA512 shared secret.
type Symmetric struct {
	cfg Config
}

// NewHS512 builds a Symmetric implementation. The secret must be at least 64
// bytes so the key is as wide as the HMAC output.
func NewHS512(cfg Config) (*Symmetric, error) {
	if len(cfg.Secret) < 64 {
		return nil, ErrKeyTooShort
	}
	return &Symmetric{cfg: cfg}, nil
}

// Generate creates a signed token for the user.
func (s *Symmetric) Generate(uid int64, email, name string) (string, error) {
	now := s.cfg.Clock.Now()

	claims := Claims{
		RegisteredClaims: libjwt.RegisteredClaims{
			ID:        s.cfg.TokenID.Generate(),
			Subject:   strconv.FormatInt(uid, 10),
			Issuer:    s.cfg.Issuer,
			Audience:  s.cfg.Audiences,
			IssuedAt:  libjwt.NewNumericDate(now),
			NotBefore: libjwt.NewNumericDate(now),
			ExpiresAt: libjwt.NewNumericDate(now.Add(s.cfg.TTL)),
		},
		UserID:    uid,
		UserEmail: email,
		UserName:  name,
	}

	return libjwt.NewWithClaims(libjwt.SigningMethodHS512, claims).SignedString(s.cfg.Secret)
}

// Verify parses and validates tokenStr.
func (s *Symmetric) Verify(tokenStr string) (Claims, error) {
	var claims Claims

	token, err := libjwt.ParseWithClaims(tokenStr, &claims,
		func(t *libjwt.Token) (any, error) {
			if t.Method != libjwt.SigningMethodHS512 {
				return nil, ErrInvalidSigningMethod
			}
			return s.cfg.Secret, nil
		},
		libjwt.WithIssuer(s.cfg.Issuer),
		libjwt.WithAudience(s.cfg.Audiences...),
		libjwt.WithValidMethods([]string{libjwt.SigningMethodHS512.Alg()}),
		libjwt.WithIssuedAt(),
		libjwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, libjwt.ErrTokenExpired) {
			return Claims{}, ErrTokenExpired
		}
		return Claims{}, err
	}

	if !token.Valid {
		return Claims{}, ErrInvalidToken
	}

	return claims, nil
}
