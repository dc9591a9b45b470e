// Package entity defines the auth module's domain types.
package entity

import "time"

// User is the account row as the auth module sees it.
type User struct {
	// ID is the primary key.
	ID int64
	// Email is the unique login identifier.
	Email string
	// FullName is the user's display name.
	FullName string
	// PasswordHash is the stored bcrypt hash. Empty means the account has no
	// usable password and can never authenticate.
	PasswordHash string
	// Challenge is the pending verification code, if any.
	Challenge *Challenge
}

// CanAuthenticate reports whether the account has a password to check.
func (u *User) CanAuthenticate() bool {
	return u != nil && u.PasswordHash != ""
}

// Challenge is a stored one-time verification code with its absolute expiry.
type Challenge struct {
	// Code is the six-digit code as stored.
	Code string
	// ExpiresAt is the moment the code stops being accepted.
	ExpiresAt time.Time
}

// Expired reports whether the challenge is past its expiry at now.
func (c *Challenge) Expired(now time.Time) bool {
	return now.After(c.ExpiresAt)
}
