// Package jwt issues and verifies the access tokens returned after a
// successful login.
//
// It provides a typed Claims payload, an HS512 symmetric implementation, and
// context helpers for carrying authenticated claims through a request.
package jwt
