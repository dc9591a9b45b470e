// Package config exposes runtime configuration behind an interface so the
// backing source (file, environment, memory) can change without touching
// callers.
package config

import (
	"io"
	"time"
)

// Config reads typed configuration values by dotted key.
//
// Implementations return zero values for missing keys or failed conversions;
// callers that need stricter behavior should validate at startup.
type Config interface {
	io.Closer

	// GetString returns the value for key as a string.
	GetString(key string) string

	// GetBool returns the value for key as a bool.
	GetBool(key string) bool

	// GetInt returns the value for key as an int.
	GetInt(key string) int

	// GetInt64 returns the value for key as an int64.
	GetInt64(key string) int64

	// GetUint16 returns the value for key as a uint16.
	GetUint16(key string) uint16

	// GetFloat64 returns the value for key as a float64.
	GetFloat64(key string) float64

	// GetSecond interprets the value for key as a number of seconds.
	GetSecond(key string) time.Duration

	// GetMinute interprets the value for key as a number of minutes.
	GetMinute(key string) time.Duration

	// GetBinary decodes the base64-encoded value for key.
	GetBinary(key string) []byte

	// GetArray splits the comma-separated value for key.
	GetArray(key string) []string

	// GetMap parses the value for key from "k1:v1,k2:v2" pairs.
	GetMap(key string) map[string]string
}
