// Package clock abstracts the current time behind a small interface.
//
// Use cases that care about time should hold a Clock instead of calling
// time.Now() directly, so tests can inject a fixed time and assert on
// expirations deterministically.
package clock
