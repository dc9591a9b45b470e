// Package validator wraps struct validation behind a small interface so
// inbound handlers and use cases share one set of rules and translated
// messages.
package validator
