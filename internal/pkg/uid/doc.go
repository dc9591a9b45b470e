// Package uid groups the identifier generators used by the application.
//
// Two shapes exist: StringID for opaque string identifiers (request
// correlation, event IDs) and NumberID for sortable numeric database keys.
package uid

// StringID generates opaque string identifiers.
type StringID interface {
	Generate() string
}

// NumberID generates 64-bit numeric identifiers.
type NumberID interface {
	Generate() int64
}
