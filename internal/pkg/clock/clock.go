package clock

import "time"

// Clock is the time source used by business code.
type Clock interface {
	Now() time.Time
}

// System reads the real system time.
type System struct{}

// New returns a Clock backed by time.Now.
func New() *System {
	return &System{}
}

// Now returns the current system time.
func (*System) Now() time.Time {
	return time.Now()
}
