package clock

import "time"

// Clock supplies timestamps so tests can pin them
type Clock interface {
	Now() time.Time
}

// System reads the wall clock in UTC
type System struct{}

// New creates a System clock
func New() System {
	return System{}
}

// Now returns the current UTC time
func (System) Now() time.Time {
	return time.Now().UTC()
}
