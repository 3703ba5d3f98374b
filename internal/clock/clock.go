// Package clock abstracts the wall clock so that month-boundary
// calculations can be tested deterministically.
package clock

import "time"

// Clock supplies the current instant.
type Clock interface {
	Now() time.Time
}

// System is a Clock backed by time.Now.
type System struct{}

// Now returns the current wall-clock time.
func (System) Now() time.Time { return time.Now() }

// Fixed is a Clock frozen at a single instant, for tests.
type Fixed struct {
	Instant time.Time
}

// Now returns the frozen instant.
func (f Fixed) Now() time.Time { return f.Instant }

// At creates a Fixed clock frozen at the given instant.
func At(t time.Time) Fixed { return Fixed{Instant: t} }
