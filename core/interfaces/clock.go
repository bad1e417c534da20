package interfaces

import "time"

// Timer is a handle to a deferred function scheduled through a Clock.
type Timer interface {
	// Stop cancels the timer. It reports whether the call prevented the
	// function from running. Stopping an already-fired timer is a no-op.
	Stop() bool
}

// Clock abstracts time for the engine. Every deferral the engine performs
// (debounce windows, flag grace windows, marker clears) goes through a
// Clock, so tests can drive timers deterministically without sleeping.
type Clock interface {
	// Now returns the current time.
	Now() time.Time

	// AfterFunc schedules fn to run after d and returns a handle that can
	// cancel it.
	AfterFunc(d time.Duration, fn func()) Timer
}
