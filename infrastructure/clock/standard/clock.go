// ABOUTME: Real clock implementation backed by the time package
// ABOUTME: Production Clock for the engine's deferred work

package standard

import (
	"time"

	"docview-engine/core/interfaces"
)

// Clock implements the Clock interface using the system clock.
type Clock struct{}

// NewClock creates a new system clock.
func NewClock() *Clock {
	return &Clock{}
}

// Now returns the current time with a monotonic clock reading.
func (Clock) Now() time.Time {
	return time.Now()
}

// AfterFunc schedules fn on its own goroutine after d.
func (Clock) AfterFunc(d time.Duration, fn func()) interfaces.Timer {
	return timer{t: time.AfterFunc(d, fn)}
}

type timer struct {
	t *time.Timer
}

func (t timer) Stop() bool {
	return t.t.Stop()
}
