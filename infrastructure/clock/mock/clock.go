// ABOUTME: Controllable clock for tests and deterministic playback
// ABOUTME: Advance moves time forward and fires due timers synchronously

package mock

import (
	"sync"
	"time"

	"docview-engine/core/interfaces"
)

// Clock is a manual time source. Timers scheduled through AfterFunc fire
// synchronously, in deadline order, when Advance crosses their deadline.
type Clock struct {
	mu     sync.Mutex
	now    time.Time
	timers []*timer
	seq    int
}

// NewClock creates a mock clock starting at startTime.
func NewClock(startTime time.Time) *Clock {
	return &Clock{now: startTime}
}

// Now returns the current mocked time.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// AfterFunc schedules fn to fire when Advance crosses now+d.
func (c *Clock) AfterFunc(d time.Duration, fn func()) interfaces.Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	t := &timer{clock: c, deadline: c.now.Add(d), fn: fn, seq: c.seq}
	c.timers = append(c.timers, t)
	return t
}

// Advance moves the clock forward by d, firing every live timer whose
// deadline falls inside the window, in deadline order. Functions a fired
// timer schedules are themselves fired if they fall inside the window.
func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.now.Add(d)
	for {
		next := c.nextDueLocked(target)
		if next == nil {
			break
		}
		next.fired = true
		if next.deadline.After(c.now) {
			c.now = next.deadline
		}
		fn := next.fn
		c.mu.Unlock()
		fn()
		c.mu.Lock()
	}
	c.now = target
	c.mu.Unlock()
}

// Pending counts timers that are scheduled and still live.
func (c *Clock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, t := range c.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

func (c *Clock) nextDueLocked(target time.Time) *timer {
	var next *timer
	for _, t := range c.timers {
		if t.stopped || t.fired || t.deadline.After(target) {
			continue
		}
		if next == nil || t.deadline.Before(next.deadline) ||
			(t.deadline.Equal(next.deadline) && t.seq < next.seq) {
			next = t
		}
	}
	return next
}

type timer struct {
	clock    *Clock
	deadline time.Time
	fn       func()
	stopped  bool
	fired    bool
	seq      int
}

func (t *timer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	if t.fired || t.stopped {
		return false
	}
	t.stopped = true
	return true
}
