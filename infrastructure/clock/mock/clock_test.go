package mock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func start() time.Time {
	return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
}

func TestAdvance_FiresDueTimers(t *testing.T) {
	c := NewClock(start())
	fired := false
	c.AfterFunc(100*time.Millisecond, func() { fired = true })

	c.Advance(99 * time.Millisecond)
	assert.False(t, fired, "timer must not fire before its deadline")

	c.Advance(1 * time.Millisecond)
	assert.True(t, fired, "timer must fire at its deadline")
}

func TestAdvance_FiresInDeadlineOrder(t *testing.T) {
	c := NewClock(start())
	var order []string
	c.AfterFunc(200*time.Millisecond, func() { order = append(order, "late") })
	c.AfterFunc(100*time.Millisecond, func() { order = append(order, "early") })

	c.Advance(time.Second)

	assert.Equal(t, []string{"early", "late"}, order)
}

func TestAdvance_FiresTimersScheduledByTimers(t *testing.T) {
	c := NewClock(start())
	var order []string
	c.AfterFunc(100*time.Millisecond, func() {
		order = append(order, "first")
		c.AfterFunc(100*time.Millisecond, func() { order = append(order, "chained") })
	})

	c.Advance(time.Second)

	assert.Equal(t, []string{"first", "chained"}, order)
}

func TestStop_PreventsFiring(t *testing.T) {
	c := NewClock(start())
	fired := false
	timer := c.AfterFunc(100*time.Millisecond, func() { fired = true })

	assert.True(t, timer.Stop())
	c.Advance(time.Second)

	assert.False(t, fired, "stopped timer must not fire")
	assert.Equal(t, 0, c.Pending())
}

func TestStop_AfterFiringReportsFalse(t *testing.T) {
	c := NewClock(start())
	timer := c.AfterFunc(100*time.Millisecond, func() {})

	c.Advance(time.Second)

	assert.False(t, timer.Stop())
}

func TestNow_TracksAdvance(t *testing.T) {
	c := NewClock(start())

	c.Advance(42 * time.Minute)

	assert.Equal(t, start().Add(42*time.Minute), c.Now())
}

func TestAdvance_NowIsDeadlineDuringCallback(t *testing.T) {
	c := NewClock(start())
	var seen time.Time
	c.AfterFunc(100*time.Millisecond, func() { seen = c.Now() })

	c.Advance(time.Second)

	assert.Equal(t, start().Add(100*time.Millisecond), seen)
}
