// ABOUTME: Tuning knobs for the viewport coordinator's timers and thresholds
// ABOUTME: Defaults match the documented windows (300ms debounce, 1s grace, 2s TTL)

package coordinator

import "time"

// Config carries every timing window and threshold the coordinator uses.
type Config struct {
	// DebounceWindow is the quiet period after the last scroll event
	// before the most-visible page is committed and broadcast.
	DebounceWindow time.Duration

	// GraceWindow auto-clears the programmatic-scroll flag even when the
	// caller forgets to clear it.
	GraceWindow time.Duration

	// HighlightWindow is how long the transient "active" marker stays on
	// a page or thumbnail after a programmatic scroll.
	HighlightWindow time.Duration

	// CacheTTL is the wall-clock lifetime of element cache entries.
	CacheTTL time.Duration

	// VisibilityThreshold is the minimum visibility ratio for a page to
	// be considered a candidate during settle.
	VisibilityThreshold float64

	// TopMarginPercent is the viewport-height fraction left above a page
	// when scrolling with alignToTop.
	TopMarginPercent float64

	// MinDwell is the minimum time the current document stays current
	// before user scrolling may auto-switch to another document.
	// Zero disables the policy.
	MinDwell time.Duration
}

// DefaultConfig returns the production defaults.
func DefaultConfig() Config {
	return Config{
		DebounceWindow:      300 * time.Millisecond,
		GraceWindow:         time.Second,
		HighlightWindow:     1500 * time.Millisecond,
		CacheTTL:            2 * time.Second,
		VisibilityThreshold: 0.5,
		TopMarginPercent:    5,
		MinDwell:            0,
	}
}

// withDefaults fills zero fields so a partially built Config stays usable.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.DebounceWindow <= 0 {
		c.DebounceWindow = d.DebounceWindow
	}
	if c.GraceWindow <= 0 {
		c.GraceWindow = d.GraceWindow
	}
	if c.HighlightWindow <= 0 {
		c.HighlightWindow = d.HighlightWindow
	}
	if c.CacheTTL <= 0 {
		c.CacheTTL = d.CacheTTL
	}
	if c.VisibilityThreshold <= 0 {
		c.VisibilityThreshold = d.VisibilityThreshold
	}
	if c.TopMarginPercent <= 0 {
		c.TopMarginPercent = d.TopMarginPercent
	}
	return c
}
