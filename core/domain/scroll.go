// ABOUTME: Scroll behavior and option types for programmatic scrolling
// ABOUTME: Carried by ScrollToPage calls from any navigation surface

package domain

// ScrollBehavior selects how a programmatic scroll is performed.
type ScrollBehavior string

const (
	// ScrollSmooth animates the scroll.
	ScrollSmooth ScrollBehavior = "smooth"

	// ScrollImmediate jumps without animation.
	ScrollImmediate ScrollBehavior = "immediate"
)

// ScrollOptions control a single ScrollToPage operation.
type ScrollOptions struct {
	// Behavior selects smooth or immediate scrolling.
	Behavior ScrollBehavior `json:"behavior"`

	// AlignToTop places the page near the viewport top instead of
	// centering it.
	AlignToTop bool `json:"alignToTop"`

	// HighlightThumbnail also scrolls the companion thumbnail into view
	// and marks it.
	HighlightThumbnail bool `json:"highlightThumbnail"`

	// ForceElementRefresh bypasses the element cache for this lookup.
	ForceElementRefresh bool `json:"forceElementRefresh"`
}

// DefaultScrollOptions returns the options used when a caller passes none.
func DefaultScrollOptions() ScrollOptions {
	return ScrollOptions{
		Behavior:           ScrollSmooth,
		AlignToTop:         false,
		HighlightThumbnail: true,
	}
}
