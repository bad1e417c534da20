// ABOUTME: Request DTOs for viewport operations
// ABOUTME: Defines validated request structures for scroll and position endpoints

package requests

// ScrollToPageRequest is the request body for programmatic page navigation
type ScrollToPageRequest struct {
	// PageNumber is the 1-based page to scroll to
	PageNumber int `json:"page_number" minimum:"1" doc:"1-based page number to scroll to"`

	// Source identifies who initiated the navigation
	Source string `json:"source,omitempty" enum:"thumbnail-rail,external-navigation,restore" doc:"Origin of the navigation"`

	// Behavior selects the scroll animation
	Behavior string `json:"behavior,omitempty" enum:"smooth,immediate" doc:"Scroll animation behavior"`

	// AlignToTop aligns the page top with a small margin instead of centering
	AlignToTop bool `json:"align_to_top,omitempty" doc:"Align page top with margin instead of centering"`

	// HighlightThumbnail controls the transient marker on the companion thumbnail
	HighlightThumbnail *bool `json:"highlight_thumbnail,omitempty" doc:"Apply the transient marker to the companion thumbnail"`

	// ForceElementRefresh bypasses the element cache for this navigation
	ForceElementRefresh bool `json:"force_element_refresh,omitempty" doc:"Bypass the element cache for this lookup"`
}

// ApplyDefaults fills in default values for optional fields
func (r *ScrollToPageRequest) ApplyDefaults() {
	if r.Source == "" {
		r.Source = "external-navigation"
	}
	if r.Behavior == "" {
		r.Behavior = "smooth"
	}
	if r.HighlightThumbnail == nil {
		v := true
		r.HighlightThumbnail = &v
	}
}

// SavePositionRequest is the request body for saving a scroll position
type SavePositionRequest struct {
	// Offset is the viewport scroll offset in pixels
	Offset float64 `json:"offset" doc:"Viewport scroll offset in pixels"`
}

// ScrollEventRequest reports a viewport scroll to the engine
type ScrollEventRequest struct {
	// Offset is the viewport scroll offset in pixels
	Offset float64 `json:"offset" doc:"Viewport scroll offset in pixels"`
}
