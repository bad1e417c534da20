// ABOUTME: Response DTOs for viewport operations
// ABOUTME: Defines response structures returned by the viewport endpoints

package responses

// ScrollToPageResponse reports the outcome of a programmatic navigation
type ScrollToPageResponse struct {
	// Success is false when the target element could not be located
	Success bool `json:"success" doc:"Whether the scroll was performed"`

	// Key is the document that was navigated
	Key string `json:"key" doc:"Document key"`

	// PageNumber is the requested page
	PageNumber int `json:"page_number" doc:"Requested 1-based page number"`
}

// PositionResponse carries a saved scroll position
type PositionResponse struct {
	// Key is the document the position belongs to
	Key string `json:"key" doc:"Document key"`

	// Offset is the saved viewport scroll offset in pixels
	Offset float64 `json:"offset" doc:"Saved scroll offset in pixels"`
}

// RestoreResponse reports the outcome of a position restore
type RestoreResponse struct {
	// Restored is false when no position was saved for the document
	Restored bool `json:"restored" doc:"Whether a saved position was restored"`

	// Key is the document that was restored
	Key string `json:"key" doc:"Document key"`
}

// VisibilityResponse identifies the most visible page in the viewport
type VisibilityResponse struct {
	// Key is the winning document
	Key string `json:"key" doc:"Document key of the most visible page"`

	// PageNumber is the winning page
	PageNumber int `json:"page_number" doc:"1-based page number of the most visible page"`

	// VisibilityRatio is the winner's visible fraction, 0 to 1
	VisibilityRatio float64 `json:"visibility_ratio" doc:"Visible fraction of the winning page"`
}

// CurrentPageResponse carries the engine's committed current page
type CurrentPageResponse struct {
	// Known is false before any page has been committed
	Known bool `json:"known" doc:"Whether a current page has been committed"`

	// Key is the current document, empty when unknown
	Key string `json:"key,omitempty" doc:"Current document key"`

	// PageNumber is the current page, 0 when unknown
	PageNumber int `json:"page_number,omitempty" doc:"Current 1-based page number"`
}

// ScrollEventResponse acknowledges a reported scroll event
type ScrollEventResponse struct {
	// Accepted is true when the event entered the debounce pipeline
	Accepted bool `json:"accepted" doc:"Whether the event was accepted"`
}
