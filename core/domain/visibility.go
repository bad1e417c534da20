// ABOUTME: Visibility report types produced by the visibility analyzer
// ABOUTME: One report describes the most visible (document, page) pair

package domain

// VisibilityReport is the result of one visibility analysis pass.
// Reports are recomputed on demand and never persisted.
type VisibilityReport struct {
	// Key identifies the winning document.
	Key DocumentKey `json:"documentKey"`

	// PageNumber is the winning page, 1-based.
	PageNumber int `json:"pageNumber"`

	// VisibilityRatio is the fraction of the page's height inside the
	// viewport, always within [0, 1].
	VisibilityRatio float64 `json:"visibilityRatio"`
}
