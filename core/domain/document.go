// ABOUTME: Core domain types for documents, pages and viewport geometry
// ABOUTME: Defines the identifiers and rectangles the engine reasons about

package domain

// DocumentKey is the stable, opaque identifier of one open document.
// It is derived from the document's immutable identity, never from its
// position in any list.
type DocumentKey string

// AllDocuments is the reserved subscription key matching every document.
const AllDocuments DocumentKey = "*"

// Rect is an axis-aligned rectangle in viewport-local coordinates.
// Top is relative to the viewport's visible top edge.
type Rect struct {
	Top    float64 `json:"top"`
	Left   float64 `json:"left"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Bottom returns the rectangle's bottom edge coordinate.
func (r Rect) Bottom() float64 {
	return r.Top + r.Height
}

// CenterY returns the rectangle's vertical center coordinate.
func (r Rect) CenterY() float64 {
	return r.Top + r.Height/2
}

// ViewportMetrics describes the single scrollable region at one instant.
type ViewportMetrics struct {
	// ScrollOffset is the current scroll position of the viewport.
	ScrollOffset float64 `json:"scrollOffset"`

	// Top is the viewport's top edge in viewport-local coordinates.
	Top float64 `json:"top"`

	// Height is the visible height of the viewport.
	Height float64 `json:"height"`
}

// Bottom returns the viewport's bottom edge coordinate.
func (m ViewportMetrics) Bottom() float64 {
	return m.Top + m.Height
}

// CenterY returns the viewport's vertical center coordinate.
func (m ViewportMetrics) CenterY() float64 {
	return m.Top + m.Height/2
}

// ElementRef is a weak reference to an element owned by the rendering
// collaborator. The engine looks elements up and asks the provider to act
// on them; it never owns or destroys them.
type ElementRef struct {
	// ID is the provider-side handle for the element.
	ID string `json:"id"`

	// Key is the document the element belongs to.
	Key DocumentKey `json:"documentKey"`

	// Page is the 1-based page number, or 0 for non-page elements.
	Page int `json:"page"`

	// Rect is the element's geometry at lookup time.
	Rect Rect `json:"rect"`
}
