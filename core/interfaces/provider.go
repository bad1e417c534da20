// ABOUTME: ViewportElementProvider abstracts the host UI's element tree
// ABOUTME: The engine only ever touches the host through this capability set

package interfaces

import (
	"docview-engine/core/domain"
)

// ViewportElementProvider is the engine's only window into the host UI.
// The rendering collaborator owns every element; the provider locates them,
// reports their geometry, and performs scroll and marker effects on the
// engine's behalf.
//
// Implementations must be safe for concurrent use: timer callbacks query
// geometry while the host pushes updates.
type ViewportElementProvider interface {
	// ViewportMetrics returns the scrollable region's current metrics.
	// The bool is false when no viewport is mounted yet.
	ViewportMetrics() (domain.ViewportMetrics, bool)

	// DocumentKeys lists every mounted document, in layout order.
	DocumentKeys() []domain.DocumentKey

	// DocumentRect returns the container rectangle for a document.
	DocumentRect(key domain.DocumentKey) (domain.Rect, bool)

	// PageCount returns the number of pages known for a document,
	// or 0 when the document is unknown.
	PageCount(key domain.DocumentKey) int

	// PageRect returns the rectangle of one page, 1-based.
	PageRect(key domain.DocumentKey, pageNumber int) (domain.Rect, bool)

	// LocatePage resolves the element for (document, page).
	LocatePage(key domain.DocumentKey, pageNumber int) (domain.ElementRef, bool)

	// LocateThumbnail resolves the companion thumbnail element for
	// (document, page).
	LocateThumbnail(key domain.DocumentKey, pageNumber int) (domain.ElementRef, bool)

	// ScrollTo scrolls the viewport to the given offset.
	ScrollTo(offset float64, behavior domain.ScrollBehavior)

	// ScrollIntoView brings a non-page element (thumbnail) into view
	// within its own rail.
	ScrollIntoView(ref domain.ElementRef, behavior domain.ScrollBehavior)

	// SetMarker applies or removes the transient "active" visual marker
	// on an element.
	SetMarker(ref domain.ElementRef, active bool)

	// WatchStructure arms a one-shot watch on a document's subtree.
	// onChange fires at most once, on the first structural mutation, and
	// the watch then disarms; callers re-arm lazily on their next lookup.
	// Returns false when the document is unknown.
	WatchStructure(key domain.DocumentKey, onChange func()) bool
}
