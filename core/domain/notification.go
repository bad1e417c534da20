// ABOUTME: Notification payloads broadcast to decoupled UI consumers
// ABOUTME: Defines the source vocabulary used for echo suppression

package domain

// Source identifies which surface triggered a navigation. Listeners whose
// identifier equals the notification source are skipped, so a surface never
// reacts to its own echo.
type Source string

const (
	// SourceViewportScroll marks changes detected from raw user scrolling.
	SourceViewportScroll Source = "viewport-scroll"

	// SourceThumbnailRail marks navigation initiated from the thumbnail rail.
	SourceThumbnailRail Source = "thumbnail-rail"

	// SourceExternalNavigation marks navigation from outside the viewer,
	// such as a search result or a deep link.
	SourceExternalNavigation Source = "external-navigation"

	// SourceRestore marks positions re-applied when a document becomes
	// current again.
	SourceRestore Source = "restore"
)

// PageChange is broadcast whenever the current (document, page) pair changes.
type PageChange struct {
	Key          DocumentKey `json:"documentKey"`
	PageNumber   int         `json:"pageNumber"`
	Source       Source      `json:"source"`
	ScrollOffset float64     `json:"scrollOffset"`
}

// ScrollCompletion is broadcast when a programmatic scroll finishes,
// including the degraded path where the target element could not be found.
type ScrollCompletion struct {
	Key        DocumentKey `json:"documentKey"`
	PageNumber int         `json:"pageNumber"`
	Source     Source      `json:"source"`
	Success    bool        `json:"success"`
}
