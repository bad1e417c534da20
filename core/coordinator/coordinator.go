// ABOUTME: ViewportCoordinator keeps one consistent notion of "where the user is"
// ABOUTME: Owns scroll memory, the programmatic flag, debounce and fan-out

package coordinator

import (
	"context"
	"sync"
	"time"

	"docview-engine/core/domain"
	"docview-engine/core/interfaces"
	"docview-engine/core/locator"
	"docview-engine/core/registry"
	"docview-engine/core/visibility"
)

// scrollState is the user-scroll arbitration state. The programmatic flag
// is orthogonal to it.
type scrollState int

const (
	stateIdle scrollState = iota
	stateUserScrolling
	stateSettling
)

// marker remembers the element currently carrying the transient "active"
// visual marker, with the timer that will clear it.
type marker struct {
	ref   domain.ElementRef
	set   bool
	timer interfaces.Timer
}

// Coordinator is the single long-lived service coordinating the shared
// viewport: which page of which document is current, per-document scroll
// memory, programmatic jump-to-page scrolling, and change fan-out.
//
// Create one per session with New and release it with Close. All methods
// are safe for concurrent use; the deferred work the coordinator schedules
// (debounce settles, flag resets, marker clears) runs through the injected
// Clock.
type Coordinator struct {
	deps     interfaces.Dependencies
	cfg      Config
	registry *registry.Registry
	locator  *locator.Locator
	analyzer *visibility.Analyzer

	mu           sync.Mutex
	closed       bool
	state        scrollState
	programmatic bool
	currentKey   domain.DocumentKey
	currentPage  int
	currentSince time.Time

	debounceTimer interfaces.Timer
	graceTimer    interfaces.Timer
	pageMarker    marker
	thumbMarker   marker
}

// New creates a coordinator. deps.Clock and deps.Provider must be set;
// deps.Logger and deps.Positions may be nil (logging and persistence are
// then skipped).
func New(deps interfaces.Dependencies, cfg Config) *Coordinator {
	cfg = cfg.withDefaults()
	return &Coordinator{
		deps:     deps,
		cfg:      cfg,
		registry: registry.New(deps.Logger),
		locator:  locator.New(deps.Provider, deps.Logger, cfg.CacheTTL),
		analyzer: visibility.New(deps.Provider, deps.Clock, visibility.Config{
			RescoreInterval: cfg.DebounceWindow,
			DominantRatio:   0.8,
		}),
	}
}

// SaveScrollPosition unconditionally overwrites the offset for a document.
// Negative offsets clamp to 0. Store failures are logged, never propagated.
func (c *Coordinator) SaveScrollPosition(key domain.DocumentKey, offset float64) {
	if key == "" {
		return
	}
	if offset < 0 {
		offset = 0
	}
	if c.deps.Positions == nil {
		return
	}
	if err := c.deps.Positions.Save(context.Background(), key, offset); err != nil {
		c.logError("failed to save scroll position", err, key)
	}
}

// GetSavedScrollPosition returns the remembered offset for a document.
// The bool is false when the document has never been scrolled.
func (c *Coordinator) GetSavedScrollPosition(key domain.DocumentKey) (float64, bool) {
	if c.deps.Positions == nil {
		return 0, false
	}
	offset, ok, err := c.deps.Positions.Get(context.Background(), key)
	if err != nil {
		c.logError("failed to read scroll position", err, key)
		return 0, false
	}
	return offset, ok
}

// SetProgrammaticScroll raises or clears the programmatic-scroll flag.
// While raised, raw scroll events are not treated as user navigation.
// Raising arms an auto-clear after the grace window, a safety valve
// against a caller forgetting to clear the flag.
func (c *Coordinator) SetProgrammaticScroll(active bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}

	if c.graceTimer != nil {
		c.graceTimer.Stop()
		c.graceTimer = nil
	}
	c.programmatic = active
	if active {
		// A programmatic move preempts any in-flight user scroll; a stale
		// settle would rebroadcast the pre-jump page as user navigation.
		if c.debounceTimer != nil {
			c.debounceTimer.Stop()
			c.debounceTimer = nil
		}
		c.state = stateIdle
		c.graceTimer = c.deps.Clock.AfterFunc(c.cfg.GraceWindow, func() {
			c.mu.Lock()
			c.programmatic = false
			c.graceTimer = nil
			c.mu.Unlock()
		})
	}
}

// IsProgrammaticScrollActive reports the flag state.
func (c *Coordinator) IsProgrammaticScrollActive() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.programmatic
}

// HandleScrollEvent receives one raw scroll event from the host. Events
// arriving while the programmatic flag is raised are the engine's own
// doing and are ignored. Each user event restarts the debounce window; the
// most-visible page is computed and broadcast only when events stop
// arriving for the full window.
func (c *Coordinator) HandleScrollEvent(offset float64) {
	c.mu.Lock()
	if c.closed || c.programmatic {
		c.mu.Unlock()
		return
	}
	c.state = stateUserScrolling
	if c.debounceTimer != nil {
		c.debounceTimer.Stop()
	}
	c.debounceTimer = c.deps.Clock.AfterFunc(c.cfg.DebounceWindow, c.settle)
	current := c.currentKey
	c.mu.Unlock()

	if current != "" {
		c.SaveScrollPosition(current, offset)
	}
}

// settle runs when the debounce window elapses with no further scrolling.
func (c *Coordinator) settle() {
	c.mu.Lock()
	if c.closed || c.programmatic {
		c.mu.Unlock()
		return
	}
	c.state = stateSettling
	c.debounceTimer = nil
	current := c.currentKey
	c.mu.Unlock()

	report, found := c.analyzer.FindMostVisiblePage(c.cfg.VisibilityThreshold, current)

	c.mu.Lock()
	c.state = stateIdle
	if !found {
		c.mu.Unlock()
		return
	}

	if c.cfg.MinDwell > 0 && c.currentKey != "" && report.Key != c.currentKey &&
		c.deps.Clock.Now().Sub(c.currentSince) < c.cfg.MinDwell {
		// Too soon to auto-switch documents; keep the current one.
		c.mu.Unlock()
		c.saveViewportOffset(current)
		return
	}

	changed := report.Key != c.currentKey || report.PageNumber != c.currentPage
	if report.Key != c.currentKey {
		c.currentSince = c.deps.Clock.Now()
	}
	c.currentKey = report.Key
	c.currentPage = report.PageNumber
	c.mu.Unlock()

	offset := c.saveViewportOffset(report.Key)
	if changed {
		c.registry.Notify(registry.Event{PageChange: &domain.PageChange{
			Key:          report.Key,
			PageNumber:   report.PageNumber,
			Source:       domain.SourceViewportScroll,
			ScrollOffset: offset,
		}})
	}
}

// saveViewportOffset records the viewport's current offset under key and
// returns it.
func (c *Coordinator) saveViewportOffset(key domain.DocumentKey) float64 {
	metrics, ok := c.deps.Provider.ViewportMetrics()
	if !ok {
		return 0
	}
	c.SaveScrollPosition(key, metrics.ScrollOffset)
	return metrics.ScrollOffset
}

// ScrollToPage scrolls the viewport so the requested page is visible,
// marks the page (and optionally its thumbnail), and notifies listeners
// other than the one matching source. A missing element degrades to a
// logged no-op with a failed completion broadcast; the method never
// panics and never returns an error.
func (c *Coordinator) ScrollToPage(pageNumber int, key domain.DocumentKey, source domain.Source, opts *domain.ScrollOptions) bool {
	options := domain.DefaultScrollOptions()
	if opts != nil {
		options = *opts
	}

	c.SetProgrammaticScroll(true)

	ref, ok := c.locator.FindPage(key, pageNumber, options.ForceElementRefresh)
	if !ok {
		c.logWarn("scroll target not found", key, pageNumber)
		c.notifyCompletion(key, pageNumber, source, false)
		return false
	}

	metrics, ok := c.deps.Provider.ViewportMetrics()
	if !ok {
		c.logWarn("viewport not mounted", key, pageNumber)
		c.notifyCompletion(key, pageNumber, source, false)
		return false
	}

	target := c.targetOffset(metrics, ref.Rect, options.AlignToTop)
	c.deps.Provider.ScrollTo(target, options.Behavior)
	c.SaveScrollPosition(key, target)
	c.mark(&c.pageMarker, ref)

	if options.HighlightThumbnail {
		if thumb, ok := c.locator.FindThumbnail(key, pageNumber, options.ForceElementRefresh); ok {
			c.deps.Provider.ScrollIntoView(thumb, options.Behavior)
			c.mark(&c.thumbMarker, thumb)
		}
	}

	c.mu.Lock()
	if key != c.currentKey {
		c.currentSince = c.deps.Clock.Now()
	}
	c.currentKey = key
	c.currentPage = pageNumber
	c.mu.Unlock()

	c.registry.Notify(registry.Event{PageChange: &domain.PageChange{
		Key:          key,
		PageNumber:   pageNumber,
		Source:       source,
		ScrollOffset: target,
	}})
	c.notifyCompletion(key, pageNumber, source, true)
	return true
}

// targetOffset applies the geometry rule for programmatic scrolls, clamped
// to ≥ 0.
func (c *Coordinator) targetOffset(m domain.ViewportMetrics, page domain.Rect, alignToTop bool) float64 {
	var target float64
	if alignToTop {
		target = m.ScrollOffset + (page.Top - m.Top) - m.Height*c.cfg.TopMarginPercent/100
	} else {
		target = m.ScrollOffset + (page.Top - m.Top) - m.Height/2 + page.Height/2
	}
	if target < 0 {
		target = 0
	}
	return target
}

// mark moves the transient "active" marker to ref, clearing any previous
// marker and replacing its clear timer.
func (c *Coordinator) mark(m *marker, ref domain.ElementRef) {
	c.mu.Lock()
	if m.timer != nil {
		m.timer.Stop()
	}
	if m.set {
		c.deps.Provider.SetMarker(m.ref, false)
	}
	m.ref = ref
	m.set = true
	c.deps.Provider.SetMarker(ref, true)
	m.timer = c.deps.Clock.AfterFunc(c.cfg.HighlightWindow, func() {
		c.mu.Lock()
		if m.set && m.ref == ref {
			m.set = false
			m.timer = nil
			c.deps.Provider.SetMarker(ref, false)
		}
		c.mu.Unlock()
	})
	c.mu.Unlock()
}

// RestorePosition re-applies a document's saved offset as a programmatic
// scroll, used when the document becomes current again. Returns false when
// no position was ever saved.
func (c *Coordinator) RestorePosition(key domain.DocumentKey) bool {
	offset, ok := c.GetSavedScrollPosition(key)
	if !ok {
		return false
	}
	c.SetProgrammaticScroll(true)
	c.deps.Provider.ScrollTo(offset, domain.ScrollImmediate)
	return true
}

// FindMostVisiblePage delegates to the visibility analyzer. A threshold
// ≤ 0 uses the configured default.
func (c *Coordinator) FindMostVisiblePage(threshold float64) (domain.VisibilityReport, bool) {
	if threshold <= 0 {
		threshold = c.cfg.VisibilityThreshold
	}
	c.mu.Lock()
	current := c.currentKey
	c.mu.Unlock()
	return c.analyzer.FindMostVisiblePage(threshold, current)
}

// CurrentPage returns the (document, page) pair the coordinator currently
// considers most visible. The bool is false before the first settle or
// programmatic scroll.
func (c *Coordinator) CurrentPage() (domain.DocumentKey, int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.currentKey, c.currentPage, c.currentKey != ""
}

// AddListener registers a callback for change notifications under key.
// Use domain.AllDocuments to receive events for every document.
// Re-registering the same identifier under the same key replaces the
// callback instead of duplicating it.
func (c *Coordinator) AddListener(identifier string, key domain.DocumentKey, fn registry.ListenerFunc) {
	c.registry.Add(identifier, key, fn)
}

// RemoveListener removes the registration for (key, identifier).
func (c *Coordinator) RemoveListener(identifier string, key domain.DocumentKey) {
	c.registry.Remove(identifier, key)
}

// SetPageCount records that a document's page count changed. Cached
// elements for that document are dropped; the next lookup rebuilds them.
func (c *Coordinator) SetPageCount(key domain.DocumentKey, count int) {
	c.locator.InvalidateDocument(key)
	if c.deps.Logger != nil {
		c.deps.Logger.Debug("page count updated", map[string]interface{}{
			"documentKey": string(key),
			"pageCount":   count,
		})
	}
}

// Close disposes the coordinator: every pending timer is cancelled, the
// element cache and analyzer state are cleared, and all listeners are
// dropped. The coordinator must not be used afterwards.
func (c *Coordinator) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	for _, t := range []interfaces.Timer{c.debounceTimer, c.graceTimer, c.pageMarker.timer, c.thumbMarker.timer} {
		if t != nil {
			t.Stop()
		}
	}
	c.debounceTimer = nil
	c.graceTimer = nil
	c.pageMarker = marker{}
	c.thumbMarker = marker{}
	c.programmatic = false
	c.state = stateIdle
	c.mu.Unlock()

	c.registry.Clear()
	c.locator.Clear()
	c.analyzer.Reset()
}

// notifyCompletion broadcasts a scroll-completion event.
func (c *Coordinator) notifyCompletion(key domain.DocumentKey, pageNumber int, source domain.Source, success bool) {
	c.registry.Notify(registry.Event{Completion: &domain.ScrollCompletion{
		Key:        key,
		PageNumber: pageNumber,
		Source:     source,
		Success:    success,
	}})
}

func (c *Coordinator) logWarn(msg string, key domain.DocumentKey, pageNumber int) {
	if c.deps.Logger == nil {
		return
	}
	c.deps.Logger.Warn(msg, map[string]interface{}{
		"documentKey": string(key),
		"pageNumber":  pageNumber,
	})
}

func (c *Coordinator) logError(msg string, err error, key domain.DocumentKey) {
	if c.deps.Logger == nil {
		return
	}
	c.deps.Logger.Error(msg, map[string]interface{}{
		"documentKey": string(key),
		"error":       err.Error(),
	})
}
