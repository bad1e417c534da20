// ABOUTME: Visibility scoring over page rectangles inside the viewport
// ABOUTME: Picks the winning (document, page) pair by center-weighted area

package visibility

import (
	"math"
	"sync"
	"time"

	"docview-engine/core/domain"
	"docview-engine/core/interfaces"
)

// Config tunes the analyzer's rescore throttling.
type Config struct {
	// RescoreInterval is the minimum spacing between re-scoring the same
	// document's pages. Zero disables throttling.
	RescoreInterval time.Duration

	// DominantRatio is the document visibility ratio above which a
	// document is always rescored regardless of RescoreInterval.
	DominantRatio float64
}

// DefaultConfig matches the debounce window and the 0.8 dominance cutoff.
func DefaultConfig() Config {
	return Config{
		RescoreInterval: 300 * time.Millisecond,
		DominantRatio:   0.8,
	}
}

// candidate is one document's best page from a scoring pass.
type candidate struct {
	key          domain.DocumentKey
	pageNumber   int
	ratio        float64
	adjustedArea float64
	valid        bool
}

// Analyzer computes which page is most visible in the viewport. The scan is
// throttled per document: a document whose pages were scored within
// RescoreInterval reuses its cached result unless its own visibility ratio
// exceeds DominantRatio. This keeps the scan cheap with many documents
// mounted but responsive when one dominates the viewport.
type Analyzer struct {
	provider interfaces.ViewportElementProvider
	clock    interfaces.Clock
	cfg      Config

	mu         sync.Mutex
	lastScored map[domain.DocumentKey]time.Time
	lastBest   map[domain.DocumentKey]candidate
}

// New creates an analyzer. clock must not be nil.
func New(provider interfaces.ViewportElementProvider, clock interfaces.Clock, cfg Config) *Analyzer {
	return &Analyzer{
		provider:   provider,
		clock:      clock,
		cfg:        cfg,
		lastScored: make(map[domain.DocumentKey]time.Time),
		lastBest:   make(map[domain.DocumentKey]candidate),
	}
}

// FindMostVisiblePage scores every page of every document intersecting the
// viewport and returns the winner. A page qualifies only when its
// visibility ratio meets threshold. Ties on adjusted area break to the
// smaller page number, then to currentKey (stability preference). The bool
// is false when no page qualifies.
func (a *Analyzer) FindMostVisiblePage(threshold float64, currentKey domain.DocumentKey) (domain.VisibilityReport, bool) {
	metrics, ok := a.provider.ViewportMetrics()
	if !ok || metrics.Height <= 0 {
		return domain.VisibilityReport{}, false
	}

	now := a.clock.Now()
	winner := candidate{}

	a.mu.Lock()
	defer a.mu.Unlock()

	for _, key := range a.provider.DocumentKeys() {
		docRect, ok := a.provider.DocumentRect(key)
		if !ok {
			continue
		}

		docRatio := visibilityRatio(docRect, metrics)
		if docRatio <= 0 {
			// Off-screen: whatever was cached no longer applies, and the
			// next sighting must rescore rather than reuse the empty slot.
			delete(a.lastBest, key)
			delete(a.lastScored, key)
			continue
		}

		var best candidate
		if a.shouldReuse(key, docRatio, now) {
			best = a.lastBest[key]
		} else {
			best = a.scoreDocument(key, threshold, metrics)
			a.lastScored[key] = now
			a.lastBest[key] = best
		}

		if !best.valid {
			continue
		}
		if beats(best, winner, currentKey) {
			winner = best
		}
	}

	if !winner.valid {
		return domain.VisibilityReport{}, false
	}
	return domain.VisibilityReport{
		Key:             winner.key,
		PageNumber:      winner.pageNumber,
		VisibilityRatio: winner.ratio,
	}, true
}

// shouldReuse reports whether the cached candidate for key is still fresh
// enough to skip a full page scan.
func (a *Analyzer) shouldReuse(key domain.DocumentKey, docRatio float64, now time.Time) bool {
	if a.cfg.RescoreInterval <= 0 {
		return false
	}
	if docRatio > a.cfg.DominantRatio {
		return false
	}
	last, ok := a.lastScored[key]
	if !ok {
		return false
	}
	return now.Sub(last) < a.cfg.RescoreInterval
}

// scoreDocument finds the best qualifying page within one document.
func (a *Analyzer) scoreDocument(key domain.DocumentKey, threshold float64, metrics domain.ViewportMetrics) candidate {
	best := candidate{}
	count := a.provider.PageCount(key)
	for page := 1; page <= count; page++ {
		rect, ok := a.provider.PageRect(key, page)
		if !ok {
			continue
		}

		ratio := visibilityRatio(rect, metrics)
		if ratio < threshold {
			continue
		}

		visible := visibleHeight(rect, metrics)
		center := 1 - math.Abs(rect.CenterY()-metrics.CenterY())/metrics.Height
		if center < 0 {
			center = 0
		}
		area := visible * rect.Width * center

		c := candidate{key: key, pageNumber: page, ratio: ratio, adjustedArea: area, valid: true}
		if !best.valid || c.adjustedArea > best.adjustedArea ||
			(c.adjustedArea == best.adjustedArea && c.pageNumber < best.pageNumber) {
			best = c
		}
	}
	return best
}

// Reset drops all throttling state.
func (a *Analyzer) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.lastScored = make(map[domain.DocumentKey]time.Time)
	a.lastBest = make(map[domain.DocumentKey]candidate)
}

// visibleHeight is the overlap between a rectangle and the viewport.
func visibleHeight(r domain.Rect, m domain.ViewportMetrics) float64 {
	v := math.Min(r.Bottom(), m.Bottom()) - math.Max(r.Top, m.Top)
	if v < 0 {
		return 0
	}
	return v
}

// visibilityRatio is the visible fraction of a rectangle's height, always
// within [0, 1]. Malformed and zero-height rectangles score zero.
func visibilityRatio(r domain.Rect, m domain.ViewportMetrics) float64 {
	if r.Height <= 0 {
		return 0
	}
	ratio := visibleHeight(r, m) / r.Height
	if ratio < 0 {
		return 0
	}
	if ratio > 1 {
		return 1
	}
	return ratio
}

// beats reports whether c should replace w as the running winner.
func beats(c, w candidate, currentKey domain.DocumentKey) bool {
	if !w.valid {
		return true
	}
	if c.adjustedArea != w.adjustedArea {
		return c.adjustedArea > w.adjustedArea
	}
	if c.pageNumber != w.pageNumber {
		return c.pageNumber < w.pageNumber
	}
	return c.key == currentKey && w.key != currentKey
}
