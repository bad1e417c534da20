package visibility

import (
	"fmt"
	"time"

	"docview-engine/core/domain"
	"docview-engine/core/interfaces"
)

// fakeClock is a manual clock for throttle tests.
type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

type noopTimer struct{}

func (noopTimer) Stop() bool { return false }

func (c *fakeClock) AfterFunc(time.Duration, func()) interfaces.Timer { return noopTimer{} }

// geometryProvider serves synthetic rectangles for analyzer tests.
type geometryProvider struct {
	metrics    domain.ViewportMetrics
	hasMetrics bool
	order      []domain.DocumentKey
	docs       map[domain.DocumentKey]domain.Rect
	pages      map[string]domain.Rect
	pageCounts map[domain.DocumentKey]int
	scans      map[domain.DocumentKey]int
}

func newGeometryProvider(metrics domain.ViewportMetrics) *geometryProvider {
	return &geometryProvider{
		metrics:    metrics,
		hasMetrics: true,
		docs:       make(map[domain.DocumentKey]domain.Rect),
		pages:      make(map[string]domain.Rect),
		pageCounts: make(map[domain.DocumentKey]int),
		scans:      make(map[domain.DocumentKey]int),
	}
}

func pageID(key domain.DocumentKey, page int) string {
	return fmt.Sprintf("%s:%d", key, page)
}

func (p *geometryProvider) addDocument(key domain.DocumentKey, rect domain.Rect) {
	p.order = append(p.order, key)
	p.docs[key] = rect
}

func (p *geometryProvider) setPage(key domain.DocumentKey, page int, rect domain.Rect) {
	p.pages[pageID(key, page)] = rect
	if page > p.pageCounts[key] {
		p.pageCounts[key] = page
	}
}

func (p *geometryProvider) ViewportMetrics() (domain.ViewportMetrics, bool) {
	return p.metrics, p.hasMetrics
}

func (p *geometryProvider) DocumentKeys() []domain.DocumentKey { return p.order }

func (p *geometryProvider) DocumentRect(key domain.DocumentKey) (domain.Rect, bool) {
	r, ok := p.docs[key]
	return r, ok
}

func (p *geometryProvider) PageCount(key domain.DocumentKey) int {
	p.scans[key]++
	return p.pageCounts[key]
}

func (p *geometryProvider) PageRect(key domain.DocumentKey, page int) (domain.Rect, bool) {
	r, ok := p.pages[pageID(key, page)]
	return r, ok
}

func (p *geometryProvider) LocatePage(domain.DocumentKey, int) (domain.ElementRef, bool) {
	return domain.ElementRef{}, false
}

func (p *geometryProvider) LocateThumbnail(domain.DocumentKey, int) (domain.ElementRef, bool) {
	return domain.ElementRef{}, false
}

func (p *geometryProvider) ScrollTo(float64, domain.ScrollBehavior) {}

func (p *geometryProvider) ScrollIntoView(domain.ElementRef, domain.ScrollBehavior) {}

func (p *geometryProvider) SetMarker(domain.ElementRef, bool) {}

func (p *geometryProvider) WatchStructure(domain.DocumentKey, func()) bool { return false }
