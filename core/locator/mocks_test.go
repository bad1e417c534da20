package locator

import (
	"fmt"

	"docview-engine/core/domain"
)

// fakeProvider is a minimal ViewportElementProvider for locator tests.
type fakeProvider struct {
	pages      map[string]domain.ElementRef
	thumbs     map[string]domain.ElementRef
	pageCalls  int
	thumbCalls int

	watches map[domain.DocumentKey]func()
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{
		pages:   make(map[string]domain.ElementRef),
		thumbs:  make(map[string]domain.ElementRef),
		watches: make(map[domain.DocumentKey]func()),
	}
}

func refKey(key domain.DocumentKey, page int) string {
	return fmt.Sprintf("%s:%d", key, page)
}

func (p *fakeProvider) addPage(key domain.DocumentKey, page int) {
	p.pages[refKey(key, page)] = domain.ElementRef{ID: "page-" + refKey(key, page), Key: key, Page: page}
}

func (p *fakeProvider) addThumbnail(key domain.DocumentKey, page int) {
	p.thumbs[refKey(key, page)] = domain.ElementRef{ID: "thumb-" + refKey(key, page), Key: key, Page: page}
}

// fireStructureChange simulates a structural mutation of a document subtree.
func (p *fakeProvider) fireStructureChange(key domain.DocumentKey) {
	if fn, ok := p.watches[key]; ok {
		delete(p.watches, key)
		fn()
	}
}

func (p *fakeProvider) ViewportMetrics() (domain.ViewportMetrics, bool) {
	return domain.ViewportMetrics{}, false
}

func (p *fakeProvider) DocumentKeys() []domain.DocumentKey { return nil }

func (p *fakeProvider) DocumentRect(domain.DocumentKey) (domain.Rect, bool) {
	return domain.Rect{}, false
}

func (p *fakeProvider) PageCount(domain.DocumentKey) int { return 0 }

func (p *fakeProvider) PageRect(domain.DocumentKey, int) (domain.Rect, bool) {
	return domain.Rect{}, false
}

func (p *fakeProvider) LocatePage(key domain.DocumentKey, page int) (domain.ElementRef, bool) {
	p.pageCalls++
	ref, ok := p.pages[refKey(key, page)]
	return ref, ok
}

func (p *fakeProvider) LocateThumbnail(key domain.DocumentKey, page int) (domain.ElementRef, bool) {
	p.thumbCalls++
	ref, ok := p.thumbs[refKey(key, page)]
	return ref, ok
}

func (p *fakeProvider) ScrollTo(float64, domain.ScrollBehavior) {}

func (p *fakeProvider) ScrollIntoView(domain.ElementRef, domain.ScrollBehavior) {}

func (p *fakeProvider) SetMarker(domain.ElementRef, bool) {}

func (p *fakeProvider) WatchStructure(key domain.DocumentKey, onChange func()) bool {
	p.watches[key] = onChange
	return true
}
