// ABOUTME: Snapshot-backed ViewportElementProvider fed by host geometry pushes
// ABOUTME: Scroll and marker effects flow back to the host through an effect sink

package snapshot

import (
	"fmt"
	"sync"

	"docview-engine/core/domain"
)

// Effect kinds emitted toward the host UI.
const (
	EffectScroll         = "scroll"
	EffectScrollIntoView = "scrollIntoView"
	EffectMarker         = "marker"
)

// Effect is a UI side effect the engine wants the host to perform.
type Effect struct {
	Type     string                `json:"type"`
	Offset   float64               `json:"offset,omitempty"`
	Behavior domain.ScrollBehavior `json:"behavior,omitempty"`
	Element  domain.ElementRef     `json:"element,omitempty"`
	Active   bool                  `json:"active,omitempty"`
}

// DocumentSnapshot is one document's geometry as the host sees it.
// Rects are viewport-relative, pages are in reading order starting at page 1.
type DocumentSnapshot struct {
	Key        domain.DocumentKey `json:"key"`
	Rect       domain.Rect        `json:"rect"`
	Pages      []domain.Rect      `json:"pages"`
	Thumbnails []domain.Rect      `json:"thumbnails,omitempty"`
}

// Snapshot is a full geometry push from the host.
type Snapshot struct {
	Viewport  domain.ViewportMetrics `json:"viewport"`
	Documents []DocumentSnapshot     `json:"documents"`
}

type documentState struct {
	rect       domain.Rect
	pages      []domain.Rect
	thumbnails []domain.Rect
}

// Provider implements ViewportElementProvider on top of pushed snapshots.
// The host streams Snapshot values in; the engine's queries read the latest
// one. Effects the engine performs are forwarded to the sink so the host
// can mirror them in its real UI.
type Provider struct {
	mu        sync.RWMutex
	mounted   bool
	metrics   domain.ViewportMetrics
	order     []domain.DocumentKey
	docs      map[domain.DocumentKey]*documentState
	watches   map[domain.DocumentKey]func()
	sink      func(Effect)
	sinkOwner string
}

// NewProvider returns an empty provider with no viewport mounted.
func NewProvider() *Provider {
	return &Provider{
		docs:    make(map[domain.DocumentKey]*documentState),
		watches: make(map[domain.DocumentKey]func()),
	}
}

// SetEffectSink installs the callback that receives UI effects, tagged
// with the owner installing it. A later install displaces the current one.
func (p *Provider) SetEffectSink(owner string, sink func(Effect)) {
	p.mu.Lock()
	p.sink = sink
	p.sinkOwner = owner
	p.mu.Unlock()
}

// ClearEffectSink removes the sink only if owner still holds it. A session
// tearing down after its replacement installed a sink must not take the
// replacement's sink with it.
func (p *Provider) ClearEffectSink(owner string) {
	p.mu.Lock()
	if p.sinkOwner == owner {
		p.sink = nil
		p.sinkOwner = ""
	}
	p.mu.Unlock()
}

// Apply replaces the current geometry with a new snapshot. Documents whose
// page count changed, or that appeared or vanished, count as structurally
// changed; any armed watch on such a document fires once and disarms.
func (p *Provider) Apply(snap Snapshot) {
	p.mu.Lock()

	changed := make([]func(), 0)
	next := make(map[domain.DocumentKey]*documentState, len(snap.Documents))
	order := make([]domain.DocumentKey, 0, len(snap.Documents))

	for _, doc := range snap.Documents {
		next[doc.Key] = &documentState{
			rect:       doc.Rect,
			pages:      append([]domain.Rect(nil), doc.Pages...),
			thumbnails: append([]domain.Rect(nil), doc.Thumbnails...),
		}
		order = append(order, doc.Key)

		prev, existed := p.docs[doc.Key]
		if existed && len(prev.pages) == len(doc.Pages) {
			continue
		}
		if fn, armed := p.watches[doc.Key]; armed {
			changed = append(changed, fn)
			delete(p.watches, doc.Key)
		}
	}

	for key := range p.docs {
		if _, still := next[key]; still {
			continue
		}
		if fn, armed := p.watches[key]; armed {
			changed = append(changed, fn)
			delete(p.watches, key)
		}
	}

	p.mounted = true
	p.metrics = snap.Viewport
	p.docs = next
	p.order = order
	p.mu.Unlock()

	for _, fn := range changed {
		fn()
	}
}

// ViewportMetrics returns the scrollable region's current metrics.
func (p *Provider) ViewportMetrics() (domain.ViewportMetrics, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.metrics, p.mounted
}

// DocumentKeys lists every mounted document, in layout order.
func (p *Provider) DocumentKeys() []domain.DocumentKey {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return append([]domain.DocumentKey(nil), p.order...)
}

// DocumentRect returns the container rectangle for a document.
func (p *Provider) DocumentRect(key domain.DocumentKey) (domain.Rect, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	doc, ok := p.docs[key]
	if !ok {
		return domain.Rect{}, false
	}
	return doc.rect, true
}

// PageCount returns the number of pages known for a document.
func (p *Provider) PageCount(key domain.DocumentKey) int {
	p.mu.RLock()
	defer p.mu.RUnlock()

	doc, ok := p.docs[key]
	if !ok {
		return 0
	}
	return len(doc.pages)
}

// PageRect returns the rectangle of one page, 1-based.
func (p *Provider) PageRect(key domain.DocumentKey, pageNumber int) (domain.Rect, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	doc, ok := p.docs[key]
	if !ok || pageNumber < 1 || pageNumber > len(doc.pages) {
		return domain.Rect{}, false
	}
	return doc.pages[pageNumber-1], true
}

// LocatePage resolves the element for (document, page).
func (p *Provider) LocatePage(key domain.DocumentKey, pageNumber int) (domain.ElementRef, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	doc, ok := p.docs[key]
	if !ok || pageNumber < 1 || pageNumber > len(doc.pages) {
		return domain.ElementRef{}, false
	}
	return domain.ElementRef{
		ID:   pageElementID(key, pageNumber),
		Key:  key,
		Page: pageNumber,
		Rect: doc.pages[pageNumber-1],
	}, true
}

// LocateThumbnail resolves the companion thumbnail element for
// (document, page). Hosts that render no thumbnail rail simply omit
// thumbnail rects from their snapshots.
func (p *Provider) LocateThumbnail(key domain.DocumentKey, pageNumber int) (domain.ElementRef, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	doc, ok := p.docs[key]
	if !ok || pageNumber < 1 || pageNumber > len(doc.thumbnails) {
		return domain.ElementRef{}, false
	}
	return domain.ElementRef{
		ID:   thumbnailElementID(key, pageNumber),
		Key:  key,
		Page: pageNumber,
		Rect: doc.thumbnails[pageNumber-1],
	}, true
}

// ScrollTo scrolls the viewport to the given offset. The local snapshot is
// shifted to stay consistent until the host pushes fresh geometry.
func (p *Provider) ScrollTo(offset float64, behavior domain.ScrollBehavior) {
	p.mu.Lock()

	delta := offset - p.metrics.ScrollOffset
	p.metrics.ScrollOffset = offset
	for _, doc := range p.docs {
		doc.rect.Top -= delta
		for i := range doc.pages {
			doc.pages[i].Top -= delta
		}
	}

	sink := p.sink
	p.mu.Unlock()

	if sink != nil {
		sink(Effect{Type: EffectScroll, Offset: offset, Behavior: behavior})
	}
}

// ScrollIntoView asks the host to bring a thumbnail into view in its rail.
func (p *Provider) ScrollIntoView(ref domain.ElementRef, behavior domain.ScrollBehavior) {
	p.mu.RLock()
	sink := p.sink
	p.mu.RUnlock()

	if sink != nil {
		sink(Effect{Type: EffectScrollIntoView, Element: ref, Behavior: behavior})
	}
}

// SetMarker asks the host to apply or remove the active marker on an element.
func (p *Provider) SetMarker(ref domain.ElementRef, active bool) {
	p.mu.RLock()
	sink := p.sink
	p.mu.RUnlock()

	if sink != nil {
		sink(Effect{Type: EffectMarker, Element: ref, Active: active})
	}
}

// WatchStructure arms a one-shot watch on a document. The watch fires on the
// next snapshot whose page count for that document differs, then disarms.
func (p *Provider) WatchStructure(key domain.DocumentKey, onChange func()) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.docs[key]; !ok {
		return false
	}
	p.watches[key] = onChange
	return true
}

func pageElementID(key domain.DocumentKey, pageNumber int) string {
	return fmt.Sprintf("page-%s-%d", key, pageNumber)
}

func thumbnailElementID(key domain.DocumentKey, pageNumber int) string {
	return fmt.Sprintf("thumb-%s-%d", key, pageNumber)
}
