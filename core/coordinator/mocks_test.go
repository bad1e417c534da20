package coordinator

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"docview-engine/core/domain"
)

// scrollCall records one provider scroll effect.
type scrollCall struct {
	offset   float64
	behavior domain.ScrollBehavior
}

// markerCall records one provider marker effect.
type markerCall struct {
	id     string
	active bool
}

// scriptedProvider is a full fake host for coordinator tests.
type scriptedProvider struct {
	mu         sync.Mutex
	metrics    domain.ViewportMetrics
	hasMetrics bool
	order      []domain.DocumentKey
	docs       map[domain.DocumentKey]domain.Rect
	pages      map[string]domain.Rect
	pageCounts map[domain.DocumentKey]int
	thumbs     map[string]bool

	scrolls      []scrollCall
	intoView     []domain.ElementRef
	markers      []markerCall
	watchTargets map[domain.DocumentKey]func()
}

func newScriptedProvider() *scriptedProvider {
	return &scriptedProvider{
		docs:         make(map[domain.DocumentKey]domain.Rect),
		pages:        make(map[string]domain.Rect),
		pageCounts:   make(map[domain.DocumentKey]int),
		thumbs:       make(map[string]bool),
		watchTargets: make(map[domain.DocumentKey]func()),
	}
}

func elemID(kind string, key domain.DocumentKey, page int) string {
	return fmt.Sprintf("%s-%s-%d", kind, key, page)
}

func (p *scriptedProvider) setViewport(m domain.ViewportMetrics) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.metrics = m
	p.hasMetrics = true
}

func (p *scriptedProvider) addDocument(key domain.DocumentKey, rect domain.Rect) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.order = append(p.order, key)
	p.docs[key] = rect
}

func (p *scriptedProvider) setPage(key domain.DocumentKey, page int, rect domain.Rect, withThumb bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pages[elemID("page", key, page)] = rect
	if page > p.pageCounts[key] {
		p.pageCounts[key] = page
	}
	if withThumb {
		p.thumbs[elemID("thumb", key, page)] = true
	}
}

func (p *scriptedProvider) lastScroll() (scrollCall, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.scrolls) == 0 {
		return scrollCall{}, false
	}
	return p.scrolls[len(p.scrolls)-1], true
}

func (p *scriptedProvider) markerHistory() []markerCall {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]markerCall, len(p.markers))
	copy(out, p.markers)
	return out
}

func (p *scriptedProvider) ViewportMetrics() (domain.ViewportMetrics, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.metrics, p.hasMetrics
}

func (p *scriptedProvider) DocumentKeys() []domain.DocumentKey {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]domain.DocumentKey, len(p.order))
	copy(out, p.order)
	return out
}

func (p *scriptedProvider) DocumentRect(key domain.DocumentKey) (domain.Rect, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	r, ok := p.docs[key]
	return r, ok
}

func (p *scriptedProvider) PageCount(key domain.DocumentKey) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pageCounts[key]
}

func (p *scriptedProvider) PageRect(key domain.DocumentKey, page int) (domain.Rect, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	r, ok := p.pages[elemID("page", key, page)]
	return r, ok
}

func (p *scriptedProvider) LocatePage(key domain.DocumentKey, page int) (domain.ElementRef, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	rect, ok := p.pages[elemID("page", key, page)]
	if !ok {
		return domain.ElementRef{}, false
	}
	return domain.ElementRef{ID: elemID("page", key, page), Key: key, Page: page, Rect: rect}, true
}

func (p *scriptedProvider) LocateThumbnail(key domain.DocumentKey, page int) (domain.ElementRef, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	id := elemID("thumb", key, page)
	if !p.thumbs[id] {
		return domain.ElementRef{}, false
	}
	return domain.ElementRef{ID: id, Key: key, Page: page}, true
}

func (p *scriptedProvider) ScrollTo(offset float64, behavior domain.ScrollBehavior) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.scrolls = append(p.scrolls, scrollCall{offset: offset, behavior: behavior})
	p.metrics.ScrollOffset = offset
}

func (p *scriptedProvider) ScrollIntoView(ref domain.ElementRef, _ domain.ScrollBehavior) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.intoView = append(p.intoView, ref)
}

func (p *scriptedProvider) SetMarker(ref domain.ElementRef, active bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.markers = append(p.markers, markerCall{id: ref.ID, active: active})
}

func (p *scriptedProvider) WatchStructure(key domain.DocumentKey, onChange func()) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.watchTargets[key] = onChange
	return true
}

// memoryPositions is an in-memory ScrollPositionStore for tests.
type memoryPositions struct {
	mu      sync.Mutex
	offsets map[domain.DocumentKey]float64
	saveErr error
}

func newMemoryPositions() *memoryPositions {
	return &memoryPositions{offsets: make(map[domain.DocumentKey]float64)}
}

func (s *memoryPositions) Save(_ context.Context, key domain.DocumentKey, offset float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	s.offsets[key] = offset
	return nil
}

func (s *memoryPositions) Get(_ context.Context, key domain.DocumentKey) (float64, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	offset, ok := s.offsets[key]
	return offset, ok, nil
}

func (s *memoryPositions) Delete(_ context.Context, key domain.DocumentKey) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.offsets, key)
	return nil
}

func (s *memoryPositions) Close() error { return nil }

func (s *memoryPositions) keys() []domain.DocumentKey {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.DocumentKey, 0, len(s.offsets))
	for k := range s.offsets {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
