// ABOUTME: Cached element lookup keyed by (documentKey, pageNumber)
// ABOUTME: TTL expiry plus one-shot structural-mutation invalidation

package locator

import (
	"fmt"
	"strings"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"docview-engine/core/domain"
	"docview-engine/core/interfaces"
)

// DefaultTTL is the wall-clock lifetime of a cache entry regardless of use.
const DefaultTTL = 2 * time.Second

// Locator resolves page and thumbnail elements through the provider and
// caches the results. Entries expire on a fixed TTL and are dropped
// immediately when the provider reports a structural mutation of the
// document's subtree. Absence is never an error; callers degrade.
type Locator struct {
	provider interfaces.ViewportElementProvider
	logger   interfaces.Logger
	cache    *gocache.Cache

	// armed tracks which documents currently have a live structure watch.
	// A watch fires at most once; the locator re-arms on the next lookup.
	mu    sync.Mutex
	armed map[domain.DocumentKey]bool
}

// New creates a locator with the given entry TTL. A ttl of 0 uses
// DefaultTTL.
func New(provider interfaces.ViewportElementProvider, logger interfaces.Logger, ttl time.Duration) *Locator {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Locator{
		provider: provider,
		logger:   logger,
		cache:    gocache.New(ttl, ttl),
		armed:    make(map[domain.DocumentKey]bool),
	}
}

// FindPage returns the element for (document, page). forceRefresh bypasses
// the cache. The bool is false when the element cannot be located.
func (l *Locator) FindPage(key domain.DocumentKey, pageNumber int, forceRefresh bool) (domain.ElementRef, bool) {
	return l.find("page", key, pageNumber, forceRefresh, l.provider.LocatePage)
}

// FindThumbnail returns the companion thumbnail element for
// (document, page). forceRefresh bypasses the cache.
func (l *Locator) FindThumbnail(key domain.DocumentKey, pageNumber int, forceRefresh bool) (domain.ElementRef, bool) {
	return l.find("thumb", key, pageNumber, forceRefresh, l.provider.LocateThumbnail)
}

func (l *Locator) find(kind string, key domain.DocumentKey, pageNumber int, forceRefresh bool,
	locate func(domain.DocumentKey, int) (domain.ElementRef, bool)) (domain.ElementRef, bool) {

	if pageNumber < 1 || key == "" {
		return domain.ElementRef{}, false
	}

	l.armWatch(key)

	cacheKey := entryKey(kind, key, pageNumber)
	if !forceRefresh {
		if cached, ok := l.cache.Get(cacheKey); ok {
			return cached.(domain.ElementRef), true
		}
	}

	ref, ok := locate(key, pageNumber)
	if !ok {
		if l.logger != nil {
			l.logger.Debug("element lookup miss", map[string]interface{}{
				"kind":        kind,
				"documentKey": string(key),
				"pageNumber":  pageNumber,
			})
		}
		return domain.ElementRef{}, false
	}

	l.cache.Set(cacheKey, ref, gocache.DefaultExpiration)
	return ref, true
}

// armWatch installs a one-shot structure watch for key if none is live.
func (l *Locator) armWatch(key domain.DocumentKey) {
	l.mu.Lock()
	if l.armed[key] {
		l.mu.Unlock()
		return
	}
	l.armed[key] = true
	l.mu.Unlock()

	ok := l.provider.WatchStructure(key, func() {
		l.mu.Lock()
		l.armed[key] = false
		l.mu.Unlock()
		l.InvalidateDocument(key)
	})
	if !ok {
		l.mu.Lock()
		l.armed[key] = false
		l.mu.Unlock()
	}
}

// InvalidateDocument drops every cached entry for one document.
func (l *Locator) InvalidateDocument(key domain.DocumentKey) {
	pagePrefix := entryPrefix("page", key)
	thumbPrefix := entryPrefix("thumb", key)
	for cacheKey := range l.cache.Items() {
		if strings.HasPrefix(cacheKey, pagePrefix) || strings.HasPrefix(cacheKey, thumbPrefix) {
			l.cache.Delete(cacheKey)
		}
	}
}

// Clear drops the entire cache and every watch arm.
func (l *Locator) Clear() {
	l.cache.Flush()
	l.mu.Lock()
	l.armed = make(map[domain.DocumentKey]bool)
	l.mu.Unlock()
}

func entryKey(kind string, key domain.DocumentKey, pageNumber int) string {
	return fmt.Sprintf("%s:%s:%d", kind, key, pageNumber)
}

func entryPrefix(kind string, key domain.DocumentKey) string {
	return fmt.Sprintf("%s:%s:", kind, key)
}
