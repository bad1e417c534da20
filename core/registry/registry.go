// ABOUTME: Listener registry for page-change and scroll-completion fan-out
// ABOUTME: Ordered, panic-isolated publish/subscribe keyed by documentKey

package registry

import (
	"sync"

	"docview-engine/core/domain"
	"docview-engine/core/interfaces"
)

// Event is the envelope delivered to listeners. Exactly one of the two
// payload fields is set.
type Event struct {
	PageChange *domain.PageChange
	Completion *domain.ScrollCompletion
}

// Key returns the document the event concerns.
func (e Event) Key() domain.DocumentKey {
	if e.PageChange != nil {
		return e.PageChange.Key
	}
	if e.Completion != nil {
		return e.Completion.Key
	}
	return ""
}

// Source returns the surface that triggered the event.
func (e Event) Source() domain.Source {
	if e.PageChange != nil {
		return e.PageChange.Source
	}
	if e.Completion != nil {
		return e.Completion.Source
	}
	return ""
}

// ListenerFunc receives broadcast events. A listener must not assume it runs
// on any particular goroutine.
type ListenerFunc func(Event)

// registration pairs a caller-supplied identifier with its callback.
type registration struct {
	identifier string
	fn         ListenerFunc
}

// Registry fans events out to listeners registered under a documentKey or
// under domain.AllDocuments. At most one registration exists per
// (key, identifier) pair: re-subscribing with the same identifier replaces
// the callback in place, keeping its original order slot.
type Registry struct {
	mu        sync.Mutex
	listeners map[domain.DocumentKey][]registration
	logger    interfaces.Logger
}

// New creates an empty registry. logger may be nil.
func New(logger interfaces.Logger) *Registry {
	return &Registry{
		listeners: make(map[domain.DocumentKey][]registration),
		logger:    logger,
	}
}

// Add registers a callback under key. Use domain.AllDocuments to receive
// events for every document.
func (r *Registry) Add(identifier string, key domain.DocumentKey, fn ListenerFunc) {
	if fn == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	regs := r.listeners[key]
	for i, reg := range regs {
		if reg.identifier == identifier {
			regs[i].fn = fn
			return
		}
	}
	r.listeners[key] = append(regs, registration{identifier: identifier, fn: fn})
}

// Remove deletes the registration for (key, identifier). After Remove
// returns, the callback is never invoked again for subsequent Notify calls.
func (r *Registry) Remove(identifier string, key domain.DocumentKey) {
	r.mu.Lock()
	defer r.mu.Unlock()

	regs := r.listeners[key]
	for i, reg := range regs {
		if reg.identifier == identifier {
			r.listeners[key] = append(regs[:i:i], regs[i+1:]...)
			break
		}
	}
	if len(r.listeners[key]) == 0 {
		delete(r.listeners, key)
	}
}

// Notify invokes every listener registered under the event's document key,
// then every listener registered under domain.AllDocuments, in registration
// order. Listeners whose identifier equals the event source are skipped so a
// surface never reacts to its own echo. A panicking listener is recovered
// and logged; it never prevents other listeners or the caller from
// completing.
func (r *Registry) Notify(ev Event) {
	key := ev.Key()

	r.mu.Lock()
	targets := make([]registration, 0, len(r.listeners[key])+len(r.listeners[domain.AllDocuments]))
	targets = append(targets, r.listeners[key]...)
	if key != domain.AllDocuments {
		targets = append(targets, r.listeners[domain.AllDocuments]...)
	}
	r.mu.Unlock()

	source := string(ev.Source())
	for _, reg := range targets {
		if reg.identifier == source {
			continue
		}
		r.invoke(reg, ev)
	}
}

// invoke runs one listener behind a recover boundary.
func (r *Registry) invoke(reg registration, ev Event) {
	defer func() {
		if rec := recover(); rec != nil {
			if r.logger != nil {
				r.logger.Error("listener panicked", map[string]interface{}{
					"identifier":  reg.identifier,
					"documentKey": string(ev.Key()),
					"panic":       rec,
				})
			}
		}
	}()
	reg.fn(ev)
}

// Clear removes every registration.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listeners = make(map[domain.DocumentKey][]registration)
}

// Len reports the number of registrations under key.
func (r *Registry) Len(key domain.DocumentKey) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.listeners[key])
}
