// ABOUTME: Storage interface for persisting per-document scroll offsets
// ABOUTME: Backends range from process memory to sqlite and redis

package interfaces

import (
	"context"

	"docview-engine/core/domain"
)

// ScrollPositionStore persists the documentKey → offset mapping. One live
// entry exists per document that has been scrolled at least once. Offsets
// are always ≥ 0; implementations may assume callers clamp.
type ScrollPositionStore interface {
	// Save unconditionally overwrites the offset for a document.
	Save(ctx context.Context, key domain.DocumentKey, offset float64) error

	// Get returns the saved offset for a document. The bool is false when
	// the document has never been scrolled.
	Get(ctx context.Context, key domain.DocumentKey) (float64, bool, error)

	// Delete removes the entry for a document. Deleting an absent entry
	// is not an error.
	Delete(ctx context.Context, key domain.DocumentKey) error

	// Close releases any resources held by the store.
	Close() error
}
