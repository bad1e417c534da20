// ABOUTME: Dependencies container provides dependency injection for core services
// ABOUTME: Defines the contract for dependencies required by the engine core

package interfaces

// Dependencies holds all external dependencies required by the engine core.
type Dependencies struct {
	// Logger provides structured logging.
	Logger Logger

	// Clock provides time and deferred execution.
	Clock Clock

	// Provider is the engine's window into the host UI element tree.
	Provider ViewportElementProvider

	// Positions persists per-document scroll offsets.
	Positions ScrollPositionStore
}
