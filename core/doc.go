// Package core contains the business logic for the viewport engine.
// It is designed to be framework-agnostic and can be used independently
// of any web framework or infrastructure concerns.
//
// The core package is organized into several sub-packages:
//
// - domain: Contains pure domain models (DocumentKey, Rect, PageChange, etc.)
// - coordinator: The viewport coordinator tying scrolling, visibility, and navigation together
// - visibility: Most-visible-page scoring over viewport geometry
// - locator: Cached element lookup with one-shot structure watches
// - registry: Page change listener registry with echo suppression
// - errors: Custom error types for better error handling
// - interfaces: Contracts for external dependencies (provider, store, clock, logger)
//
// # Design Principles
//
// The core package follows clean architecture principles:
// - No external framework dependencies beyond the element cache
// - All external dependencies are injected via interfaces
// - Business logic is testable in isolation with a controllable clock
// - Domain models are free from persistence concerns
//
// # Usage Example
//
//	import (
//	    "docview-engine/core/coordinator"
//	    "docview-engine/core/interfaces"
//	)
//
//	// Create dependencies
//	deps := interfaces.Dependencies{
//	    Logger:    myLogger,    // implements interfaces.Logger
//	    Clock:     myClock,     // implements interfaces.Clock
//	    Provider:  myProvider,  // implements interfaces.ViewportElementProvider
//	    Positions: myStore,     // implements interfaces.ScrollPositionStore
//	}
//
//	// Create the coordinator
//	engine := coordinator.New(deps, coordinator.DefaultConfig())
//
//	// Navigate
//	engine.ScrollToPage(3, "doc-a", domain.SourceThumbnailRail, nil)
package core
