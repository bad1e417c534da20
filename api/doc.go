// Package api provides the HTTP API layer for the viewport engine.
// It uses the Huma framework to provide automatic OpenAPI documentation,
// request/response validation, and a clean handler interface.
//
// # Architecture
//
// The API package is structured as follows:
//
// - server.go: Huma API configuration and setup
// - handlers/: HTTP request handlers
// - dto/: Data Transfer Objects for requests and responses
// - middleware/: HTTP middleware for cross-cutting concerns
// - ws/: WebSocket session bridging a host UI to the engine
//
// # Key Features
//
// 1. Automatic OpenAPI Generation
//
// The API automatically generates OpenAPI 3.0 documentation:
// - JSON spec available at /openapi.json
// - Interactive Swagger UI at /docs
//
// 2. Request/Response Validation
//
// Huma provides automatic validation based on struct tags:
//
//	type ScrollToPageRequest struct {
//	    PageNumber int    `json:"page_number" minimum:"1"`
//	    Source     string `json:"source,omitempty" enum:"thumbnail-rail,external-navigation"`
//	}
//
// 3. Middleware Support
//
// The API includes middleware for:
// - Request logging with unique request IDs
// - Rate limiting per IP address
// - CORS handling (when configured)
//
// # Usage Example
//
//	// Create API with middleware
//	cfg := api.APIConfig{
//	    Logger:         logger,
//	    RateLimitRPS:   50,
//	    RateLimitBurst: 100,
//	}
//	humaAPI, router := api.NewAPIWithMiddleware(cfg)
//
//	// Register handlers
//	viewportHandler := handlers.NewViewportHandler(engine, logger)
//	viewportHandler.RegisterRoutes(humaAPI)
//
//	// Start server
//	http.ListenAndServe(":8080", router)
//
// # Error Handling
//
// The API uses a consistent error format based on RFC 7807:
//
//	{
//	    "status": 404,
//	    "title": "Not Found",
//	    "detail": "page element not found: doc-a page 12",
//	    "instance": "/documents/doc-a/scroll-to-page"
//	}
//
// Domain errors are automatically mapped to appropriate HTTP status codes.
package api
