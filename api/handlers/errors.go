// ABOUTME: Error handling utilities for API handlers
// ABOUTME: Converts domain errors to appropriate HTTP responses

package handlers

import (
	"docview-engine/core/errors"
	"github.com/danielgtaylor/huma/v2"
)

// toHumaError converts domain errors to appropriate Huma HTTP errors
func toHumaError(err error) error {
	if err == nil {
		return nil
	}

	// Check for specific error types
	if errors.IsElementNotFound(err) {
		return huma.Error404NotFound(err.Error())
	}

	if errors.IsDocumentUnknown(err) {
		return huma.Error404NotFound(err.Error())
	}

	if errors.IsStore(err) {
		// Store failures are usually transient (connection loss, lock contention)
		return huma.Error503ServiceUnavailable("Position store unavailable", err)
	}

	// Default to internal server error for unknown errors
	return huma.Error500InternalServerError("Internal server error", err)
}
