package handlers

import (
	"fmt"
	"testing"

	"docview-engine/core/errors"
	"github.com/danielgtaylor/huma/v2"
	"github.com/stretchr/testify/assert"
)

func TestToHumaError(t *testing.T) {
	tests := []struct {
		name           string
		input          error
		expectedStatus int
		expectedInMsg  string
	}{
		{
			name:           "nil error returns nil",
			input:          nil,
			expectedStatus: 0,
			expectedInMsg:  "",
		},
		{
			name:           "ElementNotFoundError returns 404",
			input:          &errors.ElementNotFoundError{Kind: "page", Key: "doc-a", PageNumber: 12},
			expectedStatus: 404,
			expectedInMsg:  "page element not found",
		},
		{
			name:           "DocumentUnknownError returns 404",
			input:          &errors.DocumentUnknownError{Key: "doc-x"},
			expectedStatus: 404,
			expectedInMsg:  "unknown document: doc-x",
		},
		{
			name:           "StoreError returns 503",
			input:          &errors.StoreError{Backend: "redis", Op: "delete", Err: fmt.Errorf("connection refused")},
			expectedStatus: 503,
			expectedInMsg:  "Position store unavailable",
		},
		{
			name:           "wrapped ElementNotFoundError returns 404",
			input:          fmt.Errorf("wrapped: %w", &errors.ElementNotFoundError{Kind: "thumbnail", Key: "doc-b", PageNumber: 2}),
			expectedStatus: 404,
			expectedInMsg:  "thumbnail element not found",
		},
		{
			name:           "unknown error returns 500",
			input:          fmt.Errorf("something unexpected"),
			expectedStatus: 500,
			expectedInMsg:  "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := toHumaError(tt.input)

			if tt.input == nil {
				assert.Nil(t, result)
				return
			}

			statusErr, ok := result.(huma.StatusError)
			assert.True(t, ok, "expected a huma.StatusError")
			assert.Equal(t, tt.expectedStatus, statusErr.GetStatus())
			assert.Contains(t, result.Error(), tt.expectedInMsg)
		})
	}
}
