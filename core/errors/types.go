// ABOUTME: Custom error types for the engine core
// ABOUTME: Provides structured errors for lookup misses and store failures

package errors

import (
	"errors"
	"fmt"
)

// ElementNotFoundError reports that a requested element could not be
// located. It is never fatal: callers degrade to a no-op or a best-effort
// fallback.
type ElementNotFoundError struct {
	Kind       string // "page", "thumbnail", "container"
	Key        string
	PageNumber int
}

// Error implements the error interface
func (e *ElementNotFoundError) Error() string {
	return fmt.Sprintf("%s element not found: %s page %d", e.Kind, e.Key, e.PageNumber)
}

// DocumentUnknownError reports an operation against a document the engine
// has never seen.
type DocumentUnknownError struct {
	Key string
}

// Error implements the error interface
func (e *DocumentUnknownError) Error() string {
	return fmt.Sprintf("unknown document: %s", e.Key)
}

// StoreError wraps a scroll-position store failure with the backend name.
type StoreError struct {
	Backend string
	Op      string
	Err     error
}

// Error implements the error interface
func (e *StoreError) Error() string {
	return fmt.Sprintf("scroll position store (%s) %s failed: %v", e.Backend, e.Op, e.Err)
}

// Unwrap exposes the underlying error for errors.Is/As.
func (e *StoreError) Unwrap() error {
	return e.Err
}

// IsElementNotFound checks if an error is an ElementNotFoundError
func IsElementNotFound(err error) bool {
	var notFound *ElementNotFoundError
	return errors.As(err, &notFound)
}

// IsDocumentUnknown checks if an error is a DocumentUnknownError
func IsDocumentUnknown(err error) bool {
	var unknown *DocumentUnknownError
	return errors.As(err, &unknown)
}

// IsStore checks if an error is a StoreError
func IsStore(err error) bool {
	var storeErr *StoreError
	return errors.As(err, &storeErr)
}

// WrapError wraps an error with additional context
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
