// Package interfaces defines the core interfaces used throughout the engine.
// These interfaces allow for dependency injection and make the code testable.
package interfaces

// Logger defines the interface for logging throughout the engine.
// This abstraction allows for different logging implementations (logrus,
// standard library, etc.) while maintaining a consistent interface.
//
// Example usage:
//
//	logger.Info("Scroll settled", map[string]interface{}{
//		"documentKey": "doc-42",
//		"pageNumber":  3,
//	})
type Logger interface {
	// Debug logs a debug level message with optional structured fields.
	Debug(msg string, fields map[string]interface{})

	// Info logs an info level message with optional structured fields.
	Info(msg string, fields map[string]interface{})

	// Warn logs a warning level message with optional structured fields.
	Warn(msg string, fields map[string]interface{})

	// Error logs an error level message with optional structured fields.
	Error(msg string, fields map[string]interface{})
}
