package interfaces

// Logger defines the interface for logging throughout the application.
// Implementations wrap a concrete logging library (logrus) behind
// message plus structured fields.
//
// Example usage:
//
//	logger.Debug("Link resolved", map[string]interface{}{
//		"url":   "https://example.com/feed.xml",
//		"state": "processed",
//	})
//
//	logger.Warn("Fetch failed", map[string]interface{}{
//		"url":   "https://example.com/",
//		"error": err.Error(),
//	})
type Logger interface {
	// Debug logs a debug level message with optional structured fields.
	Debug(msg string, fields map[string]interface{})

	// Info logs an info level message with optional structured fields.
	Info(msg string, fields map[string]interface{})

	// Warn logs a warning level message with optional structured fields.
	// Warning messages indicate potential issues that don't prevent operation.
	Warn(msg string, fields map[string]interface{})

	// Error logs an error level message with optional structured fields.
	Error(msg string, fields map[string]interface{})
}

// NopLogger discards every message
type NopLogger struct{}

func (NopLogger) Debug(string, map[string]interface{}) {}
func (NopLogger) Info(string, map[string]interface{}) {}
func (NopLogger) Warn(string, map[string]interface{}) {}
func (NopLogger) Error(string, map[string]interface{}) {}
