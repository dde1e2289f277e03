package core

// Logger defines structured logging operations for the domain layer.
// Adapters decide the backend; the domain only ever sees this interface.
type Logger interface {
	// Debug logs detailed diagnostic messages
	Debug(message string, fields map[string]any)
	// Info logs general operational messages
	Info(message string, fields map[string]any)
	// Warn logs conditions that need operator attention but are not faults
	Warn(message string, fields map[string]any)
	// Error logs genuine faults
	Error(message string, fields map[string]any)
	// Flush ensures all buffered logs are written to their destination
	Flush() error
}
