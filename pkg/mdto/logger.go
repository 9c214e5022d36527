package mdto

// Logger provides a pluggable logging interface for mdto operations.
// Implementations must be safe for concurrent use by multiple goroutines.
type Logger interface {
	// Verbose logs detailed diagnostic information.
	// Only logged when verbose mode is enabled.
	Verbose(format string, args ...interface{})

	// Info logs informational messages about normal operations.
	Info(format string, args ...interface{})

	// Warn logs validation warnings and other recoverable conditions.
	// Suppressed in quiet mode.
	Warn(format string, args ...interface{})

	// Error logs error messages.
	// Always logged regardless of verbose or quiet mode.
	Error(format string, args ...interface{})
}
