package logging

// NullLogger discards all messages. It is used in tests and wherever a
// component requires a logger but no output is wanted.
type NullLogger struct{}

// NewNullLogger creates a logger that discards everything.
func NewNullLogger() *NullLogger {
	return &NullLogger{}
}

// Verbose discards the message.
func (n *NullLogger) Verbose(format string, args ...interface{}) {}

// Info discards the message.
func (n *NullLogger) Info(format string, args ...interface{}) {}

// Warn discards the message.
func (n *NullLogger) Warn(format string, args ...interface{}) {}

// Error discards the message.
func (n *NullLogger) Error(format string, args ...interface{}) {}
