// Package logger defines the structured logging interface for the gateway.
// The concrete zap implementation lives in internal/infrastructure/monitoring;
// the no-op implementation here is the default so call sites never branch on
// a nil sink.
package logger

import "context"

// Fields is a set of structured key/value pairs attached to a log record.
type Fields map[string]interface{}

// Logger is the logging contract used across the gateway. Implementations
// must be safe for concurrent use.
type Logger interface {
	Debug(ctx context.Context, msg string, fields ...Fields)
	Info(ctx context.Context, msg string, fields ...Fields)
	Warn(ctx context.Context, msg string, fields ...Fields)
	Error(ctx context.Context, msg string, err error, fields ...Fields)
	Fatal(ctx context.Context, msg string, err error, fields ...Fields)

	// WithFields returns a logger that attaches the fields to every record.
	WithFields(fields Fields) Logger

	// WithComponent returns a logger tagged with a component name.
	WithComponent(component string) Logger
}
