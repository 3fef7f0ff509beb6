// Package logging defines the structured logger used across schemamap.
//
// The compiler and both schema generators accept a Logger through their
// WithLogger options and default to NopLogger. Attributes are alternating
// key-value pairs, the same convention as log/slog:
//
//	logger.Debug("resolved reference", "ref", "#/$defs/Address", "pointer", "person#/$defs/Address")
//
// Use [NewSlogAdapter] to route output to a *slog.Logger:
//
//	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})
//	result, err := compiler.Compile(schemas, compiler.WithLogger(logging.NewSlogAdapter(slog.New(handler))))
package logging

import (
	"context"
	"log/slog"
)

// Logger is the interface that schemamap uses for structured logging.
type Logger interface {
	// Debug logs at debug level. Use for detailed diagnostic information.
	Debug(msg string, attrs ...any)

	// Info logs at info level.
	Info(msg string, attrs ...any)

	// Warn logs at warn level.
	Warn(msg string, attrs ...any)

	// Error logs at error level.
	Error(msg string, attrs ...any)

	// With returns a new Logger with the given attributes prepended to every log.
	With(attrs ...any) Logger
}

// NopLogger is a no-op logger that discards all output.
// It is the default logger used when no logger is configured.
type NopLogger struct{}

// Debug implements Logger.
func (NopLogger) Debug(_ string, _ ...any) {}

// Info implements Logger.
func (NopLogger) Info(_ string, _ ...any) {}

// Warn implements Logger.
func (NopLogger) Warn(_ string, _ ...any) {}

// Error implements Logger.
func (NopLogger) Error(_ string, _ ...any) {}

// With implements Logger.
func (n NopLogger) With(_ ...any) Logger { return n }

var _ Logger = NopLogger{}

// SlogAdapter wraps a *slog.Logger to implement the Logger interface.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a new SlogAdapter from a *slog.Logger.
// If logger is nil, slog.Default() is used.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogAdapter{logger: logger}
}

// Debug implements Logger.
func (s *SlogAdapter) Debug(msg string, attrs ...any) {
	s.logger.Debug(msg, attrs...)
}

// Info implements Logger.
func (s *SlogAdapter) Info(msg string, attrs ...any) {
	s.logger.Info(msg, attrs...)
}

// Warn implements Logger.
func (s *SlogAdapter) Warn(msg string, attrs ...any) {
	s.logger.Warn(msg, attrs...)
}

// Error implements Logger.
func (s *SlogAdapter) Error(msg string, attrs ...any) {
	s.logger.Error(msg, attrs...)
}

// With implements Logger.
func (s *SlogAdapter) With(attrs ...any) Logger {
	return &SlogAdapter{logger: s.logger.With(attrs...)}
}

var _ Logger = (*SlogAdapter)(nil)

// ContextLogger wraps a Logger and carries a context alongside it, so that
// request-scoped values (an MCP tool call, a CLI invocation) travel with the
// logger through a compile or generate call.
type ContextLogger struct {
	logger Logger
	ctx    context.Context
}

// NewContextLogger creates a new ContextLogger.
func NewContextLogger(ctx context.Context, logger Logger) *ContextLogger {
	if logger == nil {
		logger = NopLogger{}
	}
	return &ContextLogger{logger: logger, ctx: ctx}
}

// Debug implements Logger.
func (c *ContextLogger) Debug(msg string, attrs ...any) {
	c.logger.Debug(msg, attrs...)
}

// Info implements Logger.
func (c *ContextLogger) Info(msg string, attrs ...any) {
	c.logger.Info(msg, attrs...)
}

// Warn implements Logger.
func (c *ContextLogger) Warn(msg string, attrs ...any) {
	c.logger.Warn(msg, attrs...)
}

// Error implements Logger.
func (c *ContextLogger) Error(msg string, attrs ...any) {
	c.logger.Error(msg, attrs...)
}

// With implements Logger.
func (c *ContextLogger) With(attrs ...any) Logger {
	return &ContextLogger{logger: c.logger.With(attrs...), ctx: c.ctx}
}

// Context returns the context associated with this logger.
func (c *ContextLogger) Context() context.Context {
	return c.ctx
}

var _ Logger = (*ContextLogger)(nil)

// OrNop returns logger, or NopLogger when logger is nil.
func OrNop(logger Logger) Logger {
	if logger == nil {
		return NopLogger{}
	}
	return logger
}
