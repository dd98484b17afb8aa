package logger

import "github.com/user/imagify/pkg/ports"

// NoopLogger discards every message. It backs --quiet and tests.
type NoopLogger struct{}

// NewNoop creates a new no-op logger.
func NewNoop() NoopLogger {
	return NoopLogger{}
}

func (NoopLogger) Debug(string, ...interface{}) {}
func (NoopLogger) Info(string, ...interface{})  {}
func (NoopLogger) Warn(string, ...interface{})  {}
func (NoopLogger) Error(string, ...interface{}) {}

// WithComponent returns the same no-op logger.
func (l NoopLogger) WithComponent(string) ports.Logger {
	return l
}

var _ ports.Logger = NoopLogger{}
