package logger

import (
	"strings"
	"sync"
)

// Log levels accepted in configuration.
const (
	DebugLevel = "debug"
	InfoLevel  = "info"
	WarnLevel  = "warn"
	ErrorLevel = "error"
)

var (
	globalLogger *Logger
	once         sync.Once
)

// Get returns the process-wide logger. The level of the first call wins;
// later calls return the already built instance.
func Get(level string) *Logger {
	once.Do(func() {
		globalLogger = New(level)
	})
	return globalLogger
}

// New builds a standalone logger writing to stdout.
func New(level string) *Logger {
	return newZapLogger(normalizeLevel(level))
}

func normalizeLevel(level string) string {
	return strings.ToLower(strings.TrimSpace(level))
}
