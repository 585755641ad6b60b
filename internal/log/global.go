package log

import (
	"sync"
)

// The process-wide default logger. The CLI configures it once from the
// --log-level/--log-format flags before any subcommand runs; resolvers
// created without an explicit Logger fall back to it.

var (
	defaultLogger *Logger
	loggerMu      sync.RWMutex
)

// SetDefaultLogger replaces the process-wide default logger
func SetDefaultLogger(logger *Logger) {
	loggerMu.Lock()
	defer loggerMu.Unlock()
	defaultLogger = logger
}

// DefaultLogger returns the process-wide default logger, lazily
// initializing it with the quiet standard configuration when the CLI
// has not configured one (library use, tests).
func DefaultLogger() *Logger {
	loggerMu.RLock()
	if defaultLogger != nil {
		defer loggerMu.RUnlock()
		return defaultLogger
	}
	loggerMu.RUnlock()

	logger := Default()
	SetDefaultLogger(logger)
	return logger
}
