// Package logging contains the leveled, appender based logger used across the agent host.
package logging

import (
	"io"
	"sync"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

var (
	globalMu     sync.RWMutex
	globalLogger = NewDebugLogger("startup")
)

// ReplaceGlobal replaces the global loggers.
func ReplaceGlobal(logger Logger) {
	globalMu.Lock()
	globalLogger = logger
	globalMu.Unlock()
}

// Global returns the global logger.
func Global() Logger {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return globalLogger
}

// NewLogger returns a new logger that outputs Info+ logs to stdout in UTC.
func NewLogger(name string) Logger {
	const inUTC = true
	return &impl{name: name, level: NewAtomicLevelAt(INFO), inUTC: inUTC, appenders: []Appender{NewStdoutAppender()}}
}

// NewDebugLogger returns a new logger that outputs Debug+ logs to stdout in UTC.
func NewDebugLogger(name string) Logger {
	const inUTC = true
	return &impl{name: name, level: NewAtomicLevelAt(DEBUG), inUTC: inUTC, appenders: []Appender{NewStdoutAppender()}}
}

// NewWriterLogger returns a new logger that outputs logs at `level` and above to `writer` in UTC.
func NewWriterLogger(name string, level Level, writer io.Writer) Logger {
	const inUTC = true
	return &impl{name: name, level: NewAtomicLevelAt(level), inUTC: inUTC, appenders: []Appender{NewWriterAppender(writer)}}
}

// NewBlankLogger returns a new logger that outputs Debug+ logs in UTC, but without any
// pre-existing appenders/outputs.
func NewBlankLogger(name string) Logger {
	const inUTC = true
	return &impl{name: name, level: NewAtomicLevelAt(DEBUG), inUTC: inUTC, appenders: []Appender{}}
}

// NewTestLogger returns a new logger that outputs Debug+ logs to the test object in local time.
func NewTestLogger(tb testing.TB) Logger {
	logger, _ := NewObservedTestLogger(tb)
	return logger
}

// NewObservedTestLogger is like NewTestLogger but also saves logs to an in memory observer.
func NewObservedTestLogger(tb testing.TB) (Logger, *observer.ObservedLogs) {
	const inUTC = false
	logger := &impl{name: "", level: NewAtomicLevelAt(DEBUG), inUTC: inUTC, appenders: []Appender{}}
	logger.AddAppender(NewTestAppender(tb))

	observerCore, observedLogs := observer.New(zap.LevelEnablerFunc(zapcore.DebugLevel.Enabled))
	logger.AddAppender(observerCore)

	return logger, observedLogs
}
