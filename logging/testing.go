package logging

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

type testAppender struct {
	tb testing.TB
}

// NewTestAppender returns a logger appender that logs to the underlying `testing.TB`
// object. Writing logs with `tb.Log` correctly associates the log line with a Golang "Test*"
// function, which matters for tests that call `t.Parallel()`.
//
// Go normally prepends the filename/line number that called `tb.Log`. `Write` calls `tb.Helper`
// such that the reported location is skipped past this appender.
func NewTestAppender(tb testing.TB) Appender {
	return &testAppender{tb}
}

// Write outputs the log entry to the underlying test object `Log` method.
func (tapp *testAppender) Write(entry zapcore.Entry, fields []zapcore.Field) error {
	tapp.tb.Helper()
	line, err := formatEntry(entry, fields)
	tapp.tb.Log(line)
	return err
}

// Sync is a no-op.
func (tapp *testAppender) Sync() error {
	return nil
}
