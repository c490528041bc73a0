package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// DefaultTimeFormatStr is the default time format string for log appenders.
const DefaultTimeFormatStr = "2006-01-02T15:04:05.000Z0700"

// Appender is an output for log entries. This is a subset of the `zapcore.Core` interface.
type Appender interface {
	// Write submits a structured log entry to the appender for logging.
	Write(zapcore.Entry, []zapcore.Field) error
	// Sync is for signaling that any buffered logs to `Write` should be flushed. E.g: at shutdown.
	Sync() error
}

// ConsoleAppender will create human readable lines from log events and write them to the desired
// output sink.
type ConsoleAppender struct {
	mu  sync.Mutex
	out io.Writer
}

// NewStdoutAppender creates a new appender that outputs to stdout.
func NewStdoutAppender() *ConsoleAppender {
	return &ConsoleAppender{out: os.Stdout}
}

// NewWriterAppender creates a new appender that outputs to the input writer. The writer is only
// ever written to from one goroutine at a time.
func NewWriterAppender(writer io.Writer) *ConsoleAppender {
	return &ConsoleAppender{out: writer}
}

// NewFileAppender creates an appender writing to a size rotated file at `path`. The returned
// closer releases the file.
func NewFileAppender(path string) (*ConsoleAppender, io.Closer) {
	logFile := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    64,
		MaxBackups: 2,
		Compress:   true,
	}
	return NewWriterAppender(logFile), logFile
}

// Write outputs the log entry to the underlying stream as a single tab separated line. Structured
// fields, if any, are appended as a json object.
func (appender *ConsoleAppender) Write(entry zapcore.Entry, fields []zapcore.Field) error {
	line, err := formatEntry(entry, fields)
	if err != nil {
		return err
	}

	appender.mu.Lock()
	defer appender.mu.Unlock()
	_, err = fmt.Fprintln(appender.out, line)
	return err
}

// Sync is a no-op.
func (appender *ConsoleAppender) Sync() error {
	return nil
}

// formatEntry renders `entry` as "<time>\t<LEVEL>\t<name>\t<file:line>\t<msg>[\t<json fields>]".
// The name and caller sections are omitted when empty.
func formatEntry(entry zapcore.Entry, fields []zapcore.Field) (string, error) {
	const maxLength = 10
	toPrint := make([]string, 0, maxLength)
	toPrint = append(toPrint, entry.Time.Format(DefaultTimeFormatStr))

	toPrint = append(toPrint, strings.ToUpper(entry.Level.String()))
	if entry.LoggerName != "" {
		toPrint = append(toPrint, entry.LoggerName)
	}
	if entry.Caller.Defined {
		toPrint = append(toPrint, callerToString(&entry.Caller))
	}
	toPrint = append(toPrint, entry.Message)
	if len(fields) == 0 {
		return strings.Join(toPrint, "\t"), nil
	}

	// Use zap's json encoder which will encode our slice of fields in-order. As opposed to the
	// random iteration order of a map. Call it with an empty Entry object such that only the fields
	// become "map-ified".
	jsonEncoder := zapcore.NewJSONEncoder(zapcore.EncoderConfig{SkipLineEnding: true})
	buf, err := jsonEncoder.EncodeEntry(zapcore.Entry{}, fields)
	if err != nil {
		return strings.Join(toPrint, "\t"), err
	}
	defer buf.Free()
	toPrint = append(toPrint, string(buf.Bytes()))
	return strings.Join(toPrint, "\t"), nil
}

// callerToString returns "<package>/<file>:<line>", e.g: "logging/impl_test.go:36".
func callerToString(caller *zapcore.EntryCaller) string {
	return caller.TrimmedPath()
}
