package logging

import (
	"context"
)

// Logger interface for logging to.
type Logger interface {
	// Sublogger returns a new logger whose name is this logger's name with `subname` appended
	// after a dot. The sublogger shares this logger's appenders.
	Sublogger(subname string) Logger
	AddAppender(appender Appender)
	SetLevel(level Level)
	GetLevel() Level
	Name() string
	Sync() error

	Debug(args ...interface{})
	Debugf(template string, args ...interface{})
	Debugw(msg string, keysAndValues ...interface{})
	CDebug(ctx context.Context, args ...interface{})
	CDebugf(ctx context.Context, template string, args ...interface{})
	CDebugw(ctx context.Context, msg string, keysAndValues ...interface{})

	Info(args ...interface{})
	Infof(template string, args ...interface{})
	Infow(msg string, keysAndValues ...interface{})
	CInfow(ctx context.Context, msg string, keysAndValues ...interface{})

	Warn(args ...interface{})
	Warnf(template string, args ...interface{})
	Warnw(msg string, keysAndValues ...interface{})
	CWarnw(ctx context.Context, msg string, keysAndValues ...interface{})

	Error(args ...interface{})
	Errorf(template string, args ...interface{})
	Errorw(msg string, keysAndValues ...interface{})
	CErrorw(ctx context.Context, msg string, keysAndValues ...interface{})

	Fatal(args ...interface{})
	Fatalf(template string, args ...interface{})
	Fatalw(msg string, keysAndValues ...interface{})
}
