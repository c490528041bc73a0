package logging

import (
	"regexp"
	"sort"
	"sync"

	"github.com/pkg/errors"
)

// Registry tracks named loggers so their levels can be changed by pattern after they were
// handed out.
type Registry struct {
	mu        sync.RWMutex
	loggers   map[string]Logger
	logConfig []LoggerPatternConfig
}

var globalLoggerRegistry = newRegistry()

func newRegistry() *Registry {
	return &Registry{
		loggers: make(map[string]Logger),
	}
}

// register stores `logger` under `name`, replacing any earlier logger of the same name, and
// applies the currently configured patterns to it.
func (lr *Registry) register(name string, logger Logger) {
	lr.mu.Lock()
	defer lr.mu.Unlock()
	lr.loggers[name] = logger
	if level, ok := levelFor(name, lr.logConfig); ok {
		logger.SetLevel(level)
	}
}

func (lr *Registry) loggerNamed(name string) (logger Logger, ok bool) {
	lr.mu.RLock()
	defer lr.mu.RUnlock()
	logger, ok = lr.loggers[name]
	return
}

// UpdateConfig replaces the pattern configuration and applies it to every registered logger.
// Invalid patterns are reported on `errorLogger` and skipped. When several patterns match a
// logger name, the last one wins.
func (lr *Registry) UpdateConfig(logConfig []LoggerPatternConfig, errorLogger Logger) error {
	valid := make([]LoggerPatternConfig, 0, len(logConfig))
	for _, lpc := range logConfig {
		if !ValidatePattern(lpc.Pattern) {
			errorLogger.Warnw("failed to validate a pattern", "pattern", lpc.Pattern)
			continue
		}
		if _, err := LevelFromString(lpc.Level); err != nil {
			return errors.Wrapf(err, "pattern %q", lpc.Pattern)
		}
		valid = append(valid, lpc)
	}

	lr.mu.Lock()
	defer lr.mu.Unlock()
	lr.logConfig = valid
	for name, logger := range lr.loggers {
		if level, ok := levelFor(name, valid); ok {
			logger.SetLevel(level)
		}
	}
	return nil
}

func (lr *Registry) getRegisteredLoggerNames() []string {
	lr.mu.RLock()
	defer lr.mu.RUnlock()
	registeredNames := make([]string, 0, len(lr.loggers))
	for name := range lr.loggers {
		registeredNames = append(registeredNames, name)
	}
	sort.Strings(registeredNames)
	return registeredNames
}

func levelFor(name string, logConfig []LoggerPatternConfig) (Level, bool) {
	var (
		matched Level
		found   bool
	)
	for _, lpc := range logConfig {
		r, err := regexp.Compile(buildRegexFromPattern(lpc.Pattern))
		if err != nil || !r.MatchString(name) {
			continue
		}
		level, err := LevelFromString(lpc.Level)
		if err != nil {
			continue
		}
		matched, found = level, true
	}
	return matched, found
}

// LoggerNamed returns the most recently registered sublogger with the given name.
func LoggerNamed(name string) (Logger, bool) {
	return globalLoggerRegistry.loggerNamed(name)
}

// UpdateLoggerLevels applies the pattern configuration to all registered subloggers.
func UpdateLoggerLevels(logConfig []LoggerPatternConfig, errorLogger Logger) error {
	return globalLoggerRegistry.UpdateConfig(logConfig, errorLogger)
}

// RegisteredLoggerNames returns the sorted names of all registered subloggers.
func RegisteredLoggerNames() []string {
	return globalLoggerRegistry.getRegisteredLoggerNames()
}
