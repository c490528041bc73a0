package logging

import (
	"regexp"
	"strings"
)

// LoggerPatternConfig is an instance of a level specification for a given logger.
type LoggerPatternConfig struct {
	Pattern string `json:"pattern"`
	Level   string `json:"level"`
}

const (
	// Regular expressions for logger names. Examples describe the regular expression that
	// follows.

	// e.g. "foo".
	validLoggerSectionName = `[a-zA-Z0-9]+([_-]*[a-zA-Z0-9]+)*`
	// e.g. "foo" or "*".
	validLoggerSectionNameWithWildcard = `(` + validLoggerSectionName + `|\*)`
	// e.g. "foo.*.foo".
	validLoggerSectionsWithWildcard = validLoggerSectionNameWithWildcard + `(\.` + validLoggerSectionNameWithWildcard + `)*`
	// Restricts above regex to be the entire pattern.
	validLoggerName = `^` + validLoggerSectionsWithWildcard + `$`
)

var loggerPatternRegexp = regexp.MustCompile(validLoggerName)

// ValidatePattern returns whether `pattern` is a dot separated logger name where any section may
// be the "*" wildcard.
func ValidatePattern(pattern string) bool {
	return loggerPatternRegexp.MatchString(pattern)
}

func buildRegexFromPattern(pattern string) string {
	var matcher strings.Builder
	matcher.WriteRune('^')
	for _, ch := range pattern {
		switch ch {
		case '*':
			matcher.WriteString(`.*`)
		case '.':
			matcher.WriteString(`\.`)
		default:
			matcher.WriteRune(ch)
		}
	}
	matcher.WriteRune('$')
	return matcher.String()
}
