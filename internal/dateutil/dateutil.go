// Package dateutil formats the export date from a user-friendly pattern.
package dateutil

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidDateFormat indicates an invalid date format string.
var ErrInvalidDateFormat = errors.New("invalid date format")

// MaxDateFormatLength limits format string length.
const MaxDateFormatLength = 50

// DefaultDateFormat is used for "auto".
const DefaultDateFormat = "YYYY-MM-DD"

// Presets are named shortcuts for common patterns.
var Presets = map[string]string{
	"iso":      "YYYY-MM-DD",
	"european": "DD/MM/YYYY",
	"us":       "MM/DD/YYYY",
	"long":     "MMMM D, YYYY",
}

// tokens maps pattern tokens to Go layouts, longest first.
var tokens = []struct{ token, layout string }{
	{"YYYY", "2006"},
	{"MMMM", "January"},
	{"MMM", "Jan"},
	{"YY", "06"},
	{"MM", "01"},
	{"DD", "02"},
	{"M", "1"},
	{"D", "2"},
}

// Format writes t using a pattern such as "DD/MM/YYYY" or a preset name.
//
// The tokens are YYYY, YY, MMMM, MMM, MM, M, DD and D; any other character
// is copied as is. Text in brackets is copied without token matching, so
// "[Date:] DD" gives "Date: 07" where "Date: DD" would turn the leading D
// into a day.
func Format(pattern string, t time.Time) (string, error) {
	pattern = strings.TrimSpace(pattern)
	if pattern == "" {
		return "", fmt.Errorf("%w: format cannot be empty", ErrInvalidDateFormat)
	}
	if len(pattern) > MaxDateFormatLength {
		return "", fmt.Errorf("%w: format exceeds %d characters", ErrInvalidDateFormat, MaxDateFormatLength)
	}
	if preset, ok := Presets[strings.ToLower(pattern)]; ok {
		pattern = preset
	}

	var b strings.Builder
	for rest := pattern; rest != ""; {
		if rest[0] == '[' {
			end := strings.IndexByte(rest, ']')
			if end < 0 {
				return "", fmt.Errorf("%w: unclosed bracket at position %d",
					ErrInvalidDateFormat, len(pattern)-len(rest))
			}
			b.WriteString(rest[1:end])
			rest = rest[end+1:]
			continue
		}
		n := 1
		part := rest[:1]
		for _, tok := range tokens {
			if strings.HasPrefix(rest, tok.token) {
				n, part = len(tok.token), t.Format(tok.layout)
				break
			}
		}
		b.WriteString(part)
		rest = rest[n:]
	}
	return b.String(), nil
}

// Resolve expands "auto" and "auto:PATTERN" to the date of t. Any other
// value is returned unchanged.
func Resolve(value string, t time.Time) (string, error) {
	lower := strings.ToLower(strings.TrimSpace(value))
	switch {
	case lower == "":
		return "", nil
	case lower == "auto":
		value = "auto:" + DefaultDateFormat
	case !strings.HasPrefix(lower, "auto:"):
		return value, nil
	}
	return Format(strings.TrimSpace(value)[len("auto:"):], t)
}
