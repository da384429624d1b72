// Package dateutil translates human-oriented date format strings into
// Go time layouts and expands the "auto" date syntax used in book
// metadata.
package dateutil

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidDateFormat flags a format string that cannot be used.
var ErrInvalidDateFormat = errors.New("malformed date format")

// MaxDateFormatLength caps format strings. A date format longer than
// this is noise, not a format.
const MaxDateFormatLength = 50

// DefaultDateFormat backs a bare "auto". ISO-shaped, so resolved
// values remain valid dc:date content.
const DefaultDateFormat = "YYYY-MM-DD"

// Longest token first, so MMMM wins over MM and MM over M.
var tokenTable = []struct {
	src    string
	layout string
}{
	{"YYYY", "2006"},
	{"MMMM", "January"},
	{"MMM", "Jan"},
	{"YY", "06"},
	{"MM", "01"},
	{"DD", "02"},
	{"M", "1"},
	{"D", "2"},
}

// Named shortcuts accepted after "auto:", matched case-insensitively.
var datePresets = map[string]string{
	"iso":      "YYYY-MM-DD",
	"european": "DD/MM/YYYY",
	"us":       "MM/DD/YYYY",
	"long":     "MMMM D, YYYY",
}

// ParseDateFormat translates a format built from the tokens YYYY, YY,
// MMMM, MMM, MM, M, DD and D into a Go time layout. Text in [brackets]
// is copied through untouched, which is the only way to get a literal
// D or M into the output. Any other character outside brackets passes
// through as-is. Empty, oversized, and unclosed-bracket formats return
// ErrInvalidDateFormat.
func ParseDateFormat(format string) (string, error) {
	if format == "" {
		return "", fmt.Errorf("%w: empty format", ErrInvalidDateFormat)
	}
	if len(format) > MaxDateFormatLength {
		return "", fmt.Errorf("%w: format longer than %d characters", ErrInvalidDateFormat, MaxDateFormatLength)
	}

	var layout strings.Builder
	layout.Grow(len(format) + 8)

	for i := 0; i < len(format); {
		if format[i] == '[' {
			// Verbatim up to the first closing bracket
			end := strings.IndexByte(format[i+1:], ']')
			if end < 0 {
				return "", fmt.Errorf("%w: bracket at position %d is never closed", ErrInvalidDateFormat, i)
			}
			layout.WriteString(format[i+1 : i+1+end])
			i += end + 2
			continue
		}
		if goFmt, n := matchToken(format[i:]); n > 0 {
			layout.WriteString(goFmt)
			i += n
			continue
		}
		layout.WriteByte(format[i])
		i++
	}

	return layout.String(), nil
}

// matchToken reports the layout fragment for the token starting s, if
// any, and how many bytes it consumed.
func matchToken(s string) (layout string, n int) {
	for _, t := range tokenTable {
		if strings.HasPrefix(s, t.src) {
			return t.layout, len(t.src)
		}
	}
	return "", 0
}

// ResolveDate expands the "auto" date syntax against the given clock:
//
//	auto          date under DefaultDateFormat
//	auto:FORMAT   date under a custom token format
//	auto:PRESET   one of iso, european, us, long
//
// Values that do not start with "auto" pass through unchanged, so
// literal dates and free-form strings are left alone. The clock is a
// parameter so callers can pin it in tests.
func ResolveDate(value string, t time.Time) (string, error) {
	lower := strings.ToLower(value)

	var spec string
	switch {
	case !strings.HasPrefix(lower, "auto"):
		return value, nil
	case lower == "auto":
		spec = DefaultDateFormat
	case strings.HasPrefix(lower, "auto:"):
		// Slice the original value: tokens are case-sensitive
		spec = value[len("auto:"):]
		if spec == "" {
			return "", fmt.Errorf("%w: nothing after \"auto:\"", ErrInvalidDateFormat)
		}
		if preset, ok := datePresets[strings.ToLower(spec)]; ok {
			spec = preset
		}
	default:
		return "", fmt.Errorf("%w: %q, want \"auto\" or \"auto:FORMAT\"", ErrInvalidDateFormat, value)
	}

	layout, err := ParseDateFormat(spec)
	if err != nil {
		return "", err
	}
	return t.Format(layout), nil
}
