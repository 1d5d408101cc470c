package timezone

import (
	"strings"
	"time"
)

var zonedLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999Z07",
}

var zonelessLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

// ParseUTCTimestamp parses a stored timestamp. The input must carry an
// explicit zone designator; readings without one are rejected rather than
// interpreted in any local zone.
func ParseUTCTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, &ParseError{Kind: KindTimestamp, Input: s, Reason: "empty timestamp"}
	}

	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}

	for _, layout := range zonelessLayouts {
		if _, err := time.Parse(layout, s); err == nil {
			return time.Time{}, &ParseError{Kind: KindTimestamp, Input: s, Reason: "missing zone designator"}
		}
	}

	return time.Time{}, &ParseError{Kind: KindTimestamp, Input: s, Reason: "malformed timestamp"}
}
