package timezone

import "fmt"

const (
	KindDate      = "date"
	KindClock     = "time"
	KindTimestamp = "timestamp"
	KindZone      = "zone"
)

// ParseError reports malformed or ambiguous civil/UTC input.
type ParseError struct {
	Kind   string
	Input  string
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Kind, e.Input, e.Reason)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
