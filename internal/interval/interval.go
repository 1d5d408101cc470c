// Package interval implements half-open [start, end) spans of UTC instants.
package interval

import (
	"fmt"
	"time"
)

type Interval struct {
	Start time.Time
	End   time.Time
}

// New builds [start, start+minutes). Arithmetic is on the instant, never on
// a wall clock.
func New(start time.Time, minutes int) Interval {
	return Interval{Start: start, End: AddMinutes(start, minutes)}
}

func AddMinutes(instant time.Time, n int) time.Time {
	return instant.Add(time.Duration(n) * time.Minute)
}

// Overlaps reports whether a and b share an instant. Back-to-back intervals
// do not overlap.
func Overlaps(a, b Interval) bool {
	return a.Start.Before(b.End) && b.Start.Before(a.End)
}

func (i Interval) Empty() bool {
	return !i.Start.Before(i.End)
}

// Contains reports whether other lies entirely inside i.
func (i Interval) Contains(other Interval) bool {
	return !other.Start.Before(i.Start) && !other.End.After(i.End)
}

func (i Interval) Duration() time.Duration {
	return i.End.Sub(i.Start)
}

func (i Interval) String() string {
	return fmt.Sprintf("[%s, %s)", i.Start.UTC().Format(time.RFC3339), i.End.UTC().Format(time.RFC3339))
}
