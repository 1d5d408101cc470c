package timezone

import (
	"time"
)

const DefaultTimezone = "America/Sao_Paulo"

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

// Converter translates between the shop's civil calendar and UTC instants
// using the full tz database rules of one IANA zone. It is immutable and
// safe for concurrent use.
type Converter struct {
	zone string
	loc  *time.Location
	now  func() time.Time
}

func NewConverter(zone string) (*Converter, error) {
	if zone == "" {
		return nil, &ParseError{Kind: KindZone, Input: zone, Reason: "empty zone identifier"}
	}

	loc, err := time.LoadLocation(zone)
	if err != nil {
		return nil, &ParseError{Kind: KindZone, Input: zone, Reason: "unknown zone", Err: err}
	}

	return &Converter{zone: zone, loc: loc, now: time.Now}, nil
}

// WithClock returns a copy of the converter that reads "now" from clock.
func (c *Converter) WithClock(clock func() time.Time) *Converter {
	cp := *c
	cp.now = clock
	return &cp
}

func (c *Converter) Zone() string             { return c.zone }
func (c *Converter) Location() *time.Location { return c.loc }

// Now returns the current instant in UTC.
func (c *Converter) Now() time.Time {
	return c.now().UTC()
}

// Today is the shop-local civil date of the current instant.
func (c *Converter) Today() Date {
	d, _ := c.ToCivil(c.Now())
	return d
}

// ToUTC resolves a shop-local wall clock reading to a UTC instant.
//
// A reading that occurs twice (clocks set back) resolves to the earlier
// instant. A reading that never occurs (clocks set forward) is shifted
// forward by the length of the gap.
func (c *Converter) ToUTC(d Date, t Clock) time.Time {
	naive := time.Date(d.Year, d.Month, d.Day, t.Hour, t.Minute, 0, 0, time.UTC)

	var (
		best  time.Time
		found bool
	)
	for _, off := range c.offsetsAround(naive) {
		candidate := naive.Add(-time.Duration(off) * time.Second)
		if !sameWall(candidate.In(c.loc), naive) {
			continue
		}
		if !found || candidate.Before(best) {
			best, found = candidate, true
		}
	}
	if found {
		return best.UTC()
	}

	_, before := naive.Add(-24 * time.Hour).In(c.loc).Zone()
	return naive.Add(-time.Duration(before) * time.Second).UTC()
}

// ToCivil reads an instant on the shop's wall clock, truncated to the minute.
func (c *Converter) ToCivil(instant time.Time) (Date, Clock) {
	local := instant.In(c.loc)
	return DateOf(local), Clock{Hour: local.Hour(), Minute: local.Minute()}
}

// DayBoundsUTC returns the half-open UTC span [start, end) covered by the
// civil day d. The span is 23 or 25 hours wide on transition days.
func (c *Converter) DayBoundsUTC(d Date) (time.Time, time.Time) {
	midnight := Clock{}
	return c.ToUTC(d, midnight), c.ToUTC(d.AddDays(1), midnight)
}

// ParseCivil parses "YYYY-MM-DD" and "HH:MM" and resolves them to UTC.
func (c *Converter) ParseCivil(date, clock string) (time.Time, error) {
	d, err := ParseDate(date)
	if err != nil {
		return time.Time{}, err
	}
	t, err := ParseClock(clock)
	if err != nil {
		return time.Time{}, err
	}
	return c.ToUTC(d, t), nil
}

// offsetsAround lists the distinct UTC offsets the zone uses within a day
// of naive. Transitions are months apart, so this covers both sides.
func (c *Converter) offsetsAround(naive time.Time) []int {
	var offs []int
	for _, at := range []time.Time{naive.Add(-24 * time.Hour), naive, naive.Add(24 * time.Hour)} {
		_, off := at.In(c.loc).Zone()
		dup := false
		for _, o := range offs {
			if o == off {
				dup = true
				break
			}
		}
		if !dup {
			offs = append(offs, off)
		}
	}
	return offs
}

func sameWall(a, b time.Time) bool {
	return a.Year() == b.Year() &&
		a.Month() == b.Month() &&
		a.Day() == b.Day() &&
		a.Hour() == b.Hour() &&
		a.Minute() == b.Minute()
}
