package appointment

import (
	"fmt"

	"github.com/BruksfildServices01/barber-booking/internal/interval"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

// ActiveEntry returns the active schedule entry for weekday, or nil when
// the barber does not work that day.
func ActiveEntry(schedule []models.WeeklySchedule, weekday int) *models.WeeklySchedule {
	for i := range schedule {
		if schedule[i].IsActive && schedule[i].DayOfWeek == weekday {
			return &schedule[i]
		}
	}
	return nil
}

// WorkingWindow converts entry's shop-local hours on date into a UTC
// interval. The conversion is done per date so transition days get their
// real width.
func WorkingWindow(
	conv *timezone.Converter,
	barberID uint,
	date timezone.Date,
	entry *models.WeeklySchedule,
) (interval.Interval, error) {

	start, err := timezone.ParseClock(entry.StartTime)
	if err != nil {
		return interval.Interval{}, &ConfigurationError{BarberID: barberID, Date: date, Reason: "invalid start_time " + entry.StartTime}
	}
	end, err := timezone.ParseClock(entry.EndTime)
	if err != nil {
		return interval.Interval{}, &ConfigurationError{BarberID: barberID, Date: date, Reason: "invalid end_time " + entry.EndTime}
	}

	window := interval.Interval{
		Start: conv.ToUTC(date, start),
		End:   conv.ToUTC(date, end),
	}
	if window.Empty() {
		return interval.Interval{}, &ConfigurationError{
			BarberID: barberID,
			Date:     date,
			Reason:   fmt.Sprintf("working window %s-%s is empty", entry.StartTime, entry.EndTime),
		}
	}

	return window, nil
}

// ValidateSchedule checks a full weekly schedule before it replaces the
// stored one.
func ValidateSchedule(barberID uint, entries []models.WeeklySchedule) error {
	seen := make(map[int]bool, len(entries))

	for _, e := range entries {
		if e.DayOfWeek < 0 || e.DayOfWeek > 6 {
			return &ConfigurationError{BarberID: barberID, Reason: fmt.Sprintf("day_of_week %d out of range", e.DayOfWeek)}
		}

		start, err := timezone.ParseClock(e.StartTime)
		if err != nil {
			return &ConfigurationError{BarberID: barberID, Reason: "invalid start_time " + e.StartTime}
		}
		end, err := timezone.ParseClock(e.EndTime)
		if err != nil {
			return &ConfigurationError{BarberID: barberID, Reason: "invalid end_time " + e.EndTime}
		}

		if !e.IsActive {
			continue
		}
		if end.Minutes() <= start.Minutes() {
			return &ConfigurationError{BarberID: barberID, Reason: fmt.Sprintf("day %d: end_time must be after start_time", e.DayOfWeek)}
		}
		if seen[e.DayOfWeek] {
			return &ConfigurationError{BarberID: barberID, Reason: fmt.Sprintf("day %d has more than one active entry", e.DayOfWeek)}
		}
		seen[e.DayOfWeek] = true
	}

	return nil
}
