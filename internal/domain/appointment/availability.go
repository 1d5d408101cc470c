package appointment

import (
	"iter"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/interval"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

type AvailabilityInput struct {
	BarberID  uint
	ServiceID uint
	Date      timezone.Date
}

// SlotQuery holds the snapshots slot generation works from.
type SlotQuery struct {
	BarberID       uint
	Date           timezone.Date
	ServiceMinutes int
	Granularity    int
	Schedule       []models.WeeklySchedule
	Appointments   []models.Appointment
	Now            time.Time
}

// GenerateSlots returns the bookable shop-local start times for q in
// ascending order. The sequence is lazy and may be ranged over any number
// of times. A ConfigurationError comes with an empty sequence.
func GenerateSlots(conv *timezone.Converter, q SlotQuery) (iter.Seq[timezone.Clock], error) {
	entry := ActiveEntry(q.Schedule, int(q.Date.Weekday()))
	if entry == nil {
		return noSlots, nil
	}

	if q.ServiceMinutes <= 0 {
		return noSlots, &ConfigurationError{BarberID: q.BarberID, Date: q.Date, Reason: "service duration must be positive"}
	}
	if q.Granularity <= 0 {
		return noSlots, &ConfigurationError{BarberID: q.BarberID, Date: q.Date, Reason: "slot granularity must be positive"}
	}

	window, err := WorkingWindow(conv, q.BarberID, q.Date, entry)
	if err != nil {
		return noSlots, err
	}

	busy := BusyIntervals(q.BarberID, q.Appointments)

	seq := func(yield func(timezone.Clock) bool) {
		for cand := window.Start; ; cand = interval.AddMinutes(cand, q.Granularity) {
			slot := interval.New(cand, q.ServiceMinutes)
			if !window.Contains(slot) {
				return
			}
			if !cand.After(q.Now) {
				continue
			}
			if overlapsAny(slot, busy) {
				continue
			}

			// On a fall-back day the same reading comes round twice and
			// booking it always resolves to the earlier instant. Only offer
			// readings that map back onto the candidate itself.
			date, clock := conv.ToCivil(cand)
			if !conv.ToUTC(date, clock).Equal(cand) {
				continue
			}

			if !yield(clock) {
				return
			}
		}
	}

	return seq, nil
}

// BusyIntervals collects the spans still held on barberID's agenda.
func BusyIntervals(barberID uint, appointments []models.Appointment) []interval.Interval {
	busy := make([]interval.Interval, 0, len(appointments))
	for _, ap := range appointments {
		if ap.BarberID != barberID || !Status(ap.Status).BlocksAvailability() {
			continue
		}
		busy = append(busy, interval.New(ap.ScheduledAt, ap.DurationMinutes))
	}
	return busy
}

// FirstConflict returns the first non-cancelled appointment that overlaps
// requested, or nil.
func FirstConflict(requested interval.Interval, appointments []models.Appointment) *models.Appointment {
	for i := range appointments {
		ap := &appointments[i]
		if !Status(ap.Status).BlocksBooking() {
			continue
		}
		if interval.Overlaps(requested, interval.New(ap.ScheduledAt, ap.DurationMinutes)) {
			return ap
		}
	}
	return nil
}

func overlapsAny(slot interval.Interval, busy []interval.Interval) bool {
	for _, b := range busy {
		if interval.Overlaps(slot, b) {
			return true
		}
	}
	return false
}

func noSlots(func(timezone.Clock) bool) {}
