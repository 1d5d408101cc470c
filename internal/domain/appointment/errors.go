package appointment

import (
	"fmt"

	"github.com/BruksfildServices01/barber-booking/internal/interval"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

// InvalidTransitionError is returned for a lifecycle move that is not legal
// from the appointment's current status.
type InvalidTransitionError struct {
	AppointmentID uint
	From          Status
	Action        Action
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("appointment %d: cannot %s from status %s", e.AppointmentID, e.Action, e.From)
}

// SlotConflictError is returned when the requested interval overlaps an
// appointment that still holds the barber's time.
type SlotConflictError struct {
	BarberID      uint
	Date          timezone.Date
	Time          timezone.Clock
	Requested     interval.Interval
	ConflictingID uint
}

func (e *SlotConflictError) Error() string {
	return fmt.Sprintf("barber %d: slot %s %s %s is no longer available", e.BarberID, e.Date, e.Time, e.Requested)
}

// ConfigurationError flags a schedule or setting that cannot produce a
// working window. Slot listing treats it as "no availability".
type ConfigurationError struct {
	BarberID uint
	Date     timezone.Date
	Reason   string
}

func (e *ConfigurationError) Error() string {
	if e.Date == (timezone.Date{}) {
		return fmt.Sprintf("barber %d: %s", e.BarberID, e.Reason)
	}
	return fmt.Sprintf("barber %d on %s: %s", e.BarberID, e.Date, e.Reason)
}
