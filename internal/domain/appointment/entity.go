package appointment

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/barber-booking/internal/interval"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// Appointment is the in-memory form of a booking with its lifecycle held as
// a State variant. Persist it through Flatten.
type Appointment struct {
	ID        uint
	ClientID  uint
	BarberID  uint
	ServiceID uint

	ScheduledAt     time.Time
	DurationMinutes int
	Price           decimal.Decimal
	Notes           string

	State State
}

func (a *Appointment) Status() Status {
	return a.State.Status()
}

// Interval is the span the appointment occupies on the barber's agenda.
func (a *Appointment) Interval() interval.Interval {
	return interval.New(a.ScheduledAt, a.DurationMinutes)
}

// FromModel rebuilds the state variant from the flattened row. Timestamps
// missing from legacy rows are left as zero values.
func FromModel(m *models.Appointment) (*Appointment, error) {
	a := &Appointment{
		ID:              m.ID,
		ClientID:        m.ClientID,
		BarberID:        m.BarberID,
		ServiceID:       m.ServiceID,
		ScheduledAt:     m.ScheduledAt.UTC(),
		DurationMinutes: m.DurationMinutes,
		Price:           m.PriceAmount,
		Notes:           m.Notes,
	}

	switch Status(m.Status) {
	case StatusScheduled:
		a.State = Scheduled{}
	case StatusWaiting:
		a.State = Waiting{CheckedInAt: deref(m.CheckedInAt)}
	case StatusInService:
		a.State = InService{CheckedInAt: deref(m.CheckedInAt), StartedAt: deref(m.StartedAt)}
	case StatusFinished:
		a.State = Finished{
			CheckedInAt: deref(m.CheckedInAt),
			StartedAt:   deref(m.StartedAt),
			FinishedAt:  deref(m.FinishedAt),
		}
	case StatusCancelled:
		a.State = Cancelled{CheckedInAt: m.CheckedInAt, CancelledAt: m.CancelledAt}
	default:
		return nil, fmt.Errorf("appointment %d: unknown status %q", m.ID, m.Status)
	}

	return a, nil
}

// Flatten writes the appointment into its persisted row form.
func (a *Appointment) Flatten(m *models.Appointment) {
	m.ID = a.ID
	m.ClientID = a.ClientID
	m.BarberID = a.BarberID
	m.ServiceID = a.ServiceID
	m.ScheduledAt = a.ScheduledAt
	m.DurationMinutes = a.DurationMinutes
	m.EndsAt = a.Interval().End
	m.PriceAmount = a.Price
	m.Notes = a.Notes
	m.Status = string(a.Status())

	m.CheckedInAt, m.StartedAt, m.FinishedAt, m.CancelledAt = nil, nil, nil, nil

	switch s := a.State.(type) {
	case Waiting:
		m.CheckedInAt = ptr(s.CheckedInAt)
	case InService:
		m.CheckedInAt = ptr(s.CheckedInAt)
		m.StartedAt = ptr(s.StartedAt)
	case Finished:
		m.CheckedInAt = ptr(s.CheckedInAt)
		m.StartedAt = ptr(s.StartedAt)
		m.FinishedAt = ptr(s.FinishedAt)
	case Cancelled:
		m.CheckedInAt = s.CheckedInAt
		m.CancelledAt = s.CancelledAt
	}
}

// ===============================
// Domain Actions
// ===============================

func (a *Appointment) CheckIn(now time.Time) error {
	if _, ok := a.State.(Scheduled); !ok {
		return a.invalid(ActionCheckIn)
	}
	a.State = Waiting{CheckedInAt: now}
	return nil
}

func (a *Appointment) Start(now time.Time) error {
	s, ok := a.State.(Waiting)
	if !ok {
		return a.invalid(ActionStart)
	}
	a.State = InService{CheckedInAt: s.CheckedInAt, StartedAt: now}
	return nil
}

func (a *Appointment) Finish(now time.Time) error {
	s, ok := a.State.(InService)
	if !ok {
		return a.invalid(ActionFinish)
	}
	a.State = Finished{CheckedInAt: s.CheckedInAt, StartedAt: s.StartedAt, FinishedAt: now}
	return nil
}

func (a *Appointment) Cancel(now time.Time) error {
	switch s := a.State.(type) {
	case Scheduled:
		a.State = Cancelled{CancelledAt: &now}
	case Waiting:
		a.State = Cancelled{CheckedInAt: ptr(s.CheckedInAt), CancelledAt: &now}
	default:
		return a.invalid(ActionCancel)
	}
	return nil
}

// Apply dispatches action to the matching transition.
func (a *Appointment) Apply(action Action, now time.Time) error {
	switch action {
	case ActionCheckIn:
		return a.CheckIn(now)
	case ActionStart:
		return a.Start(now)
	case ActionFinish:
		return a.Finish(now)
	case ActionCancel:
		return a.Cancel(now)
	}
	return a.invalid(action)
}

func (a *Appointment) invalid(action Action) error {
	return &InvalidTransitionError{AppointmentID: a.ID, From: a.Status(), Action: action}
}

func deref(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return t.UTC()
}

func ptr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
