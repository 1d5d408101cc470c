package appointment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/interval"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	BarberID  uint
	ServiceID uint
	ClientID  uint

	Date  string
	Time  string
	Notes string

	ActorID *uint
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo   domain.Repository
	prices PriceQuoter
	locker Locker
	conv   *timezone.Converter
	audit  *audit.Dispatcher
	log    *slog.Logger
}

func NewCreateAppointment(
	repo domain.Repository,
	prices PriceQuoter,
	locker Locker,
	conv *timezone.Converter,
	audit *audit.Dispatcher,
	log *slog.Logger,
) *CreateAppointment {
	return &CreateAppointment{
		repo:   repo,
		prices: prices,
		locker: locker,
		conv:   conv,
		audit:  audit,
		log:    log,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	if in.BarberID == 0 || in.ServiceID == 0 || in.ClientID == 0 {
		return nil, httperr.ErrBusiness("invalid_request")
	}

	// --------------------------------------------------
	// 1. Civil date/time in the shop zone -> UTC
	// --------------------------------------------------
	date, err := timezone.ParseDate(in.Date)
	if err != nil {
		return nil, err
	}
	clock, err := timezone.ParseClock(in.Time)
	if err != nil {
		return nil, err
	}
	start := uc.conv.ToUTC(date, clock)

	now := uc.conv.Now()
	if !start.After(now) {
		return nil, httperr.ErrBusiness("slot_in_past")
	}

	// --------------------------------------------------
	// 2. Service (duration and price are snapshotted)
	// --------------------------------------------------
	svc, err := uc.repo.GetService(ctx, in.ServiceID)
	if err != nil {
		return nil, err
	}
	requested := interval.New(start, svc.DurationMinutes)

	// --------------------------------------------------
	// 3. Barber and working hours
	// --------------------------------------------------
	if _, err := uc.repo.GetBarber(ctx, in.BarberID); err != nil {
		return nil, err
	}

	schedule, err := uc.repo.ListSchedule(ctx, in.BarberID)
	if err != nil {
		return nil, err
	}
	entry := domain.ActiveEntry(schedule, int(date.Weekday()))
	if entry == nil {
		return nil, httperr.ErrBusiness("outside_working_hours")
	}
	window, err := domain.WorkingWindow(uc.conv, in.BarberID, date, entry)
	if err != nil {
		return nil, err
	}
	if !window.Contains(requested) {
		return nil, httperr.ErrBusiness("outside_working_hours")
	}

	// --------------------------------------------------
	// 4. Price at booking time
	// --------------------------------------------------
	quote, err := uc.prices.Quote(ctx, in.ClientID, svc, now)
	if err != nil {
		return nil, fmt.Errorf("resolve price: %w", err)
	}

	// --------------------------------------------------
	// 5. Conflict re-check + insert, one barber at a time
	// --------------------------------------------------
	unlock, err := uc.locker.Lock(ctx, fmt.Sprintf("barber:%d", in.BarberID))
	if err != nil {
		return nil, fmt.Errorf("acquire booking lock: %w", err)
	}
	defer unlock()

	ap := &domain.Appointment{
		ClientID:        in.ClientID,
		BarberID:        in.BarberID,
		ServiceID:       svc.ID,
		ScheduledAt:     start,
		DurationMinutes: svc.DurationMinutes,
		Price:           quote.AmountDue,
		Notes:           in.Notes,
		State:           domain.Scheduled{},
	}

	var row models.Appointment
	ap.Flatten(&row)

	err = uc.repo.InsertAppointment(ctx, &row, domain.InitialPayment(quote.AmountDue, now))

	var conflict *domain.SlotConflictError
	if errors.As(err, &conflict) {
		conflict.Date = date
		conflict.Time = clock
		conflict.Requested = requested

		uc.log.InfoContext(ctx, "slot conflict",
			"barber_id", in.BarberID,
			"date", date.String(),
			"time", clock.String(),
			"conflicting_id", conflict.ConflictingID,
		)
		uc.audit.Dispatch(audit.Event{
			UserID: in.ActorID,
			Action: "appointment_conflict",
			Entity: "appointment",
			Metadata: map[string]any{
				"barber_id": in.BarberID,
				"start":     requested.Start,
				"end":       requested.End,
			},
		})
		return nil, conflict
	}
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 6. Audit
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		UserID:   in.ActorID,
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &row.ID,
		Metadata: map[string]any{
			"amount_due": quote.AmountDue.StringFixed(2),
			"plan_id":    quote.PlanID,
		},
	})

	return &row, nil
}
