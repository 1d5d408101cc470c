package appointment

import (
	"context"
	"errors"
	"log/slog"
	"slices"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

type GetAvailability struct {
	repo        domain.Repository
	conv        *timezone.Converter
	granularity int
	log         *slog.Logger
}

func NewGetAvailability(
	repo domain.Repository,
	conv *timezone.Converter,
	granularity int,
	log *slog.Logger,
) *GetAvailability {
	return &GetAvailability{
		repo:        repo,
		conv:        conv,
		granularity: granularity,
		log:         log,
	}
}

// Execute lists the bookable start times. A misconfigured schedule is
// logged and reported as a day without availability.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) ([]timezone.Clock, error) {

	svc, err := uc.repo.GetService(ctx, in.ServiceID)
	if err != nil {
		return nil, err
	}
	if _, err := uc.repo.GetBarber(ctx, in.BarberID); err != nil {
		return nil, err
	}

	schedule, err := uc.repo.ListSchedule(ctx, in.BarberID)
	if err != nil {
		return nil, err
	}
	if domain.ActiveEntry(schedule, int(in.Date.Weekday())) == nil {
		return []timezone.Clock{}, nil
	}

	dayStart, dayEnd := uc.conv.DayBoundsUTC(in.Date)
	appointments, err := uc.repo.ListAppointments(
		ctx,
		in.BarberID,
		dayStart,
		dayEnd,
		domain.NonBlockingStatuses,
	)
	if err != nil {
		return nil, err
	}

	seq, err := domain.GenerateSlots(uc.conv, domain.SlotQuery{
		BarberID:       in.BarberID,
		Date:           in.Date,
		ServiceMinutes: svc.DurationMinutes,
		Granularity:    uc.granularity,
		Schedule:       schedule,
		Appointments:   appointments,
		Now:            uc.conv.Now(),
	})

	var cfgErr *domain.ConfigurationError
	if errors.As(err, &cfgErr) {
		uc.log.WarnContext(ctx, "no availability: schedule misconfigured",
			"barber_id", cfgErr.BarberID,
			"date", in.Date.String(),
			"reason", cfgErr.Reason,
		)
		return []timezone.Clock{}, nil
	}
	if err != nil {
		return nil, err
	}

	slots := slices.Collect(seq)
	if slots == nil {
		slots = []timezone.Clock{}
	}
	return slots, nil
}
