package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/dto"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

type ListAppointmentsByDate struct {
	repo domain.Repository
	conv *timezone.Converter
}

func NewListAppointmentsByDate(
	repo domain.Repository,
	conv *timezone.Converter,
) *ListAppointmentsByDate {
	return &ListAppointmentsByDate{
		repo: repo,
		conv: conv,
	}
}

// Execute lists every appointment, whatever its status, that starts on the
// shop-local date.
func (uc *ListAppointmentsByDate) Execute(
	ctx context.Context,
	barberID uint,
	date timezone.Date,
) ([]dto.AppointmentListDTO, error) {

	start, end := uc.conv.DayBoundsUTC(date)
	return listStartingIn(ctx, uc.repo, uc.conv, barberID, start, end)
}

func listStartingIn(
	ctx context.Context,
	repo domain.Repository,
	conv *timezone.Converter,
	barberID uint,
	start time.Time,
	end time.Time,
) ([]dto.AppointmentListDTO, error) {

	if _, err := repo.GetBarber(ctx, barberID); err != nil {
		return nil, err
	}

	appointments, err := repo.ListAppointments(ctx, barberID, start, end, nil)
	if err != nil {
		return nil, err
	}

	// The overlap query also returns bookings that started the day before.
	kept := appointments[:0]
	for _, ap := range appointments {
		if !ap.ScheduledAt.Before(start) {
			kept = append(kept, ap)
		}
	}

	return dto.NewAppointmentList(conv, kept), nil
}
