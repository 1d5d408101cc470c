package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/dto"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

type ListAppointmentsByMonth struct {
	repo domain.Repository
	conv *timezone.Converter
}

func NewListAppointmentsByMonth(
	repo domain.Repository,
	conv *timezone.Converter,
) *ListAppointmentsByMonth {
	return &ListAppointmentsByMonth{
		repo: repo,
		conv: conv,
	}
}

func (uc *ListAppointmentsByMonth) Execute(
	ctx context.Context,
	barberID uint,
	year int,
	month int,
) ([]dto.AppointmentListDTO, error) {

	if year < 2000 || year > 2100 || month < 1 || month > 12 {
		return nil, httperr.ErrBusiness("invalid_month")
	}

	first := timezone.Date{Year: year, Month: time.Month(month), Day: 1}
	next := timezone.DateOf(time.Date(year, time.Month(month)+1, 1, 0, 0, 0, 0, time.UTC))

	start, _ := uc.conv.DayBoundsUTC(first)
	end, _ := uc.conv.DayBoundsUTC(next)

	return listStartingIn(ctx, uc.repo, uc.conv, barberID, start, end)
}
