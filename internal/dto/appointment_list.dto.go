package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

type AppointmentListDTO struct {
	ID          uint            `json:"id"`
	Date        timezone.Date   `json:"date"`
	Time        timezone.Clock  `json:"time"`
	ScheduledAt time.Time       `json:"scheduled_at"`
	EndsAt      time.Time       `json:"ends_at"`
	Status      string          `json:"status"`
	ClientName  string          `json:"client_name"`
	ServiceName string          `json:"service_name"`
	Price       decimal.Decimal `json:"price"`
}

// NewAppointmentList renders rows with their shop-local start.
func NewAppointmentList(conv *timezone.Converter, rows []models.Appointment) []AppointmentListDTO {
	out := make([]AppointmentListDTO, 0, len(rows))
	for _, ap := range rows {
		date, clock := conv.ToCivil(ap.ScheduledAt)
		item := AppointmentListDTO{
			ID:          ap.ID,
			Date:        date,
			Time:        clock,
			ScheduledAt: ap.ScheduledAt.UTC(),
			EndsAt:      ap.EndsAt.UTC(),
			Status:      ap.Status,
			Price:       ap.PriceAmount,
		}
		if ap.Client != nil {
			item.ClientName = ap.Client.Name
		}
		if ap.Service != nil {
			item.ServiceName = ap.Service.Name
		}
		out = append(out, item)
	}
	return out
}
