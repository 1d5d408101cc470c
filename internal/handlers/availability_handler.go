package handlers

import (
	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
	ucAppointment "github.com/BruksfildServices01/barber-booking/internal/usecase/appointment"
)

type AvailabilityHandler struct {
	uc *ucAppointment.GetAvailability
}

func NewAvailabilityHandler(uc *ucAppointment.GetAvailability) *AvailabilityHandler {
	return &AvailabilityHandler{uc: uc}
}

type AvailableSlotsResponse struct {
	BarberID  uint             `json:"barber_id"`
	ServiceID uint             `json:"service_id"`
	Date      timezone.Date    `json:"date"`
	Slots     []timezone.Clock `json:"slots"`
}

func (h *AvailabilityHandler) AvailableSlots(c *gin.Context) {
	barberID, ok := uintParam(c, "id")
	if !ok {
		return
	}
	serviceID, ok := uintQuery(c, "service_id")
	if !ok {
		return
	}

	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "Data obrigatória.")
		return
	}
	date, err := timezone.ParseDate(dateStr)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	slots, err := h.uc.Execute(c.Request.Context(), domain.AvailabilityInput{
		BarberID:  barberID,
		ServiceID: serviceID,
		Date:      date,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, AvailableSlotsResponse{
		BarberID:  barberID,
		ServiceID: serviceID,
		Date:      date,
		Slots:     slots,
	})
}
