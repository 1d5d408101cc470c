package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	ucAppointment "github.com/BruksfildServices01/barber-booking/internal/usecase/appointment"
)

type ScheduleHandler struct {
	get     *ucAppointment.GetSchedule
	replace *ucAppointment.ReplaceSchedule
}

func NewScheduleHandler(
	get *ucAppointment.GetSchedule,
	replace *ucAppointment.ReplaceSchedule,
) *ScheduleHandler {
	return &ScheduleHandler{
		get:     get,
		replace: replace,
	}
}

type ScheduleDay struct {
	DayOfWeek int    `json:"day_of_week" binding:"min=0,max=6"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
	IsActive  bool   `json:"is_active"`
}

type ScheduleUpdateRequest struct {
	Days []ScheduleDay `json:"days" binding:"required,dive"`
}

func (h *ScheduleHandler) Get(c *gin.Context) {
	barberID, ok := uintParam(c, "id")
	if !ok {
		return
	}

	entries, err := h.get.Execute(c.Request.Context(), barberID)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.List(c, entries)
}

func (h *ScheduleHandler) Update(c *gin.Context) {
	barberID, ok := uintParam(c, "id")
	if !ok {
		return
	}

	// Barbers manage only their own week.
	actor := middleware.UserID(c)
	if c.GetString(middleware.ContextUserRole) == models.RoleBarber && *actor != barberID {
		httperr.Forbidden(c, "forbidden", "Sem permissão.")
		return
	}

	var req ScheduleUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	entries := make([]models.WeeklySchedule, 0, len(req.Days))
	for _, d := range req.Days {
		entries = append(entries, models.WeeklySchedule{
			BarberID:  barberID,
			DayOfWeek: d.DayOfWeek,
			StartTime: d.StartTime,
			EndTime:   d.EndTime,
			IsActive:  d.IsActive,
		})
	}

	saved, err := h.replace.Execute(c.Request.Context(), barberID, entries, actor)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.List(c, saved)
}
