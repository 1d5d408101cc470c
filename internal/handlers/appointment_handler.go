package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
	ucAppointment "github.com/BruksfildServices01/barber-booking/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	create      *ucAppointment.CreateAppointment
	checkIn     *ucAppointment.TransitionAppointment
	start       *ucAppointment.TransitionAppointment
	finish      *ucAppointment.TransitionAppointment
	cancel      *ucAppointment.TransitionAppointment
	listByDate  *ucAppointment.ListAppointmentsByDate
	listByMonth *ucAppointment.ListAppointmentsByMonth
}

func NewAppointmentHandler(
	create *ucAppointment.CreateAppointment,
	checkIn *ucAppointment.TransitionAppointment,
	start *ucAppointment.TransitionAppointment,
	finish *ucAppointment.TransitionAppointment,
	cancel *ucAppointment.TransitionAppointment,
	listByDate *ucAppointment.ListAppointmentsByDate,
	listByMonth *ucAppointment.ListAppointmentsByMonth,
) *AppointmentHandler {
	return &AppointmentHandler{
		create:      create,
		checkIn:     checkIn,
		start:       start,
		finish:      finish,
		cancel:      cancel,
		listByDate:  listByDate,
		listByMonth: listByMonth,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	BarberID  uint   `json:"barber_id" binding:"required"`
	ServiceID uint   `json:"service_id" binding:"required"`
	ClientID  uint   `json:"client_id"`
	Date      string `json:"date" binding:"required"` // YYYY-MM-DD
	Time      string `json:"time" binding:"required"` // HH:MM
	Notes     string `json:"notes" binding:"max=255"`
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	actor := middleware.UserID(c)

	// Clients always book for themselves.
	clientID := req.ClientID
	if c.GetString(middleware.ContextUserRole) == models.RoleClient {
		clientID = *actor
	}
	if clientID == 0 {
		httperr.BadRequest(c, "missing_client_id", "Cliente obrigatório.")
		return
	}

	ap, err := h.create.Execute(c.Request.Context(), ucAppointment.CreateAppointmentInput{
		BarberID:  req.BarberID,
		ServiceID: req.ServiceID,
		ClientID:  clientID,
		Date:      req.Date,
		Time:      req.Time,
		Notes:     req.Notes,
		ActorID:   actor,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.Created(c, ap)
}

// ======================================================
// LIFECYCLE
// ======================================================

func (h *AppointmentHandler) CheckIn(c *gin.Context) { h.transition(c, h.checkIn) }
func (h *AppointmentHandler) Start(c *gin.Context)   { h.transition(c, h.start) }
func (h *AppointmentHandler) Finish(c *gin.Context)  { h.transition(c, h.finish) }
func (h *AppointmentHandler) Cancel(c *gin.Context)  { h.transition(c, h.cancel) }

func (h *AppointmentHandler) transition(c *gin.Context, uc *ucAppointment.TransitionAppointment) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	ap, err := uc.Execute(c.Request.Context(), id, middleware.UserID(c))
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, ap)
}

// ======================================================
// LIST
// ======================================================

func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	barberID, ok := uintParam(c, "id")
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

	items, err := h.listByDate.Execute(c.Request.Context(), barberID, date)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.List(c, items)
}

func (h *AppointmentHandler) ListByMonth(c *gin.Context) {
	barberID, ok := uintParam(c, "id")
	if !ok {
		return
	}

	year, err := strconv.Atoi(c.Query("year"))
	if err != nil {
		httperr.BadRequest(c, "invalid_year", "Ano inválido.")
		return
	}
	month, err := strconv.Atoi(c.Query("month"))
	if err != nil {
		httperr.BadRequest(c, "invalid_month", "Mês inválido.")
		return
	}

	items, err := h.listByMonth.Execute(c.Request.Context(), barberID, year, month)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"year":         year,
		"month":        month,
		"appointments": items,
	})
}
