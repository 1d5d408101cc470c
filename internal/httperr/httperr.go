package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Conflict(c *gin.Context, code, message string) {
	Write(c, http.StatusConflict, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

func Forbidden(c *gin.Context, code, message string) {
	Write(c, http.StatusForbidden, code, message)
}

// FromError writes the response matching a use-case error.
func FromError(c *gin.Context, err error) {
	var (
		parseErr    *timezone.ParseError
		invalidErr  *appointment.InvalidTransitionError
		conflictErr *appointment.SlotConflictError
		configErr   *appointment.ConfigurationError
		be          BusinessError
	)

	switch {
	case errors.As(err, &parseErr):
		BadRequest(c, "invalid_date_or_time", parseErr.Error())

	case errors.As(err, &invalidErr):
		c.JSON(http.StatusConflict, HTTPError{
			Code:    "invalid_transition",
			Message: invalidErr.Error(),
			Details: gin.H{
				"appointment_id": invalidErr.AppointmentID,
				"from":           invalidErr.From,
				"action":         invalidErr.Action,
			},
		})

	case errors.As(err, &conflictErr):
		c.JSON(http.StatusConflict, HTTPError{
			Code:    "SLOT_CONFLICT",
			Message: "horário não está mais disponível",
			Details: gin.H{
				"barber_id": conflictErr.BarberID,
				"date":      conflictErr.Date,
				"time":      conflictErr.Time,
				"start":     conflictErr.Requested.Start,
				"end":       conflictErr.Requested.End,
			},
		})

	case errors.As(err, &configErr):
		Write(c, http.StatusUnprocessableEntity, "schedule_misconfigured", configErr.Error())

	case IsNotFound(err):
		errors.As(err, &be)
		NotFound(c, be.Code, be.Code)

	case errors.As(err, &be):
		BadRequest(c, be.Code, be.Code)

	default:
		c.Error(err)
		Internal(c, "internal_error", "internal server error")
	}
}
