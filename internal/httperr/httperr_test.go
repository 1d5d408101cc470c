package httperr_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/interval"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func render(err error) (*httptest.ResponseRecorder, map[string]any) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	httperr.FromError(c, err)

	var body map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	return w, body
}

func TestFromError(t *testing.T) {
	_, parseErr := timezone.ParseDate("2026-02-30")
	require.Error(t, parseErr)

	date, _ := timezone.ParseDate("2026-03-02")
	clock, _ := timezone.ParseClock("14:00")

	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"parse", parseErr, http.StatusBadRequest, "invalid_date_or_time"},
		{"transition", &appointment.InvalidTransitionError{AppointmentID: 1, From: appointment.StatusFinished, Action: appointment.ActionCancel}, http.StatusConflict, "invalid_transition"},
		{"conflict", &appointment.SlotConflictError{BarberID: 7, Date: date, Time: clock}, http.StatusConflict, "SLOT_CONFLICT"},
		{"wrapped conflict", fmt.Errorf("create: %w", &appointment.SlotConflictError{BarberID: 7}), http.StatusConflict, "SLOT_CONFLICT"},
		{"configuration", &appointment.ConfigurationError{BarberID: 7, Reason: "end before start"}, http.StatusUnprocessableEntity, "schedule_misconfigured"},
		{"not found", httperr.ErrBusiness("barber_not_found"), http.StatusNotFound, "barber_not_found"},
		{"business", httperr.ErrBusiness("slot_in_past"), http.StatusBadRequest, "slot_in_past"},
		{"unknown", errors.New("db gone"), http.StatusInternalServerError, "internal_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, body := render(tt.err)
			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.code, body["error_code"])
		})
	}
}

func TestFromError_ConflictDetails(t *testing.T) {
	date, _ := timezone.ParseDate("2026-03-02")
	clock, _ := timezone.ParseClock("14:00")

	start := time.Date(2026, 3, 2, 17, 0, 0, 0, time.UTC)

	_, body := render(&appointment.SlotConflictError{
		BarberID:  7,
		Date:      date,
		Time:      clock,
		Requested: interval.New(start, 45),
	})

	details, ok := body["details"].(map[string]any)
	require.True(t, ok)
	assert.EqualValues(t, 7, details["barber_id"])
	assert.Equal(t, "2026-03-02", details["date"])
	assert.Equal(t, "14:00", details["time"])
	assert.Equal(t, "2026-03-02T17:00:00Z", details["start"])
	assert.Equal(t, "2026-03-02T17:45:00Z", details["end"])
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, httperr.IsNotFound(httperr.ErrBusiness("appointment_not_found")))
	assert.True(t, httperr.IsNotFound(fmt.Errorf("x: %w", httperr.ErrBusiness("service_not_found"))))
	assert.False(t, httperr.IsNotFound(httperr.ErrBusiness("invalid_request")))
	assert.False(t, httperr.IsNotFound(errors.New("service_not_found")))
}

func TestIsExclusionConflict(t *testing.T) {
	assert.True(t, httperr.IsExclusionConflict(&pgconn.PgError{Code: "23P01", ConstraintName: "appointments_barber_no_overlap"}))
	assert.True(t, httperr.IsExclusionConflict(fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})))
	assert.False(t, httperr.IsExclusionConflict(&pgconn.PgError{Code: "23503"}))
	assert.False(t, httperr.IsExclusionConflict(errors.New("23P01")))
}
