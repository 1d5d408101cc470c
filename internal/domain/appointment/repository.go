package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type Repository interface {
	// -------- Catalog --------
	GetService(
		ctx context.Context,
		serviceID uint,
	) (*models.Service, error)

	GetBarber(
		ctx context.Context,
		barberID uint,
	) (*models.User, error)

	// -------- Schedule --------
	ListSchedule(
		ctx context.Context,
		barberID uint,
	) ([]models.WeeklySchedule, error)

	ReplaceSchedule(
		ctx context.Context,
		barberID uint,
		entries []models.WeeklySchedule,
	) error

	// -------- Appointment (read) --------

	// ListAppointments returns the barber's appointments overlapping
	// [start, end), ordered by scheduled_at, minus those whose status is
	// in exclude.
	ListAppointments(
		ctx context.Context,
		barberID uint,
		start time.Time,
		end time.Time,
		exclude []Status,
	) ([]models.Appointment, error)

	GetAppointment(
		ctx context.Context,
		appointmentID uint,
	) (*models.Appointment, error)

	// -------- Appointment (create / conflict) --------

	// InsertAppointment re-checks for overlap and inserts ap and payment
	// atomically under a per-barber lock. It fails with *SlotConflictError
	// and writes nothing when the interval is taken.
	InsertAppointment(
		ctx context.Context,
		ap *models.Appointment,
		payment *models.Payment,
	) error

	// -------- Appointment (state change) --------

	// UpdateAppointmentStatus persists ap only if its stored status is
	// still from, applying payment in the same transaction. A lost race
	// fails with *InvalidTransitionError.
	UpdateAppointmentStatus(
		ctx context.Context,
		ap *models.Appointment,
		from Status,
		action Action,
		payment *PaymentChange,
	) error
}
