package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/interval"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Catalog
// --------------------------------------------------

func (r *AppointmentGormRepository) GetService(
	ctx context.Context,
	serviceID uint,
) (*models.Service, error) {

	var svc models.Service
	err := r.db.WithContext(ctx).
		Where("id = ? AND active = ?", serviceID, true).
		First(&svc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, httperr.ErrBusiness("service_not_found")
	}
	if err != nil {
		return nil, err
	}
	return &svc, nil
}

func (r *AppointmentGormRepository) GetBarber(
	ctx context.Context,
	barberID uint,
) (*models.User, error) {

	var barber models.User
	err := r.db.WithContext(ctx).
		Where("id = ? AND role = ? AND active = ?", barberID, models.RoleBarber, true).
		First(&barber).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, httperr.ErrBusiness("barber_not_found")
	}
	if err != nil {
		return nil, err
	}
	return &barber, nil
}

// --------------------------------------------------
// Appointment (read)
// --------------------------------------------------

func (r *AppointmentGormRepository) ListAppointments(
	ctx context.Context,
	barberID uint,
	start time.Time,
	end time.Time,
	exclude []domain.Status,
) ([]models.Appointment, error) {

	q := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Service").
		Where(
			"barber_id = ? AND scheduled_at < ? AND ends_at > ?",
			barberID,
			end.UTC(),
			start.UTC(),
		)
	if len(exclude) > 0 {
		q = q.Where("status NOT IN ?", statusStrings(exclude))
	}

	var apps []models.Appointment
	if err := q.Order("scheduled_at ASC").Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	appointmentID uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	err := r.db.WithContext(ctx).First(&ap, appointmentID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}
	if err != nil {
		return nil, err
	}
	return &ap, nil
}

// --------------------------------------------------
// Appointment (create / conflict)
// --------------------------------------------------

// InsertAppointment locks the barber row for the rest of the transaction so
// concurrent bookings for the same barber run the overlap check one at a
// time. SQLite has no row locks and relies on its single writer instead.
func (r *AppointmentGormRepository) InsertAppointment(
	ctx context.Context,
	ap *models.Appointment,
	payment *models.Payment,
) error {

	ap.ScheduledAt = ap.ScheduledAt.UTC()
	ap.EndsAt = interval.AddMinutes(ap.ScheduledAt, ap.DurationMinutes)
	requested := interval.Interval{Start: ap.ScheduledAt, End: ap.EndsAt}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var barber models.User
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id").
			First(&barber, ap.BarberID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return httperr.ErrBusiness("barber_not_found")
		}
		if err != nil {
			return fmt.Errorf("lock barber %d: %w", ap.BarberID, err)
		}

		var clash models.Appointment
		err = tx.Select("id").
			Where(
				"barber_id = ? AND status NOT IN ? AND scheduled_at < ? AND ends_at > ?",
				ap.BarberID,
				statusStrings(domain.BookingIgnoredStatuses),
				requested.End,
				requested.Start,
			).
			Order("scheduled_at ASC").
			First(&clash).Error
		switch {
		case err == nil:
			return &domain.SlotConflictError{BarberID: ap.BarberID, Requested: requested, ConflictingID: clash.ID}
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return fmt.Errorf("overlap check: %w", err)
		}

		if err := tx.Create(ap).Error; err != nil {
			if httperr.IsExclusionConflict(err) {
				return &domain.SlotConflictError{BarberID: ap.BarberID, Requested: requested}
			}
			return err
		}

		if payment == nil {
			return nil
		}
		payment.AppointmentID = ap.ID
		return tx.Create(payment).Error
	})
}

// --------------------------------------------------
// Appointment (state change)
// --------------------------------------------------

func (r *AppointmentGormRepository) UpdateAppointmentStatus(
	ctx context.Context,
	ap *models.Appointment,
	from domain.Status,
	action domain.Action,
	payment *domain.PaymentChange,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Appointment{}).
			Where("id = ? AND status = ?", ap.ID, string(from)).
			Updates(map[string]any{
				"status":        ap.Status,
				"checked_in_at": ap.CheckedInAt,
				"started_at":    ap.StartedAt,
				"finished_at":   ap.FinishedAt,
				"cancelled_at":  ap.CancelledAt,
			})
		if res.Error != nil {
			return res.Error
		}

		if res.RowsAffected == 0 {
			var current models.Appointment
			err := tx.Select("id", "status").First(&current, ap.ID).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return httperr.ErrBusiness("appointment_not_found")
			}
			if err != nil {
				return err
			}
			return &domain.InvalidTransitionError{
				AppointmentID: ap.ID,
				From:          domain.Status(current.Status),
				Action:        action,
			}
		}

		if payment == nil {
			return nil
		}
		return applyPayment(tx, ap.ID, payment)
	})
}

func applyPayment(tx *gorm.DB, appointmentID uint, change *domain.PaymentChange) error {
	updates := map[string]any{
		"status": change.Status,
		"amount": change.Amount,
	}
	if change.Method != "" {
		updates["method"] = change.Method
	}
	if change.ConfirmedAt != nil {
		updates["confirmed_at"] = change.ConfirmedAt
	}

	res := tx.Model(&models.Payment{}).
		Where("appointment_id = ?", appointmentID).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		return nil
	}

	// Appointments booked before payments were tracked have no row yet.
	return tx.Create(&models.Payment{
		AppointmentID: appointmentID,
		Amount:        change.Amount,
		Method:        change.Method,
		Status:        change.Status,
		ConfirmedAt:   change.ConfirmedAt,
	}).Error
}

func (r *AppointmentGormRepository) GetPayment(
	ctx context.Context,
	appointmentID uint,
) (*models.Payment, error) {

	var p models.Payment
	err := r.db.WithContext(ctx).Where("appointment_id = ?", appointmentID).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, httperr.ErrBusiness("payment_not_found")
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func statusStrings(in []domain.Status) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = string(s)
	}
	return out
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
