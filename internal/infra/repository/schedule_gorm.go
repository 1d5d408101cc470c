package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// --------------------------------------------------
// Weekly schedule
// --------------------------------------------------

func (r *AppointmentGormRepository) ListSchedule(
	ctx context.Context,
	barberID uint,
) ([]models.WeeklySchedule, error) {

	var entries []models.WeeklySchedule
	if err := r.db.WithContext(ctx).
		Where("barber_id = ?", barberID).
		Order("day_of_week ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// ReplaceSchedule swaps the barber's whole week in one transaction.
func (r *AppointmentGormRepository) ReplaceSchedule(
	ctx context.Context,
	barberID uint,
	entries []models.WeeklySchedule,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("barber_id = ?", barberID).
			Delete(&models.WeeklySchedule{}).Error; err != nil {
			return err
		}

		if len(entries) == 0 {
			return nil
		}

		rows := make([]models.WeeklySchedule, len(entries))
		for i, e := range entries {
			e.ID = 0
			e.BarberID = barberID
			rows[i] = e
		}
		return tx.Create(&rows).Error
	})
}
