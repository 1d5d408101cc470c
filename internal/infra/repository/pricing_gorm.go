package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/domain/pricing"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// --------------------------------------------------
// Subscriptions / plan discounts
// --------------------------------------------------

func (r *AppointmentGormRepository) GetCurrentSubscription(
	ctx context.Context,
	clientID uint,
	now time.Time,
) (*models.Subscription, error) {

	var sub models.Subscription
	err := r.db.WithContext(ctx).
		Joins("JOIN plans ON plans.id = subscriptions.plan_id AND plans.is_active = ?", true).
		Where(
			"subscriptions.client_id = ? AND subscriptions.status = ? AND subscriptions.current_period_start <= ? AND subscriptions.current_period_end > ?",
			clientID,
			models.SubscriptionActive,
			now.UTC(),
			now.UTC(),
		).
		Order("subscriptions.current_period_end DESC").
		First(&sub).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *AppointmentGormRepository) GetPlanDiscount(
	ctx context.Context,
	planID uint,
	serviceID uint,
) (*models.PlanDiscount, error) {

	var d models.PlanDiscount
	err := r.db.WithContext(ctx).
		Where("plan_id = ? AND service_id = ?", planID, serviceID).
		First(&d).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

var _ pricing.Repository = (*AppointmentGormRepository)(nil)
