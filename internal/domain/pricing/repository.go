package pricing

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// Repository is the read side the price use case depends on.
type Repository interface {
	GetService(ctx context.Context, serviceID uint) (*models.Service, error)

	// GetCurrentSubscription returns the client's active subscription
	// covering now, or nil.
	GetCurrentSubscription(ctx context.Context, clientID uint, now time.Time) (*models.Subscription, error)

	// GetPlanDiscount returns the discount row for the pair, or nil when
	// the plan does not cover the service.
	GetPlanDiscount(ctx context.Context, planID, serviceID uint) (*models.PlanDiscount, error)
}
