package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/domain/pricing"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// Locker serialises bookings that share a key. The returned func releases
// the key.
type Locker interface {
	Lock(ctx context.Context, key string) (func(), error)
}

// PriceQuoter resolves what a client owes for a service at a given instant.
type PriceQuoter interface {
	Quote(ctx context.Context, clientID uint, svc *models.Service, now time.Time) (pricing.Quote, error)
}
