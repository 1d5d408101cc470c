package pricing

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/pricing"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type ResolvePriceInput struct {
	ClientID  uint
	ServiceID uint
}

type ResolvePrice struct {
	repo domain.Repository
	now  func() time.Time
}

func NewResolvePrice(
	repo domain.Repository,
	now func() time.Time,
) *ResolvePrice {
	return &ResolvePrice{
		repo: repo,
		now:  now,
	}
}

func (uc *ResolvePrice) Execute(
	ctx context.Context,
	in ResolvePriceInput,
) (domain.Quote, error) {

	svc, err := uc.repo.GetService(ctx, in.ServiceID)
	if err != nil {
		return domain.Quote{}, err
	}

	return uc.Quote(ctx, in.ClientID, svc, uc.now())
}

// Quote loads the client's billing snapshot and resolves the amount due for
// svc at now. A zero clientID (anonymous caller) always gets the base price.
func (uc *ResolvePrice) Quote(
	ctx context.Context,
	clientID uint,
	svc *models.Service,
	now time.Time,
) (domain.Quote, error) {

	in := domain.Input{
		ClientID:  clientID,
		ServiceID: svc.ID,
		BasePrice: svc.Price,
		Now:       now,
	}

	if clientID != 0 {
		sub, err := uc.repo.GetCurrentSubscription(ctx, clientID, now)
		if err != nil {
			return domain.Quote{}, err
		}
		if sub != nil {
			discount, err := uc.repo.GetPlanDiscount(ctx, sub.PlanID, svc.ID)
			if err != nil {
				return domain.Quote{}, err
			}
			in.Subscription = sub
			in.Discount = discount
		}
	}

	return domain.Resolve(in), nil
}
