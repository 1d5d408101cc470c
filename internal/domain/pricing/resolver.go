package pricing

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

var hundred = decimal.NewFromInt(100)

// Input is everything Resolve needs. Subscription and Discount are the
// client's current subscription and its plan's discount for the service,
// either of which may be nil.
type Input struct {
	ClientID     uint
	ServiceID    uint
	BasePrice    decimal.Decimal
	Now          time.Time
	Subscription *models.Subscription
	Discount     *models.PlanDiscount
}

// Quote is the resolved amount due together with how it was reached.
type Quote struct {
	ServiceID          uint            `json:"service_id"`
	ClientID           uint            `json:"client_id,omitempty"`
	BasePrice          decimal.Decimal `json:"base_price"`
	AmountDue          decimal.Decimal `json:"amount_due"`
	IsDiscounted       bool            `json:"is_discounted"`
	IsFree             bool            `json:"is_free"`
	PlanID             *uint           `json:"plan_id,omitempty"`
	DiscountPercentage decimal.Decimal `json:"discount_percentage"`
}

// Resolve computes the amount owed for one service. It reads nothing but
// its input, so identical inputs always give identical quotes.
func Resolve(in Input) Quote {
	q := Quote{
		ServiceID:          in.ServiceID,
		ClientID:           in.ClientID,
		BasePrice:          in.BasePrice.Round(2),
		AmountDue:          in.BasePrice.Round(2),
		DiscountPercentage: decimal.Zero,
	}

	if !Current(in.Subscription, in.ClientID, in.Now) {
		return q
	}
	d := in.Discount
	if d == nil || d.PlanID != in.Subscription.PlanID || d.ServiceID != in.ServiceID {
		return q
	}

	planID := d.PlanID
	q.PlanID = &planID

	if d.IsFree {
		q.AmountDue = decimal.Zero.Round(2)
		q.IsFree = true
		q.IsDiscounted = true
		q.DiscountPercentage = hundred
		return q
	}

	pct := clampPercentage(d.DiscountPercentage)
	if pct.IsZero() {
		return q
	}

	factor := decimal.NewFromInt(1).Sub(pct.Div(hundred))
	q.AmountDue = in.BasePrice.Mul(factor).Round(2)
	q.IsDiscounted = true
	q.DiscountPercentage = pct
	return q
}

// Current reports whether sub is an active subscription of clientID whose
// period contains now. The period is half-open.
func Current(sub *models.Subscription, clientID uint, now time.Time) bool {
	if sub == nil || sub.ClientID != clientID || sub.Status != models.SubscriptionActive {
		return false
	}
	return !now.Before(sub.CurrentPeriodStart) && now.Before(sub.CurrentPeriodEnd)
}

func clampPercentage(p decimal.Decimal) decimal.Decimal {
	if p.IsNegative() {
		return decimal.Zero
	}
	if p.GreaterThan(hundred) {
		return hundred
	}
	return p
}
