package appointment

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// PaymentChange is the billing side effect of a lifecycle transition.
type PaymentChange struct {
	Status      string
	Amount      decimal.Decimal
	Method      string
	ConfirmedAt *time.Time
}

// InitialPayment is recorded next to a new booking. Free bookings are
// settled immediately.
func InitialPayment(amount decimal.Decimal, now time.Time) *models.Payment {
	p := &models.Payment{
		Amount: amount,
		Method: methodFor(amount),
		Status: models.PaymentPending,
	}
	if amount.IsZero() {
		p.Status = models.PaymentConfirmed
		p.ConfirmedAt = &now
	}
	return p
}

// PaymentEffect returns the payment update that must accompany action, or
// nil when the transition does not touch billing. Finishing makes the price
// quoted at booking the authoritative charge.
func PaymentEffect(a *Appointment, action Action, now time.Time) *PaymentChange {
	switch action {
	case ActionFinish:
		return &PaymentChange{
			Status:      models.PaymentConfirmed,
			Amount:      a.Price,
			Method:      methodFor(a.Price),
			ConfirmedAt: &now,
		}
	case ActionCancel:
		return &PaymentChange{
			Status: models.PaymentCancelled,
			Amount: a.Price,
		}
	}
	return nil
}

func methodFor(amount decimal.Decimal) string {
	if amount.IsZero() {
		return models.PaymentMethodPix
	}
	return models.PaymentMethodCash
}
