package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	PaymentPending   = "pendente"
	PaymentConfirmed = "confirmado"
	PaymentCancelled = "cancelado"

	PaymentMethodCash = "dinheiro"
	PaymentMethodPix  = "pix"
)

// Payment records what the client owes (and, once the appointment is
// finished, was charged) for one appointment.
type Payment struct {
	ID            uint `gorm:"primaryKey" json:"id"`
	AppointmentID uint `gorm:"uniqueIndex;not null" json:"appointment_id"`

	Amount      decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"amount"`
	Method      string          `gorm:"size:20" json:"method"`
	Status      string          `gorm:"size:20;not null" json:"status"`
	ConfirmedAt *time.Time      `json:"confirmed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
