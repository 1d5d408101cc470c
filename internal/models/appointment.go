package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Appointment is the flattened, persisted form of an appointment: a status
// plus one nullable timestamp per lifecycle step.
type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ClientID uint  `gorm:"index;not null" json:"client_id"`
	Client   *User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"client,omitempty"`

	BarberID uint  `gorm:"index:idx_appointments_barber_window,priority:1;not null" json:"barber_id"`
	Barber   *User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"barber,omitempty"`

	ServiceID uint     `gorm:"not null" json:"service_id"`
	Service   *Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"service,omitempty"`

	ScheduledAt     time.Time `gorm:"index:idx_appointments_barber_window,priority:2;not null" json:"scheduled_at"`
	DurationMinutes int       `gorm:"not null" json:"duration_minutes"`
	EndsAt          time.Time `gorm:"not null" json:"ends_at"`

	Status string `gorm:"size:20;default:'agendado';index" json:"status"`

	PriceAmount decimal.Decimal `gorm:"type:numeric(10,2);not null;default:0" json:"price_amount"`

	CheckedInAt *time.Time `json:"checked_in_at"`
	StartedAt   *time.Time `json:"started_at"`
	FinishedAt  *time.Time `json:"finished_at"`
	CancelledAt *time.Time `json:"cancelled_at"`

	Notes string `gorm:"size:255" json:"notes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
