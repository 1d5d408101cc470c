package models

import "time"

const (
	SubscriptionActive   = "active"
	SubscriptionInactive = "inactive"
	SubscriptionExpired  = "expired"
)

type Subscription struct {
	ID       uint  `gorm:"primaryKey" json:"id"`
	ClientID uint  `gorm:"index;not null" json:"client_id"`
	PlanID   uint  `gorm:"not null" json:"plan_id"`
	Plan     *Plan `json:"plan,omitempty"`

	Status             string    `gorm:"size:20;not null;index" json:"status"`
	CurrentPeriodStart time.Time `gorm:"not null" json:"current_period_start"`
	CurrentPeriodEnd   time.Time `gorm:"not null" json:"current_period_end"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
