package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Plan struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Name        string          `gorm:"size:100;not null" json:"name"`
	Description string          `gorm:"size:255" json:"description"`
	Price       decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"price"`
	IsActive    bool            `gorm:"default:true" json:"is_active"`

	Discounts []PlanDiscount `json:"discounts,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PlanDiscount waives a service entirely (IsFree) or takes a percentage
// off its base price for subscribers of the plan.
type PlanDiscount struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	PlanID    uint `gorm:"uniqueIndex:idx_plan_discount_pair;not null" json:"plan_id"`
	ServiceID uint `gorm:"uniqueIndex:idx_plan_discount_pair;not null" json:"service_id"`

	IsFree             bool            `gorm:"default:false" json:"is_free"`
	DiscountPercentage decimal.Decimal `gorm:"type:numeric(5,2);not null;default:0" json:"discount_percentage"`
}
