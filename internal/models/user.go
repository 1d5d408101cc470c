package models

import "time"

const (
	RoleAdmin        = "admin"
	RoleBarber       = "barbeiro"
	RoleReceptionist = "recepcionista"
	RoleClient       = "cliente"
)

// User covers every person the shop knows: barbers, staff and clients.
type User struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Name  string `gorm:"size:100;not null" json:"name"`
	Email string `gorm:"size:100;uniqueIndex" json:"email"`
	Phone string `gorm:"size:20" json:"phone"`
	Role  string `gorm:"size:20;default:'cliente';index" json:"role"`

	Active bool `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
