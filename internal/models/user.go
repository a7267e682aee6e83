package models

import "gorm.io/gorm"

// Role distinguishes what a user may do: procurement managers (RoleBuyer)
// create orders and see only their own; IT administrators (RoleAdmin) see
// every order and drive status transitions.
type Role string

const (
	RoleBuyer Role = "BUYER"
	RoleAdmin Role = "ADMIN"
)

// User represents an account in the procurement portal.
type User struct {
	ID         string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Username   string `json:"username" gorm:"uniqueIndex;type:varchar(100)" validate:"required,min=3,max=100"`
	Email      string `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Name       string `json:"name" gorm:"type:varchar(255)" validate:"required,min=2,max=255"`
	Role       Role   `json:"role" gorm:"type:varchar(20)" validate:"required,oneof=BUYER ADMIN"`
	Department string `json:"department" gorm:"type:varchar(100)" validate:"omitempty,max=100"`
	Password   string `gorm:"type:varchar(255)" validate:"required,min=6"` // No json tag for security
	gorm.Model        // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}
