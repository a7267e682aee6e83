package models

import "gorm.io/gorm"

// Product represents a catalog entry: a piece of IT equipment a procurement
// manager can add to their cart.
type Product struct {
	ID          string  `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name        string  `json:"name" validate:"required,min=3,max=100"`
	SKU         string  `json:"sku" gorm:"uniqueIndex;type:varchar(64)" validate:"required,max=64"`
	Category    string  `json:"category" gorm:"type:varchar(100)" validate:"omitempty,max=100"`
	Description string  `json:"description" validate:"omitempty,max=500"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	Stock       int     `json:"stock" validate:"gte=0"`
	ImageURL    string  `json:"image_url" validate:"omitempty,url"`
	IsAvailable bool    `json:"is_available" gorm:"default:true"`
	gorm.Model          // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}
