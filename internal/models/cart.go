package models

import "time"

// CartItem is one line of a procurement manager's pre-checkout cart. Entries
// are unique by ProductID; adding the same product again increments Quantity.
type CartItem struct {
	ProductID string  `json:"product_id" validate:"required"`
	Title     string  `json:"title" validate:"required,max=255"`
	SKU       string  `json:"sku,omitempty" validate:"omitempty,max=64"`
	UnitPrice float64 `json:"unit_price" validate:"gte=0"`
	Quantity  int     `json:"quantity" validate:"gte=1"`
	Image     string  `json:"image,omitempty"`
}

// CartSnapshot is the durable per-user cart record: one row per storage key
// (the key format is "cart_<userID>"), with the cart serialized as a JSON
// array of CartItem. At most one snapshot exists per user identity.
type CartSnapshot struct {
	Key       string    `gorm:"primaryKey;type:varchar(100)"`
	Payload   string    `gorm:"type:text"`
	UpdatedAt time.Time
}
