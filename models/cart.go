package models

import (
	"time"

	"github.com/google/uuid"
)

// CartItem is one line of a user's cart. A user holds at most one row per
// (product, size, color) combination.
type CartItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    string    `gorm:"not null;uniqueIndex:cart_items_variant_key" json:"user_id"`
	ProductID uint      `gorm:"not null;uniqueIndex:cart_items_variant_key" json:"product_id"`
	Product   Product   `json:"product"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	Size      string    `gorm:"not null;default:'';uniqueIndex:cart_items_variant_key" json:"size"`
	Color     string    `gorm:"not null;default:'';uniqueIndex:cart_items_variant_key" json:"color"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
