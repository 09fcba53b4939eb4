package models

import (
	"errors"
	"slices"
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Product struct {
	ID              uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	Name            string          `gorm:"not null" json:"name"`
	Description     string          `json:"description"`
	Price           decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"price"`
	Images          pq.StringArray  `gorm:"type:text[]" json:"images"`
	Sizes           pq.StringArray  `gorm:"type:text[]" json:"sizes"`
	Colors          pq.StringArray  `gorm:"type:text[]" json:"colors"`
	CategoryID      *uint           `gorm:"index" json:"category_id"`
	Category        *Category       `json:"category,omitempty"`
	Stock           int             `gorm:"not null;default:0" json:"stock"`
	DiscountPercent int             `gorm:"not null;default:0" json:"discount_percent"`
	Rating          decimal.Decimal `gorm:"type:numeric(2,1);not null;default:0" json:"rating"`
	Popularity      int             `gorm:"not null;default:0;index" json:"popularity"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
	DeletedAt       gorm.DeletedAt  `gorm:"index" json:"-"`
}

var (
	ErrNegativePrice = errors.New("price must not be negative")
	ErrNegativeStock = errors.New("stock must not be negative")
	ErrInvalidName   = errors.New("name is required")
	ErrInvalidSize   = errors.New("size is not offered for this product")
	ErrInvalidColor  = errors.New("color is not offered for this product")
)

// Validate checks the invariants every stored product must satisfy.
func (p *Product) Validate() error {
	if p.Name == "" {
		return ErrInvalidName
	}
	if p.Price.IsNegative() {
		return ErrNegativePrice
	}
	if p.Stock < 0 {
		return ErrNegativeStock
	}
	return nil
}

// FirstImage returns the lead image or "" for products without images.
func (p *Product) FirstImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

// CheckVariant verifies that size and color are among the product's options.
// A product that declares no sizes (or colors) only accepts an empty value.
func (p *Product) CheckVariant(size, color string) error {
	if !offers(p.Sizes, size) {
		return ErrInvalidSize
	}
	if !offers(p.Colors, color) {
		return ErrInvalidColor
	}
	return nil
}

func offers(options []string, v string) bool {
	if len(options) == 0 {
		return v == ""
	}
	return slices.Contains(options, v)
}
