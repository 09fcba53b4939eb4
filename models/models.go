package models

// All lists every table migrated at boot.
func All() []any {
	return []any{
		&Category{},
		&Product{},
		&User{},
		&CartItem{},
		&WishlistItem{},
		&CheckoutSession{},
	}
}
