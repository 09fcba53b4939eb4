package repository

import (
	"testing"

	"github.com/google/uuid"
	"github.com/junaidrashid-git/storefront-api/models"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestCartUpsertIsSingleStatement(t *testing.T) {
	db := dryRun(t)
	item := &models.CartItem{ID: uuid.New(), UserID: "u1", ProductID: 7, Quantity: 2, Size: "M", Color: "Red"}

	sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		return upsertCartItem(tx, item)
	})

	assert.Contains(t, sql, `INSERT INTO "cart_items"`)
	assert.Contains(t, sql, `ON CONFLICT ("user_id","product_id","size","color") DO UPDATE SET`)
	assert.Contains(t, sql, `"quantity"=cart_items.quantity + EXCLUDED.quantity`)
	assert.Contains(t, sql, `RETURNING *`)
	assert.NotContains(t, sql, "FOR UPDATE")
}
