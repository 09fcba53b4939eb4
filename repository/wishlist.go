package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/junaidrashid-git/storefront-api/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type WishlistRepository struct {
	db *gorm.DB
}

func NewWishlistRepository(db *gorm.DB) *WishlistRepository {
	return &WishlistRepository{db: db}
}

func (r *WishlistRepository) ListByUser(ctx context.Context, userID string) ([]models.WishlistItem, error) {
	items := []models.WishlistItem{}
	err := r.db.WithContext(ctx).
		Preload("Product").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&items).Error
	return items, err
}

// Add inserts item. A second row for the same (user, product) fails with
// ErrDuplicate; the unique index backs the pre-check under concurrent adds.
func (r *WishlistRepository) Add(ctx context.Context, item *models.WishlistItem) error {
	exists, err := r.Exists(ctx, item.UserID, item.ProductID)
	if err != nil {
		return err
	}
	if exists {
		return ErrDuplicate
	}
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(item).Error)
}

func (r *WishlistRepository) Exists(ctx context.Context, userID string, productID uint) (bool, error) {
	var item models.WishlistItem
	err := r.db.WithContext(ctx).
		Select("id").
		Where("user_id = ? AND product_id = ?", userID, productID).
		First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (r *WishlistRepository) Delete(ctx context.Context, userID string, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&models.WishlistItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
