package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/junaidrashid-git/storefront-api/models"
	"gorm.io/gorm"
)

type CheckoutSessionRepository struct {
	db *gorm.DB
}

func NewCheckoutSessionRepository(db *gorm.DB) *CheckoutSessionRepository {
	return &CheckoutSessionRepository{db: db}
}

func (r *CheckoutSessionRepository) Create(ctx context.Context, s *models.CheckoutSession) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return translate(r.db.WithContext(ctx).Create(s).Error)
}

// List returns sessions newest first, optionally restricted to one user.
func (r *CheckoutSessionRepository) List(ctx context.Context, userID string, limit int) ([]models.CheckoutSession, error) {
	sessions := []models.CheckoutSession{}
	tx := r.db.WithContext(ctx).Order("created_at DESC")
	if userID != "" {
		tx = tx.Where("user_id = ?", userID)
	}
	if limit > 0 {
		tx = tx.Limit(limit)
	}
	return sessions, tx.Find(&sessions).Error
}
