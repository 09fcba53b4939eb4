package models

import (
	"time"

	"github.com/google/uuid"
)

// CheckoutSession records one accepted hosted-checkout attempt. Rows are
// written once and never updated; payment outcome lives with the processor.
type CheckoutSession struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	SessionID   string    `gorm:"uniqueIndex;not null" json:"session_id"`
	UserID      string    `gorm:"index;not null" json:"user_id"`
	Provider    string    `gorm:"type:VARCHAR(20);not null" json:"provider"`
	AmountTotal int64     `json:"amount_total"`
	Currency    string    `gorm:"type:VARCHAR(3)" json:"currency"`
	CreatedAt   time.Time `json:"created_at"`
}
