package models

import (
	"time"

	"github.com/google/uuid"
)

// Subscription stores a seller's paid tier. FeeBps overrides the default
// platform fee; the fee is always resolved from the active row, never cached
// on products or orders. Rows are kept after expiry as rate history.
type Subscription struct {
	ID              uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	SellerProfileID uuid.UUID  `gorm:"column:seller_profile_id;type:uuid;not null;index"`
	Plan            string     `gorm:"column:plan;not null"`
	FeeBps          int        `gorm:"column:fee_bps;not null"`
	ValidFrom       time.Time  `gorm:"column:valid_from;not null"`
	ValidUntil      *time.Time `gorm:"column:valid_until"`
	CreatedAt       time.Time  `gorm:"column:created_at;autoCreateTime"`
}

// IsActive reports whether the subscription applies at the given time.
func (s *Subscription) IsActive(now time.Time) bool {
	if s == nil {
		return false
	}
	if s.ValidFrom.After(now) {
		return false
	}
	return s.ValidUntil == nil || s.ValidUntil.After(now)
}
