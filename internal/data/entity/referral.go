package entity

import (
	"time"
)

// ReferralCode is a promotional code attached to bookings. Codes are stored
// normalized (trimmed, uppercase).
type ReferralCode struct {
	BaseSimple
	Code      string     `db:"code"`
	UseCount  int        `db:"use_count"`
	MaxUses   *int       `db:"max_uses"` // nil means unlimited
	ExpiresAt *time.Time `db:"expires_at"`
	IsActive  bool       `db:"is_active"`
}
