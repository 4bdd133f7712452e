package entity

import (
	"time"

	"github.com/google/uuid"
)

type MembershipStatus string

const (
	MembershipActive    MembershipStatus = "active"
	MembershipExpired   MembershipStatus = "expired"
	MembershipCancelled MembershipStatus = "cancelled"
)

type Membership struct {
	Base
	UserID        uuid.UUID        `db:"user_id"`
	PlanName      string           `db:"plan_name"`
	Price         float64          `db:"price"`
	Status        MembershipStatus `db:"status"`
	PaymentMethod PaymentMethod    `db:"payment_method"`
	TransactionID *string          `db:"transaction_id"`
	StartsAt      time.Time        `db:"starts_at"`
	ExpiresAt     time.Time        `db:"expires_at"`
}
