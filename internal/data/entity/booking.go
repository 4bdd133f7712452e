package entity

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusCompleted BookingStatus = "completed"
)

type PaymentMethod string

const (
	PaymentMethodCash   PaymentMethod = "cash"
	PaymentMethodOnline PaymentMethod = "online"
)

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
)

// statusTransitions is the full transition table. Cancelled and completed
// are terminal; deletion is a hard removal, not a transition.
var statusTransitions = map[BookingStatus][]BookingStatus{
	BookingStatusPending:   {BookingStatusConfirmed, BookingStatusCancelled},
	BookingStatusConfirmed: {BookingStatusCompleted, BookingStatusCancelled},
	BookingStatusCancelled: {},
	BookingStatusCompleted: {},
}

// CanTransition reports whether a status change is legal.
func CanTransition(from, to BookingStatus) bool {
	for _, next := range statusTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// GuestInfo is the inline contact profile for unauthenticated bookings.
// All four fields are required when present.
type GuestInfo struct {
	FullName string `db:"guest_full_name" json:"full_name"`
	Email    string `db:"guest_email" json:"email"`
	Phone    string `db:"guest_phone" json:"phone"`
	Address  string `db:"guest_address" json:"address"`
}

type Booking struct {
	Base
	OrderID       string        `db:"order_id"`
	ServiceID     uuid.UUID     `db:"service_id"`
	UserID        *uuid.UUID    `db:"user_id"` // nil means guest booking
	Guest         *GuestInfo    // populated iff UserID is nil
	ScheduledAt   time.Time     `db:"scheduled_at"`
	Note          string        `db:"note"`
	Status        BookingStatus `db:"status"`
	PaymentMethod PaymentMethod `db:"payment_method"`
	PaymentStatus PaymentStatus `db:"payment_status"`
	ReferralCode  *string       `db:"referral_code"`
	Amount        float64       `db:"amount"` // price at booking time, after discount
	TransactionID *string       `db:"transaction_id"`
	PaidAt        *time.Time    `db:"paid_at"`
}

// IsGuest reports whether the booking carries inline guest contact info
// instead of a user reference.
func (b *Booking) IsGuest() bool {
	return b.UserID == nil
}
