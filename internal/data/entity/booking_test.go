package entity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	t.Run("PendingMovesForwardOrCancels", func(t *testing.T) {
		assert.True(t, CanTransition(BookingStatusPending, BookingStatusConfirmed))
		assert.True(t, CanTransition(BookingStatusPending, BookingStatusCancelled))
		assert.False(t, CanTransition(BookingStatusPending, BookingStatusCompleted))
	})

	t.Run("ConfirmedCompletesOrCancels", func(t *testing.T) {
		assert.True(t, CanTransition(BookingStatusConfirmed, BookingStatusCompleted))
		assert.True(t, CanTransition(BookingStatusConfirmed, BookingStatusCancelled))
		assert.False(t, CanTransition(BookingStatusConfirmed, BookingStatusPending))
	})

	t.Run("CancelledIsTerminal", func(t *testing.T) {
		assert.False(t, CanTransition(BookingStatusCancelled, BookingStatusPending))
		assert.False(t, CanTransition(BookingStatusCancelled, BookingStatusConfirmed))
		assert.False(t, CanTransition(BookingStatusCancelled, BookingStatusCompleted))
	})

	t.Run("CompletedIsTerminal", func(t *testing.T) {
		assert.False(t, CanTransition(BookingStatusCompleted, BookingStatusPending))
		assert.False(t, CanTransition(BookingStatusCompleted, BookingStatusConfirmed))
		assert.False(t, CanTransition(BookingStatusCompleted, BookingStatusCancelled))
	})

	t.Run("SelfTransitionIsRejected", func(t *testing.T) {
		assert.False(t, CanTransition(BookingStatusPending, BookingStatusPending))
	})
}

func TestBookingIsGuest(t *testing.T) {
	booking := &Booking{}
	assert.True(t, booking.IsGuest())

	userID := uuid.New()
	booking.UserID = &userID
	assert.False(t, booking.IsGuest())
}

func TestSpecialOfferApply(t *testing.T) {
	t.Run("Percentage", func(t *testing.T) {
		offer := &SpecialOffer{DiscountType: DiscountPercentage, Value: 20}
		assert.InDelta(t, 800.0, offer.Apply(1000), 0.001)
	})

	t.Run("Fixed", func(t *testing.T) {
		offer := &SpecialOffer{DiscountType: DiscountFixed, Value: 150}
		assert.InDelta(t, 850.0, offer.Apply(1000), 0.001)
	})

	t.Run("NeverNegative", func(t *testing.T) {
		offer := &SpecialOffer{DiscountType: DiscountFixed, Value: 2000}
		assert.Equal(t, 0.0, offer.Apply(1000))
	})

	t.Run("UnknownTypeLeavesPrice", func(t *testing.T) {
		offer := &SpecialOffer{DiscountType: "bogus", Value: 50}
		assert.Equal(t, 1000.0, offer.Apply(1000))
	})
}
