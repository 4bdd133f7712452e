package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"gezana/internal/data/entity"
	"gezana/internal/dto/request"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func addBooking(env *testEnv, method entity.PaymentMethod) *entity.Booking {
	booking := &entity.Booking{
		Base:          entity.Base{ID: uuid.New(), CreatedAt: time.Now(), UpdatedAt: time.Now()},
		OrderID:       "BKG-20260310-120000-0001",
		ServiceID:     uuid.New(),
		Guest: &entity.GuestInfo{
			FullName: "Hana Girma",
			Email:    "hana@example.com",
			Phone:    "0912345678",
			Address:  "Piassa, Addis Ababa",
		},
		ScheduledAt:   time.Now().AddDate(0, 0, 2),
		Status:        entity.BookingStatusPending,
		PaymentMethod: method,
		PaymentStatus: entity.PaymentStatusPending,
		Amount:        800,
	}
	env.bookings.bookings[booking.ID] = booking
	return booking
}

func TestProcessPayment(t *testing.T) {
	ctx := context.Background()

	t.Run("OnlinePaymentMarksPaid", func(t *testing.T) {
		env := newTestEnv()
		svc := NewPaymentService(env.repo, zap.NewNop())
		booking := addBooking(env, entity.PaymentMethodOnline)

		result, err := svc.ProcessPayment(ctx, booking.ID.String(), nil, "", &request.ConfirmPaymentRequest{})
		require.NoError(t, err)

		assert.Equal(t, entity.PaymentStatusPaid, result.PaymentStatus)
		require.NotNil(t, result.TransactionID)
		assert.True(t, strings.HasPrefix(*result.TransactionID, "TXN-"))
		assert.NotNil(t, result.PaidAt)

		stored := env.bookings.bookings[booking.ID]
		assert.Equal(t, entity.PaymentStatusPaid, stored.PaymentStatus)
	})

	t.Run("OnlinePaymentKeepsGatewayReference", func(t *testing.T) {
		env := newTestEnv()
		svc := NewPaymentService(env.repo, zap.NewNop())
		booking := addBooking(env, entity.PaymentMethodOnline)

		result, err := svc.ProcessPayment(ctx, booking.ID.String(), nil, "", &request.ConfirmPaymentRequest{
			TransactionID: "GW-REF-12345",
		})
		require.NoError(t, err)
		assert.Equal(t, "GW-REF-12345", *result.TransactionID)
	})

	t.Run("CashStaysPendingWithReference", func(t *testing.T) {
		env := newTestEnv()
		svc := NewPaymentService(env.repo, zap.NewNop())
		booking := addBooking(env, entity.PaymentMethodCash)

		result, err := svc.ProcessPayment(ctx, booking.ID.String(), nil, "", &request.ConfirmPaymentRequest{})
		require.NoError(t, err)

		assert.Equal(t, entity.PaymentStatusPending, result.PaymentStatus)
		require.NotNil(t, result.TransactionID)
		assert.True(t, strings.HasPrefix(*result.TransactionID, "CASH-"))
		assert.Nil(t, result.PaidAt)
	})

	t.Run("RecordFailureStillReturnsPaidView", func(t *testing.T) {
		env := newTestEnv()
		svc := NewPaymentService(env.repo, zap.NewNop())
		booking := addBooking(env, entity.PaymentMethodOnline)
		env.bookings.failPayment = errors.New("connection reset")

		result, err := svc.ProcessPayment(ctx, booking.ID.String(), nil, "", &request.ConfirmPaymentRequest{})
		require.NoError(t, err)

		// The payment went through at the gateway; the local write failing
		// must not surface as a payment failure.
		assert.Equal(t, entity.PaymentStatusPaid, result.PaymentStatus)
		assert.Equal(t, 1, env.bookings.paymentCalls)
	})

	t.Run("AlreadyPaidRejected", func(t *testing.T) {
		env := newTestEnv()
		svc := NewPaymentService(env.repo, zap.NewNop())
		booking := addBooking(env, entity.PaymentMethodOnline)
		booking.PaymentStatus = entity.PaymentStatusPaid

		_, err := svc.ProcessPayment(ctx, booking.ID.String(), nil, "", &request.ConfirmPaymentRequest{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already paid")
	})

	t.Run("CancelledBookingRejected", func(t *testing.T) {
		env := newTestEnv()
		svc := NewPaymentService(env.repo, zap.NewNop())
		booking := addBooking(env, entity.PaymentMethodOnline)
		booking.Status = entity.BookingStatusCancelled

		_, err := svc.ProcessPayment(ctx, booking.ID.String(), nil, "", &request.ConfirmPaymentRequest{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cancelled")
	})

	t.Run("OtherUsersBookingForbidden", func(t *testing.T) {
		env := newTestEnv()
		svc := NewPaymentService(env.repo, zap.NewNop())
		booking := addBooking(env, entity.PaymentMethodOnline)
		owner := uuid.New()
		booking.UserID = &owner
		booking.Guest = nil

		stranger := uuid.New()
		_, err := svc.ProcessPayment(ctx, booking.ID.String(), &stranger, "seeker", &request.ConfirmPaymentRequest{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unauthorized")
	})

	t.Run("UnknownBookingNotFound", func(t *testing.T) {
		env := newTestEnv()
		svc := NewPaymentService(env.repo, zap.NewNop())

		_, err := svc.ProcessPayment(ctx, uuid.New().String(), nil, "", &request.ConfirmPaymentRequest{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not found")
	})
}

func TestGetPaymentMethods(t *testing.T) {
	env := newTestEnv()
	svc := NewPaymentService(env.repo, zap.NewNop())

	methods := svc.GetPaymentMethods(context.Background())
	require.Len(t, methods, 2)
	assert.Equal(t, "cash", methods[0].Code)
	assert.Equal(t, "online", methods[1].Code)
}
