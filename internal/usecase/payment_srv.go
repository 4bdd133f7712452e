package usecase

import (
	"context"
	"fmt"
	"time"

	"gezana/internal/data/entity"
	"gezana/internal/data/repository"
	"gezana/internal/dto/request"
	"gezana/internal/dto/response"
	"gezana/pkg/metrics"
	"gezana/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type PaymentService interface {
	// ProcessPayment finalizes the payment branch for a booking. Online
	// payments mark the booking paid; cash bookings get a CASH reference but
	// stay pending until settled in person.
	ProcessPayment(ctx context.Context, bookingID string, viewerID *uuid.UUID, role string, req *request.ConfirmPaymentRequest) (*response.BookingResponse, error)
	GetPaymentMethods(ctx context.Context) []response.PaymentMethodResponse
}

type paymentService struct {
	repo *repository.Repository
	log  *zap.Logger
	now  func() time.Time
}

func NewPaymentService(repo *repository.Repository, log *zap.Logger) PaymentService {
	return &paymentService{
		repo: repo,
		log:  log.With(zap.String("service", "payment")),
		now:  time.Now,
	}
}

func (s *paymentService) ProcessPayment(ctx context.Context, bookingID string, viewerID *uuid.UUID, role string, req *request.ConfirmPaymentRequest) (*response.BookingResponse, error) {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, fmt.Errorf("invalid booking ID format %s: %w", bookingID, err)
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, fmt.Errorf("booking %s not found", bookingID)
	}

	if err := s.authorize(booking, viewerID, role); err != nil {
		return nil, err
	}

	if booking.Status == entity.BookingStatusCancelled {
		return nil, fmt.Errorf("cannot pay for a cancelled booking")
	}
	if booking.PaymentStatus == entity.PaymentStatusPaid {
		return nil, fmt.Errorf("booking %s is already paid", bookingID)
	}

	switch booking.PaymentMethod {
	case entity.PaymentMethodOnline:
		s.processOnline(ctx, booking, req.TransactionID)
	case entity.PaymentMethodCash:
		s.processCash(ctx, booking)
	default:
		return nil, fmt.Errorf("invalid payment method %s", booking.PaymentMethod)
	}

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

// processOnline records the gateway reference and patches the booking to
// paid. The patch is best effort: the payment already happened, so a failed
// write is logged and the caller still gets the paid view.
func (s *paymentService) processOnline(ctx context.Context, booking *entity.Booking, transactionID string) {
	if transactionID == "" {
		transactionID = utils.GenerateTransactionID("TXN")
	}
	paidAt := s.now()

	booking.PaymentStatus = entity.PaymentStatusPaid
	booking.TransactionID = &transactionID
	booking.PaidAt = &paidAt

	outcome := "recorded"
	if err := s.repo.Booking.UpdatePayment(ctx, booking.ID, entity.PaymentStatusPaid, transactionID, &paidAt); err != nil {
		outcome = "record_failed"
		s.log.Warn("Failed to record online payment. Continue anyway",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()),
			zap.String("transaction_id", transactionID),
		)
	}

	metrics.IncPaymentProcessed(string(entity.PaymentMethodOnline), outcome)
	s.log.Info("Online payment processed",
		zap.String("booking_id", booking.ID.String()),
		zap.String("transaction_id", transactionID),
	)
}

// processCash assigns a cash reference for reconciliation but leaves the
// payment pending; cash settles in person.
func (s *paymentService) processCash(ctx context.Context, booking *entity.Booking) {
	transactionID := utils.GenerateTransactionID("CASH")
	booking.TransactionID = &transactionID

	outcome := "recorded"
	if err := s.repo.Booking.UpdatePayment(ctx, booking.ID, entity.PaymentStatusPending, transactionID, nil); err != nil {
		outcome = "record_failed"
		s.log.Warn("Failed to record cash reference. Continue anyway",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()),
			zap.String("transaction_id", transactionID),
		)
	}

	metrics.IncPaymentProcessed(string(entity.PaymentMethodCash), outcome)
	s.log.Info("Cash payment registered",
		zap.String("booking_id", booking.ID.String()),
		zap.String("transaction_id", transactionID),
	)
}

func (s *paymentService) authorize(booking *entity.Booking, viewerID *uuid.UUID, role string) error {
	if role == string(entity.RoleAdmin) {
		return nil
	}
	if booking.UserID == nil {
		// Guest bookings carry no session; payment is confirmed through the
		// booking reference alone.
		return nil
	}
	if viewerID != nil && *booking.UserID == *viewerID {
		return nil
	}
	return fmt.Errorf("unauthorized to pay for this booking")
}

func (s *paymentService) GetPaymentMethods(ctx context.Context) []response.PaymentMethodResponse {
	return []response.PaymentMethodResponse{
		{Code: string(entity.PaymentMethodCash), Name: "Cash on service", Description: "Pay the provider in person after the service"},
		{Code: string(entity.PaymentMethodOnline), Name: "Online payment", Description: "Pay now through the payment gateway"},
	}
}
