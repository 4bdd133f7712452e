package usecase

import (
	"context"
	"fmt"
	"time"

	"gezana/internal/data/entity"
	"gezana/internal/data/repository"
	"gezana/internal/dto/response"
	"gezana/pkg/metrics"
	"gezana/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// InvoiceService derives invoices on demand. Invoices are never persisted:
// the same booking always reproduces the same document, so there is nothing
// to store and nothing to get out of sync.
type InvoiceService interface {
	ForBooking(ctx context.Context, bookingID string, viewerID *uuid.UUID, role string) (*response.InvoiceResponse, error)
	ForMembership(ctx context.Context, membershipID string, viewerID uuid.UUID, role string) (*response.InvoiceResponse, error)
}

type invoiceService struct {
	repo     *repository.Repository
	identity IdentityService
	config   *utils.Config
	log      *zap.Logger
	now      func() time.Time
}

func NewInvoiceService(repo *repository.Repository, identity IdentityService, config *utils.Config, log *zap.Logger) InvoiceService {
	return &invoiceService{
		repo:     repo,
		identity: identity,
		config:   config,
		log:      log.With(zap.String("service", "invoice")),
		now:      time.Now,
	}
}

func (s *invoiceService) ForBooking(ctx context.Context, bookingID string, viewerID *uuid.UUID, role string) (*response.InvoiceResponse, error) {
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

	if err := s.authorizeBooking(ctx, booking, viewerID, role); err != nil {
		return nil, err
	}

	// Decoration only: a missing service still yields an invoice with
	// placeholders so the customer-facing numbers never disappear.
	var service *entity.Service
	var provider *entity.User
	service, err = s.repo.Service.FindByID(ctx, booking.ServiceID)
	if err != nil {
		s.log.Warn("Failed to load service for invoice. Continue anyway",
			zap.Error(err), zap.String("booking_id", bookingID))
	}
	if service != nil {
		provider, err = s.repo.User.FindByID(ctx, service.ProviderID)
		if err != nil {
			s.log.Warn("Failed to load provider for invoice. Continue anyway",
				zap.Error(err), zap.String("service_id", service.ID.String()))
		}
	}

	invoice := s.buildBookingInvoice(ctx, booking, service, provider)
	metrics.IncInvoiceGenerated()
	return invoice, nil
}

func (s *invoiceService) authorizeBooking(ctx context.Context, booking *entity.Booking, viewerID *uuid.UUID, role string) error {
	if role == string(entity.RoleAdmin) {
		return nil
	}
	if booking.UserID == nil {
		// Guest invoices are reachable through the booking reference.
		return nil
	}
	if viewerID != nil && *booking.UserID == *viewerID {
		return nil
	}
	if viewerID != nil && role == string(entity.RoleProvider) {
		service, err := s.repo.Service.FindByID(ctx, booking.ServiceID)
		if err == nil && service != nil && service.ProviderID == *viewerID {
			return nil
		}
	}
	return fmt.Errorf("unauthorized to view this invoice")
}

// buildBookingInvoice assembles the document. The customer block resolves
// in order: inline guest info, then the booking's user, then placeholders.
func (s *invoiceService) buildBookingInvoice(ctx context.Context, booking *entity.Booking, service *entity.Service, provider *entity.User) *response.InvoiceResponse {
	invoice := &response.InvoiceResponse{
		InvoiceNumber: utils.DeriveInvoiceNumber("INV-BKG", booking.ID),
		IssueDate:     booking.CreatedAt,
		Customer: response.InvoiceCustomer{
			FullName: "Guest",
			Email:    "N/A",
			Phone:    "N/A",
			Address:  "N/A",
		},
		Service: response.InvoiceService{
			Name:         "N/A",
			Category:     "N/A",
			ProviderName: "N/A",
			Location:     "N/A",
		},
		Amount: response.InvoiceAmount{
			Subtotal: booking.Amount,
			Tax:      0,
			Total:    booking.Amount,
			Currency: s.config.Booking.Currency,
		},
		Payment: response.InvoicePayment{
			Status: string(booking.PaymentStatus),
			Method: string(booking.PaymentMethod),
		},
	}

	if booking.TransactionID != nil {
		invoice.Payment.TransactionID = *booking.TransactionID
	}
	invoice.Payment.PaidAt = booking.PaidAt
	// Cash settles when the invoice changes hands, so its paid-at is the
	// derivation time. Online keeps the recorded confirmation time.
	if booking.PaymentMethod == entity.PaymentMethodCash && invoice.Payment.PaidAt == nil {
		paidAt := s.now()
		invoice.Payment.PaidAt = &paidAt
	}

	switch {
	case booking.Guest != nil:
		invoice.Customer = response.InvoiceCustomer{
			FullName: booking.Guest.FullName,
			Email:    booking.Guest.Email,
			Phone:    booking.Guest.Phone,
			Address:  booking.Guest.Address,
		}
	case booking.UserID != nil:
		if identity, err := s.identity.Resolve(ctx, booking.UserID, nil); err == nil {
			invoice.Customer = response.InvoiceCustomer{
				FullName: identity.FullName,
				Email:    identity.Email,
				Phone:    fallback(identity.Phone, "N/A"),
				Address:  fallback(identity.Address, "N/A"),
			}
		}
	}

	if service != nil {
		invoice.Service.Name = service.Title
		invoice.Service.Category = service.Category
		invoice.Service.Location = service.Location
	}
	if provider != nil {
		invoice.Service.ProviderName = provider.FullName
	}

	return invoice
}

func (s *invoiceService) ForMembership(ctx context.Context, membershipID string, viewerID uuid.UUID, role string) (*response.InvoiceResponse, error) {
	id, err := uuid.Parse(membershipID)
	if err != nil {
		return nil, fmt.Errorf("invalid membership ID format %s: %w", membershipID, err)
	}

	membership, err := s.repo.Membership.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if membership == nil {
		return nil, fmt.Errorf("membership %s not found", membershipID)
	}

	if membership.UserID != viewerID && role != string(entity.RoleAdmin) {
		return nil, fmt.Errorf("unauthorized to view this invoice")
	}

	invoice := &response.InvoiceResponse{
		InvoiceNumber: utils.DeriveInvoiceNumber("INV-MEM", membership.ID),
		IssueDate:     membership.CreatedAt,
		Customer: response.InvoiceCustomer{
			FullName: "N/A",
			Email:    "N/A",
			Phone:    "N/A",
			Address:  "N/A",
		},
		Service: response.InvoiceService{
			Name:     membership.PlanName,
			Category: "membership",
			Location: periodLabel(membership.StartsAt, membership.ExpiresAt),
		},
		Amount: response.InvoiceAmount{
			Subtotal: membership.Price,
			Tax:      0,
			Total:    membership.Price,
			Currency: s.config.Booking.Currency,
		},
		Payment: response.InvoicePayment{
			Status: paymentStatusForMembership(membership),
			Method: string(membership.PaymentMethod),
		},
	}
	if membership.TransactionID != nil {
		invoice.Payment.TransactionID = *membership.TransactionID
	}

	if identity, err := s.identity.Resolve(ctx, &membership.UserID, nil); err == nil {
		invoice.Customer = response.InvoiceCustomer{
			FullName: identity.FullName,
			Email:    identity.Email,
			Phone:    fallback(identity.Phone, "N/A"),
			Address:  fallback(identity.Address, "N/A"),
		}
	}

	metrics.IncInvoiceGenerated()
	return invoice, nil
}

func paymentStatusForMembership(membership *entity.Membership) string {
	if membership.TransactionID != nil {
		return string(entity.PaymentStatusPaid)
	}
	return string(entity.PaymentStatusPending)
}

func periodLabel(from, to time.Time) string {
	return fmt.Sprintf("%s to %s", from.Format("2006-01-02"), to.Format("2006-01-02"))
}

func fallback(value, placeholder string) string {
	if value == "" {
		return placeholder
	}
	return value
}
