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

type BookingService interface {
	// CreateBooking accepts both authenticated and guest attempts; userID is
	// nil for guests. The price in effect at creation time is snapshotted
	// into the booking.
	CreateBooking(ctx context.Context, userID *uuid.UUID, req *request.CreateBookingRequest) (*response.BookingResponse, error)
	GetBooking(ctx context.Context, bookingID string, viewerID *uuid.UUID, role string) (*response.BookingResponse, error)
	GetUserBookings(ctx context.Context, userID uuid.UUID, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)
	GetProviderBookings(ctx context.Context, providerID uuid.UUID, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)
	UpdateBooking(ctx context.Context, bookingID string, userID uuid.UUID, role string, req *request.UpdateBookingRequest) (*response.BookingResponse, error)
	ChangeStatus(ctx context.Context, bookingID string, userID uuid.UUID, role string, req *request.ChangeStatusRequest) (*response.BookingResponse, error)

	// ==================== ADMIN METHODS ====================
	GetAllBookings(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)
	DeleteBooking(ctx context.Context, bookingID string) error
}

type bookingService struct {
	repo     *repository.Repository
	identity IdentityService
	config   *utils.Config
	log      *zap.Logger
	now      func() time.Time
}

func NewBookingService(repo *repository.Repository, identity IdentityService, config *utils.Config, log *zap.Logger) BookingService {
	return &bookingService{
		repo:     repo,
		identity: identity,
		config:   config,
		log:      log.With(zap.String("service", "booking")),
		now:      time.Now,
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, userID *uuid.UUID, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	// Booking creation may touch several tables; bound it generously.
	timeout := time.Duration(s.config.Booking.CreateTimeoutSeconds) * time.Second
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	// Validate request shape before anything touches the database.
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create booking validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	identity, err := s.identity.Resolve(ctx, userID, req.Guest)
	if err != nil {
		return nil, err
	}

	scheduledAt, err := utils.CombineDateSlot(req.Date, req.Time, s.now())
	if err != nil {
		return nil, fmt.Errorf("validation failed: %s", err.Error())
	}

	serviceID, err := uuid.Parse(req.ServiceID)
	if err != nil {
		return nil, fmt.Errorf("invalid service ID format %s: %w", req.ServiceID, err)
	}

	service, err := s.repo.Service.FindByID(ctx, serviceID)
	if err != nil {
		s.log.Error("Failed to load service", zap.Error(err), zap.String("service_id", req.ServiceID))
		return nil, fmt.Errorf("load service: %w", err)
	}
	if service == nil || !service.IsAvailable {
		return nil, fmt.Errorf("service %s not found", req.ServiceID)
	}

	// Snapshot the price in effect now: base price after any active offer.
	amount := service.Price
	offer, err := s.repo.SpecialOffer.FindActiveByServiceID(ctx, serviceID)
	if err != nil {
		s.log.Error("Failed to load active offer", zap.Error(err), zap.String("service_id", req.ServiceID))
		return nil, fmt.Errorf("load special offer: %w", err)
	}
	if offer != nil {
		amount = offer.Apply(amount)
	}

	paymentMethod := entity.PaymentMethod(req.PaymentMethod)
	if paymentMethod == "" {
		paymentMethod = entity.PaymentMethodCash
	}

	booking := &entity.Booking{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: s.now(),
			UpdatedAt: s.now(),
		},
		OrderID:       utils.GenerateOrderID(),
		ServiceID:     serviceID,
		ScheduledAt:   scheduledAt,
		Note:          req.Note,
		Status:        entity.BookingStatusPending,
		PaymentMethod: paymentMethod,
		PaymentStatus: entity.PaymentStatusPending,
		Amount:        amount,
	}

	identityLabel := "guest"
	if identity.IsAuthenticated {
		booking.UserID = identity.UserID
		identityLabel = "user"
	} else {
		booking.Guest = &entity.GuestInfo{
			FullName: identity.FullName,
			Email:    identity.Email,
			Phone:    identity.Phone,
			Address:  identity.Address,
		}
	}

	// A blank referral code means "no code". Unknown codes are dropped
	// silently rather than failing the booking.
	if code := utils.NormalizeReferralCode(req.ReferralCode); code != "" {
		if referral := s.lookupReferral(ctx, code); referral != nil {
			booking.ReferralCode = &code
			if err := s.repo.Referral.IncrementUse(ctx, referral.ID); err != nil {
				s.log.Warn("Failed to count referral use. Continue anyway",
					zap.Error(err), zap.String("code", code))
			}
		}
	}

	if err := s.repo.Booking.Create(ctx, booking); err != nil {
		return nil, err
	}

	metrics.IncBookingCreated(string(paymentMethod), identityLabel)
	s.log.Info("Booking created",
		zap.String("order_id", booking.OrderID),
		zap.String("service_id", serviceID.String()),
		zap.String("identity", identityLabel),
		zap.Float64("amount", amount),
	)

	resp := response.BookingToResponse(booking)
	decorateBookingResponse(&resp, service)
	if offer != nil {
		resp.OriginalPrice = service.Price
	}
	return &resp, nil
}

func (s *bookingService) lookupReferral(ctx context.Context, code string) *entity.ReferralCode {
	referral, err := s.repo.Referral.FindValidCode(ctx, code)
	if err != nil {
		s.log.Warn("Referral lookup failed. Continue anyway", zap.Error(err), zap.String("code", code))
		return nil
	}
	if referral == nil {
		s.log.Info("Unknown referral code dropped", zap.String("code", code))
	}
	return referral
}

func (s *bookingService) GetBooking(ctx context.Context, bookingID string, viewerID *uuid.UUID, role string) (*response.BookingResponse, error) {
	booking, service, err := s.loadBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if err := s.authorizeView(booking, service, viewerID, role); err != nil {
		return nil, err
	}

	resp := response.BookingToResponse(booking)
	decorateBookingResponse(&resp, service)
	return &resp, nil
}

// authorizeView allows the booking owner, the service's provider, and
// admins. Guest bookings are only reachable by provider and admin.
func (s *bookingService) authorizeView(booking *entity.Booking, service *entity.Service, viewerID *uuid.UUID, role string) error {
	if role == string(entity.RoleAdmin) {
		return nil
	}
	if viewerID == nil {
		return fmt.Errorf("unauthorized to view this booking")
	}
	if booking.UserID != nil && *booking.UserID == *viewerID {
		return nil
	}
	if service != nil && service.ProviderID == *viewerID && role == string(entity.RoleProvider) {
		return nil
	}
	return fmt.Errorf("unauthorized to view this booking")
}

func (s *bookingService) loadBooking(ctx context.Context, bookingID string) (*entity.Booking, *entity.Service, error) {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid booking ID format %s: %w", bookingID, err)
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if booking == nil {
		return nil, nil, fmt.Errorf("booking %s not found", bookingID)
	}

	service, err := s.repo.Service.FindByID(ctx, booking.ServiceID)
	if err != nil {
		s.log.Warn("Failed to load service for booking. Continue anyway",
			zap.Error(err), zap.String("booking_id", bookingID))
	}

	return booking, service, nil
}

func (s *bookingService) GetUserBookings(ctx context.Context, userID uuid.UUID, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	bookings, err := s.repo.Booking.FindByUserID(ctx, userID, req.Limit(), req.Offset())
	if err != nil {
		return nil, err
	}

	total, err := s.repo.Booking.CountByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return s.paginate(ctx, bookings, req, total), nil
}

func (s *bookingService) GetProviderBookings(ctx context.Context, providerID uuid.UUID, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	bookings, err := s.repo.Booking.FindByProviderID(ctx, providerID, req.Limit(), req.Offset())
	if err != nil {
		return nil, err
	}

	total, err := s.repo.Booking.CountByProviderID(ctx, providerID)
	if err != nil {
		return nil, err
	}

	return s.paginate(ctx, bookings, req, total), nil
}

func (s *bookingService) paginate(ctx context.Context, bookings []*entity.Booking, req *request.PaginatedRequest, total int64) *response.PaginatedResponse[response.BookingResponse] {
	// Service titles are decoration; a failed lookup leaves the field empty.
	services := map[uuid.UUID]*entity.Service{}

	items := make([]response.BookingResponse, 0, len(bookings))
	for _, booking := range bookings {
		resp := response.BookingToResponse(booking)

		service, seen := services[booking.ServiceID]
		if !seen {
			service, _ = s.repo.Service.FindByID(ctx, booking.ServiceID)
			services[booking.ServiceID] = service
		}
		decorateBookingResponse(&resp, service)

		items = append(items, resp)
	}

	return response.NewPaginatedResponse(items, req.Page, req.Limit(), total)
}

func (s *bookingService) UpdateBooking(ctx context.Context, bookingID string, userID uuid.UUID, role string, req *request.UpdateBookingRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update booking validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	booking, service, err := s.loadBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeView(booking, service, &userID, role); err != nil {
		return nil, err
	}

	// The update must re-prove the booking points at a live service.
	serviceID, err := uuid.Parse(req.ServiceID)
	if err != nil || serviceID != booking.ServiceID {
		return nil, fmt.Errorf("validation failed: service does not match booking")
	}
	if service == nil {
		return nil, fmt.Errorf("service %s not found", req.ServiceID)
	}

	if booking.Status == entity.BookingStatusCancelled || booking.Status == entity.BookingStatusCompleted {
		return nil, fmt.Errorf("cannot modify a %s booking", booking.Status)
	}

	if req.Date != "" || req.Time != "" {
		scheduledAt, err := utils.CombineDateSlot(req.Date, req.Time, s.now())
		if err != nil {
			return nil, fmt.Errorf("validation failed: %s", err.Error())
		}
		booking.ScheduledAt = scheduledAt
	}
	if req.Note != nil {
		booking.Note = *req.Note
	}
	if req.Status != "" {
		next := entity.BookingStatus(req.Status)
		if !entity.CanTransition(booking.Status, next) {
			return nil, fmt.Errorf("cannot transition booking from %s to %s", booking.Status, next)
		}
		if err := s.authorizeTransition(booking, service, userID, role, next); err != nil {
			return nil, err
		}
		booking.Status = next
	}
	booking.UpdatedAt = s.now()

	if err := s.repo.Booking.Update(ctx, booking); err != nil {
		return nil, err
	}

	resp := response.BookingToResponse(booking)
	decorateBookingResponse(&resp, service)
	return &resp, nil
}

func (s *bookingService) ChangeStatus(ctx context.Context, bookingID string, userID uuid.UUID, role string, req *request.ChangeStatusRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}
	next := entity.BookingStatus(req.Status)

	booking, service, err := s.loadBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	// Every transition re-proves the booking still points at a live service;
	// a booking orphaned by a service deletion cannot move.
	serviceID, err := uuid.Parse(req.ServiceID)
	if err != nil || serviceID != booking.ServiceID {
		return nil, fmt.Errorf("validation failed: service does not match booking")
	}
	if service == nil {
		return nil, fmt.Errorf("service %s not found", req.ServiceID)
	}

	if !entity.CanTransition(booking.Status, next) {
		return nil, fmt.Errorf("cannot transition booking from %s to %s", booking.Status, next)
	}
	if err := s.authorizeTransition(booking, service, userID, role, next); err != nil {
		return nil, err
	}

	if err := s.repo.Booking.UpdateStatus(ctx, booking.ID, next); err != nil {
		return nil, err
	}
	booking.Status = next
	booking.UpdatedAt = s.now()

	s.log.Info("Booking status changed",
		zap.String("booking_id", booking.ID.String()),
		zap.String("status", string(next)),
		zap.String("by_role", role),
	)

	resp := response.BookingToResponse(booking)
	decorateBookingResponse(&resp, service)
	return &resp, nil
}

// authorizeTransition layers role rules on top of the transition table:
// admins may perform any legal transition, providers manage bookings on
// their own services, seekers may only cancel their own pending bookings.
func (s *bookingService) authorizeTransition(booking *entity.Booking, service *entity.Service, userID uuid.UUID, role string, next entity.BookingStatus) error {
	switch role {
	case string(entity.RoleAdmin):
		return nil
	case string(entity.RoleProvider):
		if service != nil && service.ProviderID == userID {
			return nil
		}
	case string(entity.RoleSeeker):
		if booking.UserID != nil && *booking.UserID == userID &&
			next == entity.BookingStatusCancelled && booking.Status == entity.BookingStatusPending {
			return nil
		}
	}
	return fmt.Errorf("unauthorized to change booking status")
}

// ==================== ADMIN METHODS ====================

func (s *bookingService) GetAllBookings(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	bookings, err := s.repo.Booking.FindAll(ctx, req.Limit(), req.Offset())
	if err != nil {
		return nil, err
	}

	total, err := s.repo.Booking.Count(ctx)
	if err != nil {
		return nil, err
	}

	return s.paginate(ctx, bookings, req, total), nil
}

func (s *bookingService) DeleteBooking(ctx context.Context, bookingID string) error {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return fmt.Errorf("invalid booking ID format %s: %w", bookingID, err)
	}

	return s.repo.Booking.Delete(ctx, id)
}

func decorateBookingResponse(resp *response.BookingResponse, service *entity.Service) {
	if service == nil {
		return
	}
	resp.ServiceTitle = service.Title
	resp.Category = service.Category
	resp.Location = service.Location
}
