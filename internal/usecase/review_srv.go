package usecase

import (
	"context"
	"fmt"
	"time"

	"gezana/internal/data/entity"
	"gezana/internal/data/repository"
	"gezana/internal/dto/request"
	"gezana/internal/dto/response"
	"gezana/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ReviewService interface {
	CreateReview(ctx context.Context, userID uuid.UUID, req *request.CreateReviewRequest) (*response.ReviewResponse, error)
	GetServiceReviews(ctx context.Context, serviceID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ReviewResponse], error)

	// ==================== ADMIN METHODS ====================
	SetVisibility(ctx context.Context, reviewID string, visible bool) error
	DeleteReview(ctx context.Context, reviewID string) error
}

type reviewService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewReviewService(repo *repository.Repository, log *zap.Logger) ReviewService {
	return &reviewService{
		repo: repo,
		log:  log.With(zap.String("service", "review")),
	}
}

func (s *reviewService) CreateReview(ctx context.Context, userID uuid.UUID, req *request.CreateReviewRequest) (*response.ReviewResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	serviceID, err := uuid.Parse(req.ServiceID)
	if err != nil {
		return nil, fmt.Errorf("invalid service ID format %s: %w", req.ServiceID, err)
	}

	service, err := s.repo.Service.FindByID(ctx, serviceID)
	if err != nil {
		return nil, err
	}
	if service == nil {
		return nil, fmt.Errorf("service %s not found", req.ServiceID)
	}

	// Only seekers with a completed booking for the service may review it.
	if !s.hasCompletedBooking(ctx, userID, serviceID) {
		return nil, fmt.Errorf("cannot review a service without a completed booking")
	}

	now := time.Now()
	review := &entity.Review{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		ServiceID: serviceID,
		UserID:    userID,
		Rating:    req.Rating,
		Comment:   req.Comment,
		IsVisible: true,
	}

	if err := s.repo.Review.Create(ctx, review); err != nil {
		return nil, err
	}

	s.log.Info("Review created",
		zap.String("service_id", serviceID.String()),
		zap.String("user_id", userID.String()),
		zap.Int("rating", req.Rating),
	)

	resp := response.ReviewToResponse(review)
	return &resp, nil
}

func (s *reviewService) hasCompletedBooking(ctx context.Context, userID, serviceID uuid.UUID) bool {
	// Bounded scan over the user's recent bookings; heavy reviewers are
	// rare enough that one page is plenty.
	bookings, err := s.repo.Booking.FindByUserID(ctx, userID, 100, 0)
	if err != nil {
		s.log.Warn("Failed to check bookings for review", zap.Error(err))
		return false
	}
	for _, booking := range bookings {
		if booking.ServiceID == serviceID && booking.Status == entity.BookingStatusCompleted {
			return true
		}
	}
	return false
}

func (s *reviewService) GetServiceReviews(ctx context.Context, serviceID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ReviewResponse], error) {
	id, err := uuid.Parse(serviceID)
	if err != nil {
		return nil, fmt.Errorf("invalid service ID format %s: %w", serviceID, err)
	}

	reviews, err := s.repo.Review.FindVisibleByServiceID(ctx, id, req.Limit(), req.Offset())
	if err != nil {
		return nil, err
	}

	total, err := s.repo.Review.CountVisibleByServiceID(ctx, id)
	if err != nil {
		return nil, err
	}

	items := make([]response.ReviewResponse, 0, len(reviews))
	for _, review := range reviews {
		items = append(items, response.ReviewToResponse(review))
	}

	return response.NewPaginatedResponse(items, req.Page, req.Limit(), total), nil
}

// ==================== ADMIN METHODS ====================

func (s *reviewService) SetVisibility(ctx context.Context, reviewID string, visible bool) error {
	id, err := uuid.Parse(reviewID)
	if err != nil {
		return fmt.Errorf("invalid review ID format %s: %w", reviewID, err)
	}

	return s.repo.Review.SetVisibility(ctx, id, visible)
}

func (s *reviewService) DeleteReview(ctx context.Context, reviewID string) error {
	id, err := uuid.Parse(reviewID)
	if err != nil {
		return fmt.Errorf("invalid review ID format %s: %w", reviewID, err)
	}

	return s.repo.Review.Delete(ctx, id)
}
