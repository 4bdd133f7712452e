package usecase

import (
	"context"
	"fmt"
	"time"

	"gezana/internal/data/repository"
	"gezana/internal/dto/request"
	"gezana/internal/dto/response"
	"gezana/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type UserService interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*response.UserResponse, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req *request.UpdateProfileRequest) (*response.UserResponse, error)

	// ==================== ADMIN METHODS ====================
	GetAllUsers(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.UserResponse], error)
	DeactivateUser(ctx context.Context, userID string) error
}

type userService struct {
	repo     repository.UserRepository
	identity IdentityService
	log      *zap.Logger
}

func NewUserService(repo repository.UserRepository, identity IdentityService, log *zap.Logger) UserService {
	return &userService{
		repo:     repo,
		identity: identity,
		log:      log.With(zap.String("service", "user")),
	}
}

func (s *userService) GetProfile(ctx context.Context, userID uuid.UUID) (*response.UserResponse, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("user %s not found", userID.String())
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *request.UpdateProfileRequest) (*response.UserResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("user %s not found", userID.String())
	}

	if req.FullName != "" {
		user.FullName = req.FullName
	}
	if req.Phone != nil {
		user.Phone = req.Phone
	}
	if req.Address != nil {
		user.Address = req.Address
	}
	user.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	// Stale cached profiles would leak old contact info into bookings.
	s.identity.Invalidate(ctx, userID)

	s.log.Info("Profile updated", zap.String("user_id", userID.String()))

	resp := response.UserToResponse(user)
	return &resp, nil
}

// ==================== ADMIN METHODS ====================

func (s *userService) GetAllUsers(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.UserResponse], error) {
	users, err := s.repo.FindAll(ctx, req.Limit(), req.Offset())
	if err != nil {
		return nil, err
	}

	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]response.UserResponse, 0, len(users))
	for _, user := range users {
		items = append(items, response.UserToResponse(user))
	}

	return response.NewPaginatedResponse(items, req.Page, req.Limit(), total), nil
}

func (s *userService) DeactivateUser(ctx context.Context, userID string) error {
	id, err := uuid.Parse(userID)
	if err != nil {
		return fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	if err := s.repo.Deactivate(ctx, id); err != nil {
		return err
	}

	s.identity.Invalidate(ctx, id)
	s.log.Info("User deactivated", zap.String("user_id", userID))
	return nil
}
