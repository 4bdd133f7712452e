package usecase

import (
	"context"
	"fmt"
	"strings"

	"gezana/internal/data/repository"
	"gezana/internal/dto/request"
	"gezana/pkg/cache"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Identity is the canonical contact tuple for a booking attempt.
type Identity struct {
	IsAuthenticated bool
	UserID          *uuid.UUID
	FullName        string
	Email           string
	Phone           string
	Address         string
}

type IdentityService interface {
	// Resolve produces the identity for a booking attempt. A non-nil userID
	// comes from a validated session; any failure loading that user's
	// profile degrades to guest mode rather than erroring. In guest mode
	// all four contact fields are mandatory and must be non-empty after
	// trimming.
	Resolve(ctx context.Context, userID *uuid.UUID, guest *request.GuestInfoRequest) (*Identity, error)

	// CachedProfile returns the cached contact profile for a user, or nil.
	CachedProfile(ctx context.Context, userID uuid.UUID) *cache.Profile

	// Invalidate drops the cached profile after a profile update.
	Invalidate(ctx context.Context, userID uuid.UUID)
}

type identityService struct {
	userRepo repository.UserRepository
	profiles cache.ProfileCache
	log      *zap.Logger
}

func NewIdentityService(userRepo repository.UserRepository, profiles cache.ProfileCache, log *zap.Logger) IdentityService {
	return &identityService{
		userRepo: userRepo,
		profiles: profiles,
		log:      log.With(zap.String("service", "identity")),
	}
}

func (s *identityService) Resolve(ctx context.Context, userID *uuid.UUID, guest *request.GuestInfoRequest) (*Identity, error) {
	if userID != nil {
		if identity := s.resolveAuthenticated(ctx, *userID); identity != nil {
			return identity, nil
		}
		// Profile unreachable on every path: fall through to guest mode.
		s.log.Warn("Profile resolution failed, degrading to guest",
			zap.String("user_id", userID.String()))
	}

	return resolveGuest(guest)
}

// resolveAuthenticated tries the cache first, then the user store, caching
// on success. Returns nil when the profile cannot be loaded.
func (s *identityService) resolveAuthenticated(ctx context.Context, userID uuid.UUID) *Identity {
	if profile, err := s.profiles.Get(ctx, userID); err == nil && profile != nil {
		return &Identity{
			IsAuthenticated: true,
			UserID:          &userID,
			FullName:        profile.FullName,
			Email:           profile.Email,
			Phone:           profile.Phone,
			Address:         profile.Address,
		}
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil || user == nil || !user.IsActive {
		return nil
	}

	identity := &Identity{
		IsAuthenticated: true,
		UserID:          &userID,
		FullName:        user.FullName,
		Email:           user.Email,
	}
	if user.Phone != nil {
		identity.Phone = *user.Phone
	}
	if user.Address != nil {
		identity.Address = *user.Address
	}

	if err := s.profiles.Set(ctx, &cache.Profile{
		UserID:   userID,
		FullName: identity.FullName,
		Email:    identity.Email,
		Phone:    identity.Phone,
		Address:  identity.Address,
		Role:     string(user.Role),
	}); err != nil {
		// Cache write failure never blocks identity resolution.
		s.log.Warn("Failed to cache profile", zap.Error(err), zap.String("user_id", userID.String()))
	}

	return identity
}

func resolveGuest(guest *request.GuestInfoRequest) (*Identity, error) {
	if guest == nil {
		return nil, fmt.Errorf("validation failed: guest contact information is required")
	}

	fullName := strings.TrimSpace(guest.FullName)
	email := strings.TrimSpace(guest.Email)
	phone := strings.TrimSpace(guest.Phone)
	address := strings.TrimSpace(guest.Address)

	var missing []string
	if fullName == "" {
		missing = append(missing, "full_name")
	}
	if email == "" {
		missing = append(missing, "email")
	}
	if phone == "" {
		missing = append(missing, "phone")
	}
	if address == "" {
		missing = append(missing, "address")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("validation failed: missing guest fields: %s", strings.Join(missing, ", "))
	}

	return &Identity{
		IsAuthenticated: false,
		FullName:        fullName,
		Email:           email,
		Phone:           phone,
		Address:         address,
	}, nil
}

func (s *identityService) CachedProfile(ctx context.Context, userID uuid.UUID) *cache.Profile {
	profile, err := s.profiles.Get(ctx, userID)
	if err != nil {
		return nil
	}
	return profile
}

func (s *identityService) Invalidate(ctx context.Context, userID uuid.UUID) {
	if err := s.profiles.Clear(ctx, userID); err != nil {
		s.log.Warn("Failed to invalidate profile cache",
			zap.Error(err), zap.String("user_id", userID.String()))
	}
}
