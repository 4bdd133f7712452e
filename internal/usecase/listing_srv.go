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

type ListingService interface {
	// Public browse endpoints. Prices come back with the active offer
	// already applied in the DiscountedPrice field.
	GetServices(ctx context.Context, category string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ServiceResponse], error)
	GetServiceByID(ctx context.Context, serviceID string) (*response.ServiceResponse, error)
	GetCategories(ctx context.Context) ([]response.CategoryResponse, error)

	// ==================== PROVIDER METHODS ====================
	CreateService(ctx context.Context, providerID uuid.UUID, req *request.CreateServiceRequest) (*response.ServiceResponse, error)
	UpdateService(ctx context.Context, serviceID string, providerID uuid.UUID, role string, req *request.UpdateServiceRequest) (*response.ServiceResponse, error)
	DeleteService(ctx context.Context, serviceID string, providerID uuid.UUID, role string) error
	GetProviderServices(ctx context.Context, providerID uuid.UUID) ([]response.ServiceResponse, error)
	CreateOffer(ctx context.Context, serviceID string, providerID uuid.UUID, role string, req *request.CreateOfferRequest) (*response.ServiceResponse, error)
}

type listingService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewListingService(repo *repository.Repository, log *zap.Logger) ListingService {
	return &listingService{
		repo: repo,
		log:  log.With(zap.String("service", "listing")),
	}
}

func (s *listingService) GetServices(ctx context.Context, category string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ServiceResponse], error) {
	if category != "" {
		// Category filters go through the slug table so typos 404 instead of
		// silently returning an empty list.
		cat, err := s.repo.Category.FindBySlug(ctx, category)
		if err != nil {
			return nil, err
		}
		if cat == nil {
			return nil, fmt.Errorf("category %s not found", category)
		}
		category = cat.Slug
	}

	services, err := s.repo.Service.FindAvailable(ctx, category, req.Limit(), req.Offset())
	if err != nil {
		return nil, err
	}

	total, err := s.repo.Service.CountAvailable(ctx, category)
	if err != nil {
		return nil, err
	}

	items := make([]response.ServiceResponse, 0, len(services))
	for _, service := range services {
		items = append(items, s.toResponse(ctx, service))
	}

	return response.NewPaginatedResponse(items, req.Page, req.Limit(), total), nil
}

func (s *listingService) toResponse(ctx context.Context, service *entity.Service) response.ServiceResponse {
	offer, err := s.repo.SpecialOffer.FindActiveByServiceID(ctx, service.ID)
	if err != nil {
		s.log.Warn("Failed to load offer for listing. Continue anyway",
			zap.Error(err), zap.String("service_id", service.ID.String()))
		offer = nil
	}
	return response.ServiceToResponse(service, offer)
}

func (s *listingService) GetServiceByID(ctx context.Context, serviceID string) (*response.ServiceResponse, error) {
	id, err := uuid.Parse(serviceID)
	if err != nil {
		return nil, fmt.Errorf("invalid service ID format %s: %w", serviceID, err)
	}

	service, err := s.repo.Service.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if service == nil {
		return nil, fmt.Errorf("service %s not found", serviceID)
	}

	resp := s.toResponse(ctx, service)
	return &resp, nil
}

func (s *listingService) GetCategories(ctx context.Context) ([]response.CategoryResponse, error) {
	categories, err := s.repo.Category.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]response.CategoryResponse, 0, len(categories))
	for _, category := range categories {
		items = append(items, response.CategoryToResponse(category))
	}
	return items, nil
}

// ==================== PROVIDER METHODS ====================

func (s *listingService) CreateService(ctx context.Context, providerID uuid.UUID, req *request.CreateServiceRequest) (*response.ServiceResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	category, err := s.repo.Category.FindBySlug(ctx, req.Category)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, fmt.Errorf("category %s not found", req.Category)
	}

	now := time.Now()
	service := &entity.Service{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		ProviderID:  providerID,
		Title:       req.Title,
		Description: req.Description,
		Category:    category.Slug,
		Subcategory: req.Subcategory,
		Price:       req.Price,
		PriceType:   entity.PriceType(req.PriceType),
		Photos:      req.Photos,
		IsAvailable: true,
		Location:    req.Location,
	}

	if err := s.repo.Service.Create(ctx, service); err != nil {
		return nil, err
	}

	s.log.Info("Service created",
		zap.String("service_id", service.ID.String()),
		zap.String("provider_id", providerID.String()),
	)

	resp := response.ServiceToResponse(service, nil)
	return &resp, nil
}

func (s *listingService) UpdateService(ctx context.Context, serviceID string, providerID uuid.UUID, role string, req *request.UpdateServiceRequest) (*response.ServiceResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	service, err := s.loadOwnedService(ctx, serviceID, providerID, role)
	if err != nil {
		return nil, err
	}

	service.Title = req.Title
	service.Description = req.Description
	service.Category = req.Category
	service.Subcategory = req.Subcategory
	service.Price = req.Price
	service.PriceType = entity.PriceType(req.PriceType)
	service.Photos = req.Photos
	service.IsAvailable = req.IsAvailable
	service.Location = req.Location
	service.UpdatedAt = time.Now()

	if err := s.repo.Service.Update(ctx, service); err != nil {
		return nil, err
	}

	resp := s.toResponse(ctx, service)
	return &resp, nil
}

func (s *listingService) DeleteService(ctx context.Context, serviceID string, providerID uuid.UUID, role string) error {
	service, err := s.loadOwnedService(ctx, serviceID, providerID, role)
	if err != nil {
		return err
	}

	return s.repo.Service.Delete(ctx, service.ID)
}

func (s *listingService) loadOwnedService(ctx context.Context, serviceID string, providerID uuid.UUID, role string) (*entity.Service, error) {
	id, err := uuid.Parse(serviceID)
	if err != nil {
		return nil, fmt.Errorf("invalid service ID format %s: %w", serviceID, err)
	}

	service, err := s.repo.Service.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if service == nil {
		return nil, fmt.Errorf("service %s not found", serviceID)
	}
	if service.ProviderID != providerID && role != string(entity.RoleAdmin) {
		return nil, fmt.Errorf("unauthorized to manage this service")
	}

	return service, nil
}

func (s *listingService) GetProviderServices(ctx context.Context, providerID uuid.UUID) ([]response.ServiceResponse, error) {
	services, err := s.repo.Service.FindByProviderID(ctx, providerID)
	if err != nil {
		return nil, err
	}

	items := make([]response.ServiceResponse, 0, len(services))
	for _, service := range services {
		items = append(items, s.toResponse(ctx, service))
	}
	return items, nil
}

func (s *listingService) CreateOffer(ctx context.Context, serviceID string, providerID uuid.UUID, role string, req *request.CreateOfferRequest) (*response.ServiceResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	service, err := s.loadOwnedService(ctx, serviceID, providerID, role)
	if err != nil {
		return nil, err
	}

	startsAt, err := time.Parse(time.RFC3339, req.StartsAt)
	if err != nil {
		return nil, fmt.Errorf("validation failed: invalid starts_at %s", req.StartsAt)
	}
	endsAt, err := time.Parse(time.RFC3339, req.EndsAt)
	if err != nil {
		return nil, fmt.Errorf("validation failed: invalid ends_at %s", req.EndsAt)
	}
	if !endsAt.After(startsAt) {
		return nil, fmt.Errorf("validation failed: offer must end after it starts")
	}
	if req.DiscountType == string(entity.DiscountPercentage) && req.Value > 100 {
		return nil, fmt.Errorf("validation failed: percentage discount cannot exceed 100")
	}

	// One active offer per service: a new offer supersedes the old one.
	if existing, err := s.repo.SpecialOffer.FindActiveByServiceID(ctx, service.ID); err == nil && existing != nil {
		if err := s.repo.SpecialOffer.Deactivate(ctx, existing.ID); err != nil {
			s.log.Warn("Failed to deactivate previous offer. Continue anyway",
				zap.Error(err), zap.String("offer_id", existing.ID.String()))
		}
	}

	now := time.Now()
	offer := &entity.SpecialOffer{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		ServiceID:    service.ID,
		DiscountType: entity.DiscountType(req.DiscountType),
		Value:        req.Value,
		StartsAt:     startsAt,
		EndsAt:       endsAt,
		IsActive:     true,
	}

	if err := s.repo.SpecialOffer.Create(ctx, offer); err != nil {
		return nil, err
	}

	s.log.Info("Special offer created",
		zap.String("service_id", service.ID.String()),
		zap.String("discount_type", req.DiscountType),
		zap.Float64("value", req.Value),
	)

	resp := response.ServiceToResponse(service, offer)
	return &resp, nil
}
