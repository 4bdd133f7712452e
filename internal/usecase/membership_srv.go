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

// membershipPlans is the fixed plan catalog. Prices are in the configured
// currency per year.
var membershipPlans = map[string]float64{
	"basic":   500,
	"premium": 1200,
}

type MembershipService interface {
	Purchase(ctx context.Context, userID uuid.UUID, req *request.PurchaseMembershipRequest) (*response.MembershipResponse, error)
	GetActive(ctx context.Context, userID uuid.UUID) (*response.MembershipResponse, error)
	GetPlans(ctx context.Context) []response.MembershipPlanResponse
}

type membershipService struct {
	repo *repository.Repository
	log  *zap.Logger
	now  func() time.Time
}

func NewMembershipService(repo *repository.Repository, log *zap.Logger) MembershipService {
	return &membershipService{
		repo: repo,
		log:  log.With(zap.String("service", "membership")),
		now:  time.Now,
	}
}

func (s *membershipService) Purchase(ctx context.Context, userID uuid.UUID, req *request.PurchaseMembershipRequest) (*response.MembershipResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	price, ok := membershipPlans[req.PlanName]
	if !ok {
		return nil, fmt.Errorf("membership plan %s not found", req.PlanName)
	}

	existing, err := s.repo.Membership.FindActiveByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("user already has an active membership")
	}

	now := s.now()
	membership := &entity.Membership{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		UserID:        userID,
		PlanName:      req.PlanName,
		Price:         price,
		Status:        entity.MembershipActive,
		PaymentMethod: entity.PaymentMethod(req.PaymentMethod),
		StartsAt:      now,
		ExpiresAt:     now.AddDate(1, 0, 0),
	}

	// Online purchases settle immediately; cash stays unreferenced until
	// settled in person.
	if membership.PaymentMethod == entity.PaymentMethodOnline {
		txn := utils.GenerateTransactionID("TXN")
		membership.TransactionID = &txn
	}

	if err := s.repo.Membership.Create(ctx, membership); err != nil {
		return nil, err
	}

	s.log.Info("Membership purchased",
		zap.String("user_id", userID.String()),
		zap.String("plan", req.PlanName),
	)

	resp := response.MembershipToResponse(membership)
	return &resp, nil
}

func (s *membershipService) GetActive(ctx context.Context, userID uuid.UUID) (*response.MembershipResponse, error) {
	membership, err := s.repo.Membership.FindActiveByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if membership == nil {
		return nil, fmt.Errorf("no active membership found")
	}

	resp := response.MembershipToResponse(membership)
	return &resp, nil
}

func (s *membershipService) GetPlans(ctx context.Context) []response.MembershipPlanResponse {
	return []response.MembershipPlanResponse{
		{Name: "basic", Price: membershipPlans["basic"], DurationMonths: 12},
		{Name: "premium", Price: membershipPlans["premium"], DurationMonths: 12},
	}
}
