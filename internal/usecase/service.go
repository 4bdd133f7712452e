package usecase

import (
	"gezana/internal/data/repository"
	"gezana/pkg/cache"
	"gezana/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth       AuthService
	User       UserService
	Identity   IdentityService
	Listing    ListingService
	Booking    BookingService
	Payment    PaymentService
	Invoice    InvoiceService
	Membership MembershipService
	Review     ReviewService
}

func NewService(repo *repository.Repository, profiles cache.ProfileCache, config *utils.Config, log *zap.Logger) *Service {
	identity := NewIdentityService(repo.User, profiles, log)

	return &Service{
		Auth:       NewAuthService(repo, config, log),
		User:       NewUserService(repo.User, identity, log),
		Identity:   identity,
		Listing:    NewListingService(repo, log),
		Booking:    NewBookingService(repo, identity, config, log),
		Payment:    NewPaymentService(repo, log),
		Invoice:    NewInvoiceService(repo, identity, config, log),
		Membership: NewMembershipService(repo, log),
		Review:     NewReviewService(repo, log),
	}
}
