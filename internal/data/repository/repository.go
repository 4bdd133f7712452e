package repository

import (
	"gezana/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User         UserRepository
	Session      SessionRepository
	Service      ServiceRepository
	Category     CategoryRepository
	Booking      BookingRepository
	SpecialOffer SpecialOfferRepository
	Referral     ReferralRepository
	Membership   MembershipRepository
	Review       ReviewRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:         NewUserRepository(db, log),
		Session:      NewSessionRepository(db, log),
		Service:      NewServiceRepository(db, log),
		Category:     NewCategoryRepository(db, log),
		Booking:      NewBookingRepository(db, log),
		SpecialOffer: NewSpecialOfferRepository(db, log),
		Referral:     NewReferralRepository(db, log),
		Membership:   NewMembershipRepository(db, log),
		Review:       NewReviewRepository(db, log),
	}
}
