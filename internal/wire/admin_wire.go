package wire

import (
	"gezana/internal/adaptor"
	"gezana/internal/data/repository"
	"gezana/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAdmin(
	r chi.Router,
	handler *adaptor.Handler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	r.Route("/api/admin", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))
		r.Use(middleware.Admin(repo.User, log))

		// Booking moderation
		r.Get("/bookings", handler.Booking.GetAllBookings)
		r.Delete("/bookings/{id}", handler.Booking.DeleteBooking)

		// User management
		r.Get("/users", handler.User.GetAllUsers)
		r.Put("/users/{id}/deactivate", handler.User.DeactivateUser)

		// Review moderation
		r.Put("/reviews/{id}/visibility", handler.Review.SetVisibility)
		r.Delete("/reviews/{id}", handler.Review.DeleteReview)
	})
}
