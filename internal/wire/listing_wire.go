package wire

import (
	"gezana/internal/adaptor"
	"gezana/internal/data/entity"
	"gezana/internal/data/repository"
	"gezana/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireListing(
	r chi.Router,
	listingHandler *adaptor.ListingHandler,
	reviewHandler *adaptor.ReviewHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	r.Get("/api/services", listingHandler.GetServices)
	r.Get("/api/services/{id}", listingHandler.GetServiceByID)
	r.Get("/api/services/{id}/reviews", reviewHandler.GetServiceReviews)
	r.Get("/api/categories", listingHandler.GetCategories)

	// ==================== PROTECTED ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))

		r.Post("/api/reviews", reviewHandler.CreateReview)
	})

	// ==================== PROVIDER ROUTES ====================
	r.Route("/api/provider", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))
		r.Use(middleware.RequireRole(repo.User, log, entity.RoleProvider, entity.RoleAdmin))

		r.Get("/services", listingHandler.GetProviderServices)
		r.Post("/services", listingHandler.CreateService)
		r.Put("/services/{id}", listingHandler.UpdateService)
		r.Delete("/services/{id}", listingHandler.DeleteService)
		r.Post("/services/{id}/offers", listingHandler.CreateOffer)
	})
}
