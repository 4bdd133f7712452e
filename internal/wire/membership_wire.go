package wire

import (
	"gezana/internal/adaptor"
	"gezana/internal/data/repository"
	"gezana/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireMembership(
	r chi.Router,
	membershipHandler *adaptor.MembershipHandler,
	invoiceHandler *adaptor.InvoiceHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	r.Get("/api/membership-plans", membershipHandler.GetPlans)

	// ==================== PROTECTED ROUTES ====================
	r.Route("/api/memberships", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))

		r.Post("/", membershipHandler.Purchase)
		r.Get("/active", membershipHandler.GetActive)
		r.Get("/{id}/invoice", invoiceHandler.GetMembershipInvoice)
	})
}
