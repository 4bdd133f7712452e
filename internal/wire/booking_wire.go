package wire

import (
	"gezana/internal/adaptor"
	"gezana/internal/data/entity"
	"gezana/internal/data/repository"
	"gezana/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireBooking(
	r chi.Router,
	bookingHandler *adaptor.BookingHandler,
	paymentHandler *adaptor.PaymentHandler,
	invoiceHandler *adaptor.InvoiceHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// ==================== OPTIONAL AUTH ROUTES ====================
	// Guests book, pay, and download invoices without an account; a valid
	// session upgrades the same endpoints to the authenticated flow.
	r.Group(func(r chi.Router) {
		r.Use(middleware.OptionalAuth(repo.Session, repo.User, log))

		r.Post("/api/bookings", bookingHandler.CreateBooking)
		r.Get("/api/bookings/{id}", bookingHandler.GetBooking)
		r.Post("/api/bookings/{id}/pay", paymentHandler.ProcessPayment)
		r.Get("/api/bookings/{id}/invoice", invoiceHandler.GetBookingInvoice)
	})

	// ==================== PUBLIC ROUTES ====================
	r.Get("/api/payment-methods", paymentHandler.GetPaymentMethods)

	// ==================== PROTECTED ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))

		r.Get("/api/user/bookings", bookingHandler.GetUserBookings)
		r.Put("/api/bookings/{id}", bookingHandler.UpdateBooking)
		r.Patch("/api/bookings/{id}/status", bookingHandler.ChangeStatus)
	})

	// ==================== PROVIDER ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))
		r.Use(middleware.RequireRole(repo.User, log, entity.RoleProvider, entity.RoleAdmin))

		r.Get("/api/provider/bookings", bookingHandler.GetProviderBookings)
	})
}
