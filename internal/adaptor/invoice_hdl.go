package adaptor

import (
	"fmt"
	"net/http"

	"gezana/internal/usecase"
	"gezana/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type InvoiceHandler struct {
	service usecase.InvoiceService
	log     *zap.Logger
}

func NewInvoiceHandler(service usecase.InvoiceService, log *zap.Logger) *InvoiceHandler {
	return &InvoiceHandler{
		service: service,
		log:     log.With(zap.String("handler", "invoice")),
	}
}

// GetBookingInvoice handles GET /api/bookings/{id}/invoice (optional auth)
func (h *InvoiceHandler) GetBookingInvoice(w http.ResponseWriter, r *http.Request) {
	var viewerID *uuid.UUID
	role := ""
	if id, ok := utils.GetUserIDFromContext(r.Context()); ok {
		viewerID = &id
		role, _ = utils.GetRoleFromContext(r.Context())
	}

	invoice, err := h.service.ForBooking(r.Context(), chi.URLParam(r, "id"), viewerID, role)
	if err != nil {
		handleServiceError(w, h.log, err, "get booking invoice")
		return
	}

	// ?format=text streams the invoice as a downloadable document.
	if r.URL.Query().Get("format") == "text" {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", invoice.FileName()))
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(invoice.RenderText()))
		return
	}

	utils.ResponseSuccess(w, "success", invoice)
}

// GetMembershipInvoice handles GET /api/memberships/{id}/invoice (protected)
func (h *InvoiceHandler) GetMembershipInvoice(w http.ResponseWriter, r *http.Request) {
	viewerID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}
	role, _ := utils.GetRoleFromContext(r.Context())

	invoice, err := h.service.ForMembership(r.Context(), chi.URLParam(r, "id"), viewerID, role)
	if err != nil {
		handleServiceError(w, h.log, err, "get membership invoice")
		return
	}

	utils.ResponseSuccess(w, "success", invoice)
}
