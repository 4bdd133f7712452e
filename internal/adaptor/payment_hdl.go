package adaptor

import (
	"encoding/json"
	"io"
	"net/http"

	"gezana/internal/dto/request"
	"gezana/internal/usecase"
	"gezana/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type PaymentHandler struct {
	service usecase.PaymentService
	log     *zap.Logger
}

func NewPaymentHandler(service usecase.PaymentService, log *zap.Logger) *PaymentHandler {
	return &PaymentHandler{
		service: service,
		log:     log.With(zap.String("handler", "payment")),
	}
}

// ProcessPayment handles POST /api/bookings/{id}/pay (optional auth; guest
// bookings are payable through the booking reference)
func (h *PaymentHandler) ProcessPayment(w http.ResponseWriter, r *http.Request) {
	var req request.ConfirmPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	var viewerID *uuid.UUID
	role := ""
	if id, ok := utils.GetUserIDFromContext(r.Context()); ok {
		viewerID = &id
		role, _ = utils.GetRoleFromContext(r.Context())
	}

	booking, err := h.service.ProcessPayment(r.Context(), chi.URLParam(r, "id"), viewerID, role, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "process payment")
		return
	}

	utils.ResponseSuccess(w, "success", booking)
}

// GetPaymentMethods handles GET /api/payment-methods (public)
func (h *PaymentHandler) GetPaymentMethods(w http.ResponseWriter, r *http.Request) {
	utils.ResponseSuccess(w, "success", h.service.GetPaymentMethods(r.Context()))
}
