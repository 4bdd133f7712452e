package adaptor

import (
	"encoding/json"
	"net/http"

	"gezana/internal/dto/request"
	"gezana/internal/usecase"
	"gezana/pkg/utils"

	"go.uber.org/zap"
)

type MembershipHandler struct {
	service usecase.MembershipService
	log     *zap.Logger
}

func NewMembershipHandler(service usecase.MembershipService, log *zap.Logger) *MembershipHandler {
	return &MembershipHandler{
		service: service,
		log:     log.With(zap.String("handler", "membership")),
	}
}

// GetPlans handles GET /api/membership-plans (public)
func (h *MembershipHandler) GetPlans(w http.ResponseWriter, r *http.Request) {
	utils.ResponseSuccess(w, "success", h.service.GetPlans(r.Context()))
}

// Purchase handles POST /api/memberships (protected)
func (h *MembershipHandler) Purchase(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.PurchaseMembershipRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	membership, err := h.service.Purchase(r.Context(), userID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "purchase membership")
		return
	}

	utils.ResponseCreated(w, "success", membership)
}

// GetActive handles GET /api/memberships/active (protected)
func (h *MembershipHandler) GetActive(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	membership, err := h.service.GetActive(r.Context(), userID)
	if err != nil {
		handleServiceError(w, h.log, err, "get active membership")
		return
	}

	utils.ResponseSuccess(w, "success", membership)
}
