package adaptor

import (
	"encoding/json"
	"net/http"

	"gezana/internal/dto/request"
	"gezana/internal/usecase"
	"gezana/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ReviewHandler struct {
	service usecase.ReviewService
	log     *zap.Logger
}

func NewReviewHandler(service usecase.ReviewService, log *zap.Logger) *ReviewHandler {
	return &ReviewHandler{
		service: service,
		log:     log.With(zap.String("handler", "review")),
	}
}

// CreateReview handles POST /api/reviews (protected)
func (h *ReviewHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.CreateReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	review, err := h.service.CreateReview(r.Context(), userID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create review")
		return
	}

	utils.ResponseCreated(w, "success", review)
}

// GetServiceReviews handles GET /api/services/{id}/reviews (public)
func (h *ReviewHandler) GetServiceReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.service.GetServiceReviews(r.Context(), chi.URLParam(r, "id"), parsePagination(r))
	if err != nil {
		handleServiceError(w, h.log, err, "get service reviews")
		return
	}

	utils.ResponseSuccess(w, "success", reviews)
}

// ==================== ADMIN METHODS ====================

// SetVisibility handles PUT /api/admin/reviews/{id}/visibility (admin only)
func (h *ReviewHandler) SetVisibility(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Visible bool `json:"visible"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if err := h.service.SetVisibility(r.Context(), chi.URLParam(r, "id"), req.Visible); err != nil {
		handleServiceError(w, h.log, err, "set review visibility")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// DeleteReview handles DELETE /api/admin/reviews/{id} (admin only)
func (h *ReviewHandler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteReview(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, h.log, err, "delete review")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}
