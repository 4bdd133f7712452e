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

type ListingHandler struct {
	service usecase.ListingService
	log     *zap.Logger
}

func NewListingHandler(service usecase.ListingService, log *zap.Logger) *ListingHandler {
	return &ListingHandler{
		service: service,
		log:     log.With(zap.String("handler", "listing")),
	}
}

// GetServices handles GET /api/services?category=... (public)
func (h *ListingHandler) GetServices(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")

	services, err := h.service.GetServices(r.Context(), category, parsePagination(r))
	if err != nil {
		handleServiceError(w, h.log, err, "get services")
		return
	}

	utils.ResponseSuccess(w, "success", services)
}

// GetServiceByID handles GET /api/services/{id} (public)
func (h *ListingHandler) GetServiceByID(w http.ResponseWriter, r *http.Request) {
	service, err := h.service.GetServiceByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "get service")
		return
	}

	utils.ResponseSuccess(w, "success", service)
}

// GetCategories handles GET /api/categories (public)
func (h *ListingHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.GetCategories(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "get categories")
		return
	}

	utils.ResponseSuccess(w, "success", categories)
}

// ==================== PROVIDER METHODS ====================

// CreateService handles POST /api/provider/services (provider only)
func (h *ListingHandler) CreateService(w http.ResponseWriter, r *http.Request) {
	providerID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.CreateServiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	service, err := h.service.CreateService(r.Context(), providerID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create service")
		return
	}

	utils.ResponseCreated(w, "success", service)
}

// UpdateService handles PUT /api/provider/services/{id} (provider only)
func (h *ListingHandler) UpdateService(w http.ResponseWriter, r *http.Request) {
	providerID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}
	role, _ := utils.GetRoleFromContext(r.Context())

	var req request.UpdateServiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	service, err := h.service.UpdateService(r.Context(), chi.URLParam(r, "id"), providerID, role, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update service")
		return
	}

	utils.ResponseSuccess(w, "success", service)
}

// DeleteService handles DELETE /api/provider/services/{id} (provider only)
func (h *ListingHandler) DeleteService(w http.ResponseWriter, r *http.Request) {
	providerID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}
	role, _ := utils.GetRoleFromContext(r.Context())

	if err := h.service.DeleteService(r.Context(), chi.URLParam(r, "id"), providerID, role); err != nil {
		handleServiceError(w, h.log, err, "delete service")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// GetProviderServices handles GET /api/provider/services (provider only)
func (h *ListingHandler) GetProviderServices(w http.ResponseWriter, r *http.Request) {
	providerID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	services, err := h.service.GetProviderServices(r.Context(), providerID)
	if err != nil {
		handleServiceError(w, h.log, err, "get provider services")
		return
	}

	utils.ResponseSuccess(w, "success", services)
}

// CreateOffer handles POST /api/provider/services/{id}/offers (provider only)
func (h *ListingHandler) CreateOffer(w http.ResponseWriter, r *http.Request) {
	providerID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}
	role, _ := utils.GetRoleFromContext(r.Context())

	var req request.CreateOfferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	service, err := h.service.CreateOffer(r.Context(), chi.URLParam(r, "id"), providerID, role, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create offer")
		return
	}

	utils.ResponseCreated(w, "success", service)
}
