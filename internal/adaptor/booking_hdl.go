package adaptor

import (
	"encoding/json"
	"net/http"

	"gezana/internal/dto/request"
	"gezana/internal/usecase"
	"gezana/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingHandler struct {
	service usecase.BookingService
	log     *zap.Logger
}

func NewBookingHandler(service usecase.BookingService, log *zap.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log.With(zap.String("handler", "booking")),
	}
}

// CreateBooking handles POST /api/bookings (optional auth: guests welcome)
func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req request.CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	// A session may or may not be present; either way the request proceeds.
	var userID *uuid.UUID
	if id, ok := utils.GetUserIDFromContext(r.Context()); ok {
		userID = &id
	}

	booking, err := h.service.CreateBooking(r.Context(), userID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create booking")
		return
	}

	utils.ResponseCreated(w, "success", booking)
}

// GetBooking handles GET /api/bookings/{id} (optional auth)
func (h *BookingHandler) GetBooking(w http.ResponseWriter, r *http.Request) {
	bookingID := chi.URLParam(r, "id")

	var viewerID *uuid.UUID
	role := ""
	if id, ok := utils.GetUserIDFromContext(r.Context()); ok {
		viewerID = &id
		role, _ = utils.GetRoleFromContext(r.Context())
	}

	booking, err := h.service.GetBooking(r.Context(), bookingID, viewerID, role)
	if err != nil {
		handleServiceError(w, h.log, err, "get booking")
		return
	}

	utils.ResponseSuccess(w, "success", booking)
}

// GetUserBookings handles GET /api/user/bookings (protected)
func (h *BookingHandler) GetUserBookings(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	bookings, err := h.service.GetUserBookings(r.Context(), userID, parsePagination(r))
	if err != nil {
		handleServiceError(w, h.log, err, "get user bookings")
		return
	}

	utils.ResponseSuccess(w, "success", bookings)
}

// GetProviderBookings handles GET /api/provider/bookings (provider only)
func (h *BookingHandler) GetProviderBookings(w http.ResponseWriter, r *http.Request) {
	providerID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	bookings, err := h.service.GetProviderBookings(r.Context(), providerID, parsePagination(r))
	if err != nil {
		handleServiceError(w, h.log, err, "get provider bookings")
		return
	}

	utils.ResponseSuccess(w, "success", bookings)
}

// UpdateBooking handles PUT /api/bookings/{id} (protected)
func (h *BookingHandler) UpdateBooking(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}
	role, _ := utils.GetRoleFromContext(r.Context())

	var req request.UpdateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	booking, err := h.service.UpdateBooking(r.Context(), chi.URLParam(r, "id"), userID, role, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update booking")
		return
	}

	utils.ResponseSuccess(w, "success", booking)
}

// ChangeStatus handles PATCH /api/bookings/{id}/status (protected)
func (h *BookingHandler) ChangeStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}
	role, _ := utils.GetRoleFromContext(r.Context())

	var req request.ChangeStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	booking, err := h.service.ChangeStatus(r.Context(), chi.URLParam(r, "id"), userID, role, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "change booking status")
		return
	}

	utils.ResponseSuccess(w, "success", booking)
}

// ==================== ADMIN METHODS ====================

// GetAllBookings handles GET /api/admin/bookings (admin only)
func (h *BookingHandler) GetAllBookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.service.GetAllBookings(r.Context(), parsePagination(r))
	if err != nil {
		handleServiceError(w, h.log, err, "get all bookings")
		return
	}

	utils.ResponseSuccess(w, "success", bookings)
}

// DeleteBooking handles DELETE /api/admin/bookings/{id} (admin only)
func (h *BookingHandler) DeleteBooking(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteBooking(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, h.log, err, "delete booking")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}
