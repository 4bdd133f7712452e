package adaptor

import (
	"net/http"
	"strings"

	"gezana/internal/dto/request"
	"gezana/internal/usecase"
	"gezana/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Auth       *AuthHandler
	User       *UserHandler
	Listing    *ListingHandler
	Booking    *BookingHandler
	Payment    *PaymentHandler
	Invoice    *InvoiceHandler
	Membership *MembershipHandler
	Review     *ReviewHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:       NewAuthHandler(service.Auth, log),
		User:       NewUserHandler(service.User, log),
		Listing:    NewListingHandler(service.Listing, log),
		Booking:    NewBookingHandler(service.Booking, log),
		Payment:    NewPaymentHandler(service.Payment, log),
		Invoice:    NewInvoiceHandler(service.Invoice, log),
		Membership: NewMembershipHandler(service.Membership, log),
		Review:     NewReviewHandler(service.Review, log),
	}
}

// handleServiceError maps service-layer errors onto HTTP status codes by
// message category.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	errMsg := err.Error()

	switch {
	case strings.Contains(errMsg, "not found"):
		log.Warn(operation+" failed - not found",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseNotFound(w, errMsg)

	case strings.Contains(errMsg, "validation failed"):
		log.Warn(operation+" validation failed",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, errMsg, nil)

	case strings.Contains(errMsg, "invalid"):
		log.Warn("Invalid input for "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, errMsg, nil)

	case strings.Contains(errMsg, "unauthorized"):
		log.Warn(operation+" failed - unauthorized",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseForbidden(w, errMsg)

	case strings.Contains(errMsg, "cannot"), strings.Contains(errMsg, "already"):
		log.Warn(operation+" failed - conflict",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, errMsg, nil)

	case strings.Contains(errMsg, "context deadline exceeded"):
		log.Error(operation+" timed out",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseTimeout(w, "The request took too long; please try again")

	default:
		log.Error(operation+" failed",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, "Something went wrong")
	}
}

func parsePagination(r *http.Request) *request.PaginatedRequest {
	query := r.URL.Query()
	return &request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 10),
	}
}
