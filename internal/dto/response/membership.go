package response

import (
	"time"

	"gezana/internal/data/entity"
)

type MembershipResponse struct {
	ID            string                  `json:"id"`
	PlanName      string                  `json:"plan_name"`
	Price         float64                 `json:"price"`
	Status        entity.MembershipStatus `json:"status"`
	PaymentMethod entity.PaymentMethod    `json:"payment_method"`
	TransactionID *string                 `json:"transaction_id,omitempty"`
	StartsAt      time.Time               `json:"starts_at"`
	ExpiresAt     time.Time               `json:"expires_at"`
}

type MembershipPlanResponse struct {
	Name           string  `json:"name"`
	Price          float64 `json:"price"`
	DurationMonths int     `json:"duration_months"`
}

func MembershipToResponse(membership *entity.Membership) MembershipResponse {
	return MembershipResponse{
		ID:            membership.ID.String(),
		PlanName:      membership.PlanName,
		Price:         membership.Price,
		Status:        membership.Status,
		PaymentMethod: membership.PaymentMethod,
		TransactionID: membership.TransactionID,
		StartsAt:      membership.StartsAt,
		ExpiresAt:     membership.ExpiresAt,
	}
}
