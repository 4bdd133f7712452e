package response

import (
	"time"

	"gezana/internal/data/entity"
)

type BookingResponse struct {
	ID            string               `json:"id"`
	OrderID       string               `json:"order_id"`
	ServiceID     string               `json:"service_id"`
	ServiceTitle  string               `json:"service_title,omitempty"`
	Category      string               `json:"category,omitempty"`
	ProviderName  string               `json:"provider_name,omitempty"`
	Location      string               `json:"location,omitempty"`
	UserID        string               `json:"user_id,omitempty"`
	Guest         *entity.GuestInfo    `json:"guest_info,omitempty"`
	ScheduledAt   time.Time            `json:"scheduled_at"`
	Note          string               `json:"note"`
	Status        entity.BookingStatus `json:"status"`
	PaymentMethod entity.PaymentMethod `json:"payment_method"`
	PaymentStatus entity.PaymentStatus `json:"payment_status"`
	ReferralCode  *string              `json:"referral_code,omitempty"`
	Amount        float64              `json:"amount"`
	OriginalPrice float64              `json:"original_price,omitempty"` // display only when discounted
	TransactionID *string              `json:"transaction_id,omitempty"`
	PaidAt        *time.Time           `json:"paid_at,omitempty"`
	CreatedAt     time.Time            `json:"created_at"`
}

type PaymentMethodResponse struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

func BookingToResponse(booking *entity.Booking) BookingResponse {
	resp := BookingResponse{
		ID:            booking.ID.String(),
		OrderID:       booking.OrderID,
		ServiceID:     booking.ServiceID.String(),
		Guest:         booking.Guest,
		ScheduledAt:   booking.ScheduledAt,
		Note:          booking.Note,
		Status:        booking.Status,
		PaymentMethod: booking.PaymentMethod,
		PaymentStatus: booking.PaymentStatus,
		ReferralCode:  booking.ReferralCode,
		Amount:        booking.Amount,
		TransactionID: booking.TransactionID,
		PaidAt:        booking.PaidAt,
		CreatedAt:     booking.CreatedAt,
	}

	if booking.UserID != nil {
		resp.UserID = booking.UserID.String()
	}

	return resp
}
