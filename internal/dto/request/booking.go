package request

// GuestInfoRequest carries inline contact details for unauthenticated
// bookings. All four fields are mandatory for guests.
type GuestInfoRequest struct {
	FullName string `json:"full_name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"required"`
	Address  string `json:"address" validate:"required"`
}

type CreateBookingRequest struct {
	ServiceID     string            `json:"service" validate:"required,uuid4"`
	Date          string            `json:"date" validate:"required"`      // YYYY-MM-DD
	Time          string            `json:"time" validate:"required"`      // hourly slot, 08:00-18:00
	PaymentMethod string            `json:"payment_method,omitempty" validate:"omitempty,oneof=cash online"`
	Note          string            `json:"note,omitempty"`
	ReferralCode  string            `json:"referral_code,omitempty"`
	Guest         *GuestInfoRequest `json:"guest_info,omitempty"`
}

// UpdateBookingRequest covers note/date edits and status transitions. The
// service id must always be re-supplied so the update path can verify the
// booking still points at a resolvable service.
type UpdateBookingRequest struct {
	ServiceID string `json:"service" validate:"required,uuid4"`
	Date      string `json:"date,omitempty"`
	Time      string `json:"time,omitempty"`
	Note      *string `json:"note,omitempty"`
	Status    string `json:"status,omitempty" validate:"omitempty,oneof=pending confirmed cancelled completed"`
}

// ChangeStatusRequest carries a single status transition. The service id
// must be re-supplied so the transition re-proves the booking still points
// at a live service; a booking orphaned by a service deletion is frozen.
type ChangeStatusRequest struct {
	ServiceID string `json:"service" validate:"required,uuid4"`
	Status    string `json:"status" validate:"required,oneof=pending confirmed cancelled completed"`
}

// ConfirmPaymentRequest finalizes an online payment. The transaction id is
// optional; one is synthesized when absent.
type ConfirmPaymentRequest struct {
	TransactionID string `json:"transaction_id,omitempty"`
}
