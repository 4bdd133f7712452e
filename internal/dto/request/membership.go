package request

type PurchaseMembershipRequest struct {
	PlanName      string `json:"plan_name" validate:"required,oneof=basic premium"`
	PaymentMethod string `json:"payment_method" validate:"required,oneof=cash online"`
}
