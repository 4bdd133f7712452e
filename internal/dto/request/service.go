package request

type CreateServiceRequest struct {
	Title       string   `json:"title" validate:"required,min=3,max=150"`
	Description string   `json:"description" validate:"required"`
	Category    string   `json:"category" validate:"required"`
	Subcategory *string  `json:"subcategory,omitempty"`
	Price       float64  `json:"price" validate:"required,gt=0"`
	PriceType   string   `json:"price_type" validate:"required,oneof=fixed hourly per_sqft custom"`
	Photos      []string `json:"photos,omitempty"`
	Location    string   `json:"location" validate:"required"`
}

type UpdateServiceRequest struct {
	Title       string   `json:"title" validate:"required,min=3,max=150"`
	Description string   `json:"description" validate:"required"`
	Category    string   `json:"category" validate:"required"`
	Subcategory *string  `json:"subcategory,omitempty"`
	Price       float64  `json:"price" validate:"required,gt=0"`
	PriceType   string   `json:"price_type" validate:"required,oneof=fixed hourly per_sqft custom"`
	Photos      []string `json:"photos,omitempty"`
	IsAvailable bool     `json:"is_available"`
	Location    string   `json:"location" validate:"required"`
}

type CreateOfferRequest struct {
	DiscountType string  `json:"discount_type" validate:"required,oneof=percentage fixed"`
	Value        float64 `json:"value" validate:"required,gt=0"`
	StartsAt     string  `json:"starts_at" validate:"required"` // RFC 3339
	EndsAt       string  `json:"ends_at" validate:"required"`
}
