package response

import (
	"time"

	"gezana/internal/data/entity"
)

type ServiceResponse struct {
	ID          string           `json:"id"`
	ProviderID  string           `json:"provider_id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Category    string           `json:"category"`
	Subcategory *string          `json:"subcategory,omitempty"`
	Price       float64          `json:"price"`
	PriceType   entity.PriceType `json:"price_type"`
	Photos      []string         `json:"photos,omitempty"`
	IsAvailable bool             `json:"is_available"`
	Location    string           `json:"location"`
	Offer       *OfferResponse   `json:"special_offer,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
}

type OfferResponse struct {
	ID              string              `json:"id"`
	DiscountType    entity.DiscountType `json:"discount_type"`
	Value           float64             `json:"value"`
	DiscountedPrice float64             `json:"discounted_price"`
	EndsAt          time.Time           `json:"ends_at"`
}

type CategoryResponse struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Slug          string   `json:"slug"`
	Subcategories []string `json:"subcategories,omitempty"`
}

func ServiceToResponse(service *entity.Service, offer *entity.SpecialOffer) ServiceResponse {
	resp := ServiceResponse{
		ID:          service.ID.String(),
		ProviderID:  service.ProviderID.String(),
		Title:       service.Title,
		Description: service.Description,
		Category:    service.Category,
		Subcategory: service.Subcategory,
		Price:       service.Price,
		PriceType:   service.PriceType,
		Photos:      service.Photos,
		IsAvailable: service.IsAvailable,
		Location:    service.Location,
		CreatedAt:   service.CreatedAt,
	}

	if offer != nil {
		resp.Offer = &OfferResponse{
			ID:              offer.ID.String(),
			DiscountType:    offer.DiscountType,
			Value:           offer.Value,
			DiscountedPrice: offer.Apply(service.Price),
			EndsAt:          offer.EndsAt,
		}
	}

	return resp
}

func CategoryToResponse(category *entity.Category) CategoryResponse {
	return CategoryResponse{
		ID:            category.ID.String(),
		Name:          category.Name,
		Slug:          category.Slug,
		Subcategories: category.Subcategories,
	}
}
