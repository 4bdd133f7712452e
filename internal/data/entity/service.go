package entity

import (
	"github.com/google/uuid"
)

type PriceType string

const (
	PriceTypeFixed   PriceType = "fixed"
	PriceTypeHourly  PriceType = "hourly"
	PriceTypePerSqft PriceType = "per_sqft"
	PriceTypeCustom  PriceType = "custom"
)

// Service is a provider's listing. Price is the base price before any
// special offer; the price in effect at booking time is snapshotted into
// the Booking.
type Service struct {
	Base
	ProviderID  uuid.UUID `db:"provider_id"`
	Title       string    `db:"title"`
	Description string    `db:"description"`
	Category    string    `db:"category"`
	Subcategory *string   `db:"subcategory"`
	Price       float64   `db:"price"`
	PriceType   PriceType `db:"price_type"`
	Photos      []string  `db:"photos"`
	IsAvailable bool      `db:"is_available"`
	Location    string    `db:"location"`
}
