package entity

import (
	"time"

	"github.com/google/uuid"
)

type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

type SpecialOffer struct {
	Base
	ServiceID    uuid.UUID    `db:"service_id"`
	DiscountType DiscountType `db:"discount_type"`
	Value        float64      `db:"value"`
	StartsAt     time.Time    `db:"starts_at"`
	EndsAt       time.Time    `db:"ends_at"`
	IsActive     bool         `db:"is_active"`
}

// Apply returns the price after the discount, never below zero.
func (o *SpecialOffer) Apply(price float64) float64 {
	var discounted float64
	switch o.DiscountType {
	case DiscountPercentage:
		discounted = price * (1 - o.Value/100)
	case DiscountFixed:
		discounted = price - o.Value
	default:
		return price
	}
	if discounted < 0 {
		return 0
	}
	return discounted
}
