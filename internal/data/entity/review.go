package entity

import (
	"github.com/google/uuid"
)

type Review struct {
	Base
	ServiceID uuid.UUID `db:"service_id"`
	UserID    uuid.UUID `db:"user_id"`
	Rating    int       `db:"rating"` // 1..5
	Comment   *string   `db:"comment"`
	IsVisible bool      `db:"is_visible"` // admins hide reviews instead of deleting
}
