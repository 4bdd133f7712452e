package response

import (
	"time"

	"gezana/internal/data/entity"
)

type ReviewResponse struct {
	ID        string    `json:"id"`
	ServiceID string    `json:"service_id"`
	UserID    string    `json:"user_id"`
	Rating    int       `json:"rating"`
	Comment   *string   `json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func ReviewToResponse(review *entity.Review) ReviewResponse {
	return ReviewResponse{
		ID:        review.ID.String(),
		ServiceID: review.ServiceID.String(),
		UserID:    review.UserID.String(),
		Rating:    review.Rating,
		Comment:   review.Comment,
		CreatedAt: review.CreatedAt,
	}
}
