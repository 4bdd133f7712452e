package response

import (
	"time"

	"gezana/internal/data/entity"
)

type AuthResponse struct {
	UserID    string          `json:"user_id"`
	FullName  string          `json:"full_name"`
	Email     string          `json:"email"`
	Role      entity.UserRole `json:"role"`
	Token     string          `json:"token,omitempty"`
	ExpiresAt *time.Time      `json:"expires_at,omitempty"`
}

type UserResponse struct {
	ID        string          `json:"id"`
	FullName  string          `json:"full_name"`
	Email     string          `json:"email"`
	Phone     *string         `json:"phone,omitempty"`
	Address   *string         `json:"address,omitempty"`
	Role      entity.UserRole `json:"role"`
	IsActive  bool            `json:"is_active"`
	CreatedAt time.Time       `json:"created_at"`
}

func UserToResponse(user *entity.User) UserResponse {
	return UserResponse{
		ID:        user.ID.String(),
		FullName:  user.FullName,
		Email:     user.Email,
		Phone:     user.Phone,
		Address:   user.Address,
		Role:      user.Role,
		IsActive:  user.IsActive,
		CreatedAt: user.CreatedAt,
	}
}
