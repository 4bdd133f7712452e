package request

type RegisterRequest struct {
	FullName string  `json:"full_name" validate:"required,min=2,max=100"`
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=6"`
	Phone    *string `json:"phone,omitempty" validate:"omitempty,min=7,max=15"`
	Address  *string `json:"address,omitempty" validate:"omitempty,max=255"`
	Role     string  `json:"role,omitempty" validate:"omitempty,oneof=seeker provider"`
}

type UpdateProfileRequest struct {
	FullName string  `json:"full_name,omitempty" validate:"omitempty,min=2,max=100"`
	Phone    *string `json:"phone,omitempty" validate:"omitempty,min=7,max=15"`
	Address  *string `json:"address,omitempty" validate:"omitempty,max=255"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}
