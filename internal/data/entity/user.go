package entity

type UserRole string

const (
	RoleSeeker   UserRole = "seeker"
	RoleProvider UserRole = "provider"
	RoleAdmin    UserRole = "admin"
)

type User struct {
	Base
	FullName     string   `db:"full_name"`
	Email        string   `db:"email"`
	PasswordHash string   `db:"password"`
	Phone        *string  `db:"phone"`
	Address      *string  `db:"address"`
	Role         UserRole `db:"role"`
	IsActive     bool     `db:"is_active"`
}
