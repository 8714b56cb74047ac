package domain

import "time"

type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

type User struct {
	ID            string     `json:"id"`
	Username      string     `json:"username" validate:"required"`
	Email         string     `json:"email" validate:"required,email"`
	PasswordHash  string     `json:"-"`
	Role          UserRole   `json:"role"`
	EmailVerified bool       `json:"email_verified"`
	LastLogin     *time.Time `json:"last_login,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}
