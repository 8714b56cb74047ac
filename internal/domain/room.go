package domain

import "time"

type Room struct {
	ID          string    `json:"id"`
	PropertyID  string    `json:"property_id"`
	Name        string    `json:"name" validate:"required"`
	Capacity    int       `json:"capacity" validate:"required,gte=1"`
	Description string    `json:"description,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}
