package domain

import "time"

type MemberRole string

const (
	MemberRoleMember MemberRole = "member"
	MemberRoleAdmin  MemberRole = "admin"
)

type InvitationStatus string

const (
	InvitationPending  InvitationStatus = "pending"
	InvitationAccepted InvitationStatus = "accepted"
	InvitationRejected InvitationStatus = "rejected"
)

type Property struct {
	ID          string    `json:"id"`
	Name        string    `json:"name" validate:"required"`
	Description string    `json:"description,omitempty"`
	OwnerID     string    `json:"owner_id"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

// PropertyMember is the membership edge between a user and a property.
// Unique per (property_id, user_id).
type PropertyMember struct {
	ID               string           `json:"id"`
	PropertyID       string           `json:"property_id"`
	UserID           string           `json:"user_id"`
	Role             MemberRole       `json:"role"`
	InvitationStatus InvitationStatus `json:"invitation_status"`
	JoinedAt         time.Time        `json:"joined_at"`
}
