package property

type CreatePropertyRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type UpdatePropertyRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

type InviteMemberRequest struct {
	UserID string `json:"user_id" binding:"required"`
	Role   string `json:"role"`
}

type RespondInvitationRequest struct {
	Accept bool `json:"accept"`
}

type CreateRoomRequest struct {
	Name        string `json:"name" binding:"required"`
	Capacity    int    `json:"capacity"`
	Description string `json:"description"`
}

type UpdateRoomRequest struct {
	Name        *string `json:"name,omitempty"`
	Capacity    *int    `json:"capacity,omitempty"`
	Description *string `json:"description,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
}
