package booking

type CreateBookingRequest struct {
	RoomID      string `json:"room_id" binding:"required"`
	BookingDate string `json:"booking_date" binding:"required"` // YYYY-MM-DD
	SessionType string `json:"session_type" binding:"required"`
	Notes       string `json:"notes"`
}

type DecisionRequest struct {
	ApprovalNotes string `json:"approval_notes"`
}

type ListFilters struct {
	Status     string
	PropertyID string
}
