package domain

import "time"

type SessionType string

const (
	SessionMorning SessionType = "morning"
	SessionMidday  SessionType = "midday"
	SessionEvening SessionType = "evening"
)

func (s SessionType) Valid() bool {
	switch s {
	case SessionMorning, SessionMidday, SessionEvening:
		return true
	}
	return false
}

type BookingStatus string

const (
	BookingPending  BookingStatus = "pending"
	BookingApproved BookingStatus = "approved"
	BookingRejected BookingStatus = "rejected"
)

// Active reports whether the status occupies a slot. Pending and approved
// applications block the slot; rejected ones do not.
func (s BookingStatus) Active() bool {
	return s == BookingPending || s == BookingApproved
}

// BookingApplication reserves one session slot: (room, calendar date,
// session type). DurationValue is snapshotted from the property's time
// allocation at creation and never recomputed.
type BookingApplication struct {
	ID            string        `json:"id"`
	UserID        string        `json:"user_id"`
	RoomID        string        `json:"room_id"`
	BookingDate   time.Time     `json:"booking_date"`
	SessionType   SessionType   `json:"session_type"`
	Status        BookingStatus `json:"status"`
	Notes         string        `json:"notes,omitempty"`
	DurationValue float64       `json:"duration_value"`
	ApprovedBy    *string       `json:"approved_by,omitempty"`
	ApprovalNotes string        `json:"approval_notes,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}
