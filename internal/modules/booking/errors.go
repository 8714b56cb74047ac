package booking

import "errors"

var (
	ErrInvalidDate       = errors.New("booking date must be in the future")
	ErrInvalidSession    = errors.New("unknown session type")
	ErrRoomNotFound      = errors.New("room not found")
	ErrAccessDenied      = errors.New("access denied")
	ErrSlotTaken         = errors.New("slot already booked or pending approval")
	ErrQuotaExceeded     = errors.New("weekly allocation exceeded")
	ErrNotFound          = errors.New("booking not found")
	ErrInvalidTransition = errors.New("only pending bookings can be decided")
)
