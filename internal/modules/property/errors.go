package property

import "errors"

var (
	ErrValidation       = errors.New("validation error")
	ErrPropertyNotFound = errors.New("property not found")
	ErrRoomNotFound     = errors.New("room not found")
	ErrUserNotFound     = errors.New("user not found")
	ErrMemberNotFound   = errors.New("membership not found")
	ErrAccessDenied     = errors.New("access denied")
	ErrAlreadyMember    = errors.New("user already has a membership for this property")
	ErrInvitationClosed = errors.New("invitation already answered")
)
