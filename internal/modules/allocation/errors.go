package allocation

import "errors"

var (
	ErrInvalidPolicy    = errors.New("invalid time allocation policy")
	ErrPropertyNotFound = errors.New("property not found")
	ErrAccessDenied     = errors.New("access denied")
)
