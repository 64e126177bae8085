package domain

import "errors"

// Error taxonomy shared by every module. Handlers map these onto HTTP
// status codes, services return them wrapped or as-is.
var (
	ErrNotFound          = errors.New("not found")
	ErrValidation        = errors.New("validation error")
	ErrInvalidTransition = errors.New("invalid state transition")
	ErrRoomUnavailable   = errors.New("room unavailable")
	ErrStaleState        = errors.New("stale state, refresh and retry")
	ErrPermissionDenied  = errors.New("permission denied")
)
