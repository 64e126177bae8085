package booking

import "errors"

var (
	ErrGuestRequired   = errors.New("guest_id or guest details are required")
	ErrBookingFinished = errors.New("booking is already checked out or cancelled")
	ErrGuestBlacklist  = errors.New("guest is blacklisted")
)
