package frontdesk

import "errors"

var (
	// ErrConfirmationRequired is returned by checkout when the folio
	// still carries a balance and the caller did not force.
	ErrConfirmationRequired = errors.New("outstanding balance, confirm checkout explicitly")

	ErrBookingNotConfirmed = errors.New("booking is not in a confirmed state")
	ErrRoomNotAssigned     = errors.New("booking has no room assigned")
)
