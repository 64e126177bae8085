package room

import "errors"

var (
	ErrDuplicateRoomNumber = errors.New("room number already exists")
)
