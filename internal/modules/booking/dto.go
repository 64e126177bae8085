package booking

type GuestDetails struct {
	FullName      string `json:"full_name" binding:"required"`
	Phone         string `json:"phone"`
	Email         string `json:"email" binding:"required,email"`
	IDProofNumber string `json:"id_proof_number"`
}

// CreateBookingRequest takes either an existing guest id or inline
// guest details for walk-ins. Room assignment is optional; a booking
// without a room gets one at check-in.
type CreateBookingRequest struct {
	GuestID      *int64        `json:"guest_id"`
	Guest        *GuestDetails `json:"guest"`
	RoomID       *int64        `json:"room_id"`
	CheckInDate  string        `json:"check_in_date" binding:"required"`
	CheckOutDate string        `json:"check_out_date" binding:"required"`
	Adults       int           `json:"adults"`
	Children     int           `json:"children"`
}

type MoveDatesRequest struct {
	CheckInDate  string `json:"check_in_date" binding:"required"`
	CheckOutDate string `json:"check_out_date" binding:"required"`
}

type AssignRoomRequest struct {
	RoomID int64 `json:"room_id" binding:"required"`
}
