package room

import "github.com/shopspring/decimal"

type CreateRoomRequest struct {
	RoomNumber    string          `json:"room_number" binding:"required"`
	RoomType      string          `json:"room_type" binding:"required"`
	PricePerNight decimal.Decimal `json:"price_per_night" binding:"required"`
}
