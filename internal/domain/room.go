package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type RoomStatus string

const (
	RoomAvailable   RoomStatus = "AVAILABLE"
	RoomOccupied    RoomStatus = "OCCUPIED"
	RoomDirty       RoomStatus = "DIRTY"
	RoomMaintenance RoomStatus = "MAINTENANCE"
)

// roomTransitions is the exhaustive housekeeping state machine.
// OCCUPIED is only ever entered and left by the front-desk controller;
// the remaining moves are explicit housekeeping actions.
var roomTransitions = map[RoomStatus]map[RoomStatus]bool{
	RoomAvailable:   {RoomOccupied: true, RoomDirty: true, RoomMaintenance: true},
	RoomOccupied:    {RoomDirty: true},
	RoomDirty:       {RoomAvailable: true, RoomOccupied: true},
	RoomMaintenance: {RoomAvailable: true},
}

// CanTransition reports whether the housekeeping state machine allows
// moving from s to target.
func (s RoomStatus) CanTransition(target RoomStatus) bool {
	return roomTransitions[s][target]
}

type Room struct {
	ID            int64           `json:"id" gorm:"primaryKey"`
	RoomNumber    string          `json:"room_number" gorm:"size:10;uniqueIndex;not null"`
	RoomType      string          `json:"room_type" gorm:"size:50;not null"`
	PricePerNight decimal.Decimal `json:"price_per_night" gorm:"type:decimal(10,2);not null"`
	Status        RoomStatus      `json:"status" gorm:"size:20;not null;default:AVAILABLE"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

func (Room) TableName() string { return "rooms" }
