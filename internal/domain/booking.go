package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type BookingStatus string

const (
	BookingConfirmed  BookingStatus = "CONFIRMED"
	BookingCheckedIn  BookingStatus = "CHECKED_IN"
	BookingCheckedOut BookingStatus = "CHECKED_OUT"
	BookingCancelled  BookingStatus = "CANCELLED"
)

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "PENDING"
	PaymentPartial PaymentStatus = "PARTIAL"
	PaymentPaid    PaymentStatus = "PAID"
)

// bookingTransitions is the exhaustive booking state machine.
// CHECKED_OUT and CANCELLED are terminal.
var bookingTransitions = map[BookingStatus]map[BookingStatus]bool{
	BookingConfirmed: {BookingCheckedIn: true, BookingCancelled: true},
	BookingCheckedIn: {BookingCheckedOut: true},
}

// CanTransition reports whether the booking state machine allows moving
// from s to target.
func (s BookingStatus) CanTransition(target BookingStatus) bool {
	return bookingTransitions[s][target]
}

// Terminal reports whether s admits no further transitions.
func (s BookingStatus) Terminal() bool {
	return s == BookingCheckedOut || s == BookingCancelled
}

type Booking struct {
	ID                 int64           `json:"id" gorm:"primaryKey"`
	GuestID            int64           `json:"guest_id" gorm:"index;not null"`
	RoomID             *int64          `json:"room_id,omitempty" gorm:"index"`
	CheckInDate        time.Time       `json:"check_in_date" gorm:"not null"`
	CheckOutDate       time.Time       `json:"check_out_date" gorm:"not null"`
	Adults             int             `json:"adults" gorm:"default:1"`
	Children           int             `json:"children" gorm:"default:0"`
	BaseAmount         decimal.Decimal `json:"base_amount" gorm:"type:decimal(10,2)"`
	Status             BookingStatus   `json:"status" gorm:"size:20;not null;default:CONFIRMED"`
	PaymentStatus      PaymentStatus   `json:"payment_status" gorm:"size:20;not null;default:PENDING"`
	CancellationReason string          `json:"cancellation_reason,omitempty" gorm:"type:text"`
	CheckedOutAt       *time.Time      `json:"checked_out_at,omitempty"`
	CancelledAt        *time.Time      `json:"cancelled_at,omitempty"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`

	Guest *Guest `json:"guest,omitempty" gorm:"foreignKey:GuestID"`
	Room  *Room  `json:"room,omitempty" gorm:"foreignKey:RoomID"`
}

func (Booking) TableName() string { return "bookings" }

// Nights returns the length of the stay in nights. Dates are stored at
// midnight UTC, so this is a plain day difference.
func (b *Booking) Nights() int {
	return int(b.CheckOutDate.Sub(b.CheckInDate).Hours() / 24)
}

// ValidateStayDates enforces check_out > check_in.
func ValidateStayDates(checkIn, checkOut time.Time) error {
	if !checkOut.After(checkIn) {
		return ErrValidation
	}
	return nil
}
