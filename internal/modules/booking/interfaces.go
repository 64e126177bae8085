package booking

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"atithi/internal/domain"
)

type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	List(ctx context.Context, status domain.BookingStatus) ([]domain.Booking, error)
	ListByGuest(ctx context.Context, guestID int64) ([]domain.Booking, error)
	UpdateDates(ctx context.Context, bookingID int64, checkIn, checkOut time.Time, base decimal.Decimal) error
	AssignRoom(ctx context.Context, bookingID, roomID int64, base decimal.Decimal) error
}

type RoomRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Room, error)
}

type GuestRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Guest, error)
	FindOrCreateByEmail(ctx context.Context, g *domain.Guest) error
}

type Recorder interface {
	Record(ctx context.Context, action, details string, actorID int64)
}
