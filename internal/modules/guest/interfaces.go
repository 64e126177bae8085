package guest

import (
	"context"

	"github.com/shopspring/decimal"

	"atithi/internal/domain"
)

type GuestRepository interface {
	Create(ctx context.Context, g *domain.Guest) error
	GetByID(ctx context.Context, id int64) (*domain.Guest, error)
	Update(ctx context.Context, g *domain.Guest) error
	Search(ctx context.Context, query string) ([]domain.Guest, error)
	SetBlacklisted(ctx context.Context, id int64, blacklisted bool) error
}

type BookingRepository interface {
	ListByGuest(ctx context.Context, guestID int64) ([]domain.Booking, error)
}

type SpendReader interface {
	SumPaymentsForGuest(ctx context.Context, guestID int64) (decimal.Decimal, error)
}

type Recorder interface {
	Record(ctx context.Context, action, details string, actorID int64)
}
