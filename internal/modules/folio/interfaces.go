package folio

import (
	"context"

	"github.com/google/uuid"

	"atithi/internal/domain"
)

// FolioRepository defines the ledger persistence operations.
type FolioRepository interface {
	AddCharge(ctx context.Context, charge *domain.Charge) error
	AddPayment(ctx context.Context, payment *domain.Payment) error
	GetPayment(ctx context.Context, id uuid.UUID) (*domain.Payment, error)
	MarkPaymentVoid(ctx context.Context, id uuid.UUID, actorID int64, reason string) error
	ListCharges(ctx context.Context, bookingID int64) ([]domain.Charge, error)
	ListPayments(ctx context.Context, bookingID int64) ([]domain.Payment, error)
}

// BookingRepository is the slice of booking persistence the folio needs.
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	UpdatePaymentStatus(ctx context.Context, bookingID int64, status domain.PaymentStatus) error
}

// Recorder appends audit entries; nil disables auditing.
type Recorder interface {
	Record(ctx context.Context, action, details string, actorID int64)
}
