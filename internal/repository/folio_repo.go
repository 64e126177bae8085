package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"atithi/internal/domain"
)

type FolioRepository struct {
	db *gorm.DB
}

func NewFolioRepository(db *gorm.DB) *FolioRepository {
	return &FolioRepository{db: db}
}

func (r *FolioRepository) AddCharge(ctx context.Context, charge *domain.Charge) error {
	return r.db.WithContext(ctx).Create(charge).Error
}

func (r *FolioRepository) AddPayment(ctx context.Context, payment *domain.Payment) error {
	return r.db.WithContext(ctx).Create(payment).Error
}

func (r *FolioRepository) GetPayment(ctx context.Context, id uuid.UUID) (*domain.Payment, error) {
	var p domain.Payment
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// MarkPaymentVoid flags the payment without touching its amount or
// timestamps; the row stays behind for audit.
func (r *FolioRepository) MarkPaymentVoid(ctx context.Context, id uuid.UUID, actorID int64, reason string) error {
	now := time.Now().UTC()
	tx := r.db.WithContext(ctx).
		Model(&domain.Payment{}).
		Where("id = ? AND void = ?", id, false).
		Updates(map[string]any{
			"void":         true,
			"void_reason":  reason,
			"voided_by_id": actorID,
			"voided_at":    now,
		})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return domain.ErrStaleState
	}
	return nil
}

func (r *FolioRepository) ListCharges(ctx context.Context, bookingID int64) ([]domain.Charge, error) {
	var charges []domain.Charge
	err := r.db.WithContext(ctx).
		Where("booking_id = ?", bookingID).Order("created_at").Find(&charges).Error
	if err != nil {
		return nil, err
	}
	return charges, nil
}

func (r *FolioRepository) ListPayments(ctx context.Context, bookingID int64) ([]domain.Payment, error) {
	var payments []domain.Payment
	err := r.db.WithContext(ctx).
		Where("booking_id = ?", bookingID).Order("created_at").Find(&payments).Error
	if err != nil {
		return nil, err
	}
	return payments, nil
}

// SumPaymentsForGuest totals the guest's non-void payments across all
// of their bookings.
func (r *FolioRepository) SumPaymentsForGuest(ctx context.Context, guestID int64) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	err := r.db.WithContext(ctx).
		Model(&domain.Payment{}).
		Select("SUM(booking_payments.amount)").
		Joins("JOIN bookings ON bookings.id = booking_payments.booking_id").
		Where("bookings.guest_id = ? AND booking_payments.void = ?", guestID, false).
		Scan(&total).Error
	if err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}
