package repository

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"atithi/internal/domain"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var b domain.Booking
	err := r.db.WithContext(ctx).Preload("Guest").Preload("Room").First(&b, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

func (r *BookingRepository) List(ctx context.Context, status domain.BookingStatus) ([]domain.Booking, error) {
	q := r.db.WithContext(ctx).Preload("Guest").Preload("Room").Order("created_at desc")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var bookings []domain.Booking
	if err := q.Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *BookingRepository) ListByGuest(ctx context.Context, guestID int64) ([]domain.Booking, error) {
	var bookings []domain.Booking
	err := r.db.WithContext(ctx).Preload("Room").
		Where("guest_id = ?", guestID).Order("created_at desc").Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

// CountActiveForRoom counts CHECKED_IN bookings holding the room. The
// front-desk controller keeps this at most one.
func (r *BookingRepository) CountActiveForRoom(ctx context.Context, roomID int64) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&domain.Booking{}).
		Where("room_id = ? AND status = ?", roomID, domain.BookingCheckedIn).
		Count(&cnt).Error
	return cnt, err
}

// UpdateStatusGuarded moves a booking between states only when the row
// still holds the expected current status.
func (r *BookingRepository) UpdateStatusGuarded(ctx context.Context, bookingID int64, from, to domain.BookingStatus, extra map[string]any) error {
	updates := map[string]any{"status": to}
	for k, v := range extra {
		updates[k] = v
	}
	tx := r.db.WithContext(ctx).
		Model(&domain.Booking{}).
		Where("id = ? AND status = ?", bookingID, from).
		Updates(updates)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return domain.ErrStaleState
	}
	return nil
}

func (r *BookingRepository) UpdateDates(ctx context.Context, bookingID int64, checkIn, checkOut time.Time, base decimal.Decimal) error {
	tx := r.db.WithContext(ctx).
		Model(&domain.Booking{}).
		Where("id = ?", bookingID).
		Updates(map[string]any{
			"check_in_date":  checkIn,
			"check_out_date": checkOut,
			"base_amount":    base,
		})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *BookingRepository) AssignRoom(ctx context.Context, bookingID, roomID int64, base decimal.Decimal) error {
	tx := r.db.WithContext(ctx).
		Model(&domain.Booking{}).
		Where("id = ? AND status = ?", bookingID, domain.BookingConfirmed).
		Updates(map[string]any{"room_id": roomID, "base_amount": base})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return domain.ErrStaleState
	}
	return nil
}

// ReassignRoom moves a checked-in booking onto a different room.
func (r *BookingRepository) ReassignRoom(ctx context.Context, bookingID, roomID int64, base decimal.Decimal) error {
	tx := r.db.WithContext(ctx).
		Model(&domain.Booking{}).
		Where("id = ? AND status = ?", bookingID, domain.BookingCheckedIn).
		Updates(map[string]any{"room_id": roomID, "base_amount": base})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return domain.ErrStaleState
	}
	return nil
}

func (r *BookingRepository) UpdatePaymentStatus(ctx context.Context, bookingID int64, status domain.PaymentStatus) error {
	return r.db.WithContext(ctx).
		Model(&domain.Booking{}).
		Where("id = ?", bookingID).
		Update("payment_status", status).Error
}
