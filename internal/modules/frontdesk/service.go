package frontdesk

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"atithi/internal/domain"
	"atithi/internal/repository"
)

// Service is the front-desk controller. Check-in, checkout, cancel and
// room moves each touch the booking and its room together, so every
// mutation runs inside a transaction and is serialized per room.
type Service struct {
	db       *gorm.DB
	bookings *repository.BookingRepository
	rooms    *repository.RoomRepository
	folio    TotalsProvider
	tasks    TaskCreator
	activity Recorder
	board    BoardPublisher
	locks    *roomLocks
}

func NewService(db *gorm.DB, folio TotalsProvider, tasks TaskCreator, activity Recorder, board BoardPublisher) *Service {
	return &Service{
		db:       db,
		bookings: repository.NewBookingRepository(db),
		rooms:    repository.NewRoomRepository(db),
		folio:    folio,
		tasks:    tasks,
		activity: activity,
		board:    board,
		locks:    newRoomLocks(),
	}
}

// CheckIn moves a confirmed booking into its room. A room id may be
// supplied to assign or override the room at the desk. Checking in an
// already checked-in booking is a no-op.
func (s *Service) CheckIn(ctx context.Context, bookingID int64, roomID *int64, actorID int64) (*domain.Booking, error) {
	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.Status == domain.BookingCheckedIn {
		return booking, nil
	}
	if booking.Status != domain.BookingConfirmed {
		return nil, ErrBookingNotConfirmed
	}

	targetRoomID := booking.RoomID
	if roomID != nil {
		targetRoomID = roomID
	}
	if targetRoomID == nil {
		return nil, ErrRoomNotAssigned
	}

	unlock := s.locks.lock(*targetRoomID)
	defer unlock()

	var room *domain.Room
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		bookings := repository.NewBookingRepository(tx)
		rooms := repository.NewRoomRepository(tx)

		room, err = rooms.GetByID(ctx, *targetRoomID)
		if err != nil {
			return err
		}
		if room.Status == domain.RoomOccupied || room.Status == domain.RoomMaintenance {
			return domain.ErrRoomUnavailable
		}
		active, err := bookings.CountActiveForRoom(ctx, room.ID)
		if err != nil {
			return err
		}
		if active > 0 {
			return domain.ErrRoomUnavailable
		}

		if roomID != nil && (booking.RoomID == nil || *booking.RoomID != *roomID) {
			base := stayPrice(room.PricePerNight, booking)
			if err := bookings.AssignRoom(ctx, bookingID, room.ID, base); err != nil {
				return err
			}
		}
		if err := rooms.UpdateStatusGuarded(ctx, room.ID, room.Status, domain.RoomOccupied); err != nil {
			return err
		}
		return bookings.UpdateStatusGuarded(ctx, bookingID, domain.BookingConfirmed, domain.BookingCheckedIn, nil)
	})
	if err != nil {
		return nil, err
	}

	s.afterDeskOp(ctx, "CHECK_IN",
		fmt.Sprintf("Booking #%d checked in to room %s", bookingID, room.RoomNumber), actorID)
	s.publishRoom(room.ID, room.RoomNumber, domain.RoomOccupied)
	s.publishBooking(bookingID, domain.BookingCheckedIn)

	return s.bookings.GetByID(ctx, bookingID)
}

// CheckOutResult is what the desk sees after checkout: the closed
// booking, the final folio figures, and whether money was still owed.
type CheckOutResult struct {
	Booking        *domain.Booking    `json:"booking"`
	Totals         domain.FolioTotals `json:"totals"`
	BalanceWarning bool               `json:"balance_warning"`
}

// CheckOut closes a stay. If the folio balance is positive the call
// fails with ErrConfirmationRequired unless force is set; a forced
// checkout goes through and flags the unpaid balance in the result.
// Checking out an already checked-out booking returns the final bill
// again without touching anything.
func (s *Service) CheckOut(ctx context.Context, bookingID int64, force bool, actorID int64) (*CheckOutResult, error) {
	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	totals, err := s.folio.Totals(ctx, booking)
	if err != nil {
		return nil, err
	}

	if booking.Status == domain.BookingCheckedOut {
		return &CheckOutResult{Booking: booking, Totals: totals, BalanceWarning: totals.Balance.IsPositive()}, nil
	}
	if booking.Status != domain.BookingCheckedIn {
		return nil, domain.ErrInvalidTransition
	}
	if booking.RoomID == nil {
		return nil, ErrRoomNotAssigned
	}

	owing := totals.Balance.IsPositive()
	if owing && !force {
		return nil, ErrConfirmationRequired
	}

	unlock := s.locks.lock(*booking.RoomID)
	defer unlock()

	now := nowUTC()
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		bookings := repository.NewBookingRepository(tx)
		rooms := repository.NewRoomRepository(tx)

		if err := bookings.UpdateStatusGuarded(ctx, bookingID, domain.BookingCheckedIn, domain.BookingCheckedOut,
			map[string]any{"checked_out_at": now}); err != nil {
			return err
		}
		return rooms.UpdateStatusGuarded(ctx, *booking.RoomID, domain.RoomOccupied, domain.RoomDirty)
	})
	if err != nil {
		return nil, err
	}

	roomNumber := ""
	if booking.Room != nil {
		roomNumber = booking.Room.RoomNumber
	}
	if s.tasks != nil {
		if err := s.tasks.CreateCleaningTask(ctx, *booking.RoomID, domain.PriorityHigh,
			fmt.Sprintf("Turn over room %s after checkout", roomNumber)); err != nil {
			// Checkout already committed; the task can be raised by hand.
			s.afterDeskOp(ctx, "TASK_FAILED",
				fmt.Sprintf("Could not queue cleaning for room %s: %v", roomNumber, err), actorID)
		}
	}

	detail := fmt.Sprintf("Booking #%d checked out of room %s", bookingID, roomNumber)
	if owing {
		detail += fmt.Sprintf(" with outstanding balance %s", totals.Balance)
	}
	s.afterDeskOp(ctx, "CHECK_OUT", detail, actorID)
	s.publishRoom(*booking.RoomID, roomNumber, domain.RoomDirty)
	s.publishBooking(bookingID, domain.BookingCheckedOut)

	refreshed, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	return &CheckOutResult{Booking: refreshed, Totals: totals, BalanceWarning: owing}, nil
}

// Cancel voids a confirmed booking before arrival. Cancelling twice is
// a no-op; cancelling after check-in is refused.
func (s *Service) Cancel(ctx context.Context, bookingID int64, reason string, actorID int64) (*domain.Booking, error) {
	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.Status == domain.BookingCancelled {
		return booking, nil
	}
	if booking.Status != domain.BookingConfirmed {
		return nil, domain.ErrInvalidTransition
	}

	err = s.bookings.UpdateStatusGuarded(ctx, bookingID, domain.BookingConfirmed, domain.BookingCancelled,
		map[string]any{"cancellation_reason": reason, "cancelled_at": nowUTC()})
	if err != nil {
		return nil, err
	}

	s.afterDeskOp(ctx, "BOOKING_CANCELLED",
		fmt.Sprintf("Booking #%d cancelled: %s", bookingID, reason), actorID)
	s.publishBooking(bookingID, domain.BookingCancelled)

	return s.bookings.GetByID(ctx, bookingID)
}

// ChangeRoom moves an in-house guest to another room. The vacated room
// turns DIRTY and gets a high-priority cleaning task; the stay is
// repriced from the new room's rate.
func (s *Service) ChangeRoom(ctx context.Context, bookingID, newRoomID int64, actorID int64) (*domain.Booking, error) {
	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.Status != domain.BookingCheckedIn {
		return nil, domain.ErrInvalidTransition
	}
	if booking.RoomID == nil {
		return nil, ErrRoomNotAssigned
	}
	oldRoomID := *booking.RoomID
	if oldRoomID == newRoomID {
		return booking, nil
	}

	unlock := s.locks.lockPair(oldRoomID, newRoomID)
	defer unlock()

	var newRoom *domain.Room
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		bookings := repository.NewBookingRepository(tx)
		rooms := repository.NewRoomRepository(tx)

		newRoom, err = rooms.GetByID(ctx, newRoomID)
		if err != nil {
			return err
		}
		if newRoom.Status != domain.RoomAvailable {
			return domain.ErrRoomUnavailable
		}
		active, err := bookings.CountActiveForRoom(ctx, newRoomID)
		if err != nil {
			return err
		}
		if active > 0 {
			return domain.ErrRoomUnavailable
		}

		base := stayPrice(newRoom.PricePerNight, booking)
		if err := bookings.ReassignRoom(ctx, bookingID, newRoomID, base); err != nil {
			return err
		}
		if err := rooms.UpdateStatusGuarded(ctx, oldRoomID, domain.RoomOccupied, domain.RoomDirty); err != nil {
			return err
		}
		return rooms.UpdateStatusGuarded(ctx, newRoomID, domain.RoomAvailable, domain.RoomOccupied)
	})
	if err != nil {
		return nil, err
	}

	oldNumber := ""
	if booking.Room != nil {
		oldNumber = booking.Room.RoomNumber
	}
	if s.tasks != nil {
		if err := s.tasks.CreateCleaningTask(ctx, oldRoomID, domain.PriorityHigh,
			fmt.Sprintf("Turn over room %s after room move", oldNumber)); err != nil {
			s.afterDeskOp(ctx, "TASK_FAILED",
				fmt.Sprintf("Could not queue cleaning for room %s: %v", oldNumber, err), actorID)
		}
	}

	s.afterDeskOp(ctx, "ROOM_MOVED",
		fmt.Sprintf("Booking #%d moved from room %s to room %s", bookingID, oldNumber, newRoom.RoomNumber), actorID)
	s.publishRoom(oldRoomID, oldNumber, domain.RoomDirty)
	s.publishRoom(newRoomID, newRoom.RoomNumber, domain.RoomOccupied)

	return s.bookings.GetByID(ctx, bookingID)
}

func (s *Service) afterDeskOp(ctx context.Context, action, details string, actorID int64) {
	if s.activity != nil {
		s.activity.Record(ctx, action, details, actorID)
	}
}

func (s *Service) publishRoom(roomID int64, roomNumber string, status domain.RoomStatus) {
	if s.board != nil {
		s.board.PublishRoomStatus(roomID, roomNumber, status)
	}
}

func (s *Service) publishBooking(bookingID int64, status domain.BookingStatus) {
	if s.board != nil {
		s.board.PublishBookingStatus(bookingID, status)
	}
}

func nowUTC() time.Time { return time.Now().UTC() }

func stayPrice(perNight decimal.Decimal, b *domain.Booking) decimal.Decimal {
	return perNight.Mul(decimal.NewFromInt(int64(b.Nights()))).Round(2)
}
