package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"atithi/internal/domain"
	"atithi/internal/pkg/command"
)

const dateLayout = "2006-01-02"

type Service struct {
	bookings BookingRepository
	rooms    RoomRepository
	guests   GuestRepository
	activity Recorder
}

func NewService(bookings BookingRepository, rooms RoomRepository, guests GuestRepository, activity Recorder) *Service {
	return &Service{bookings: bookings, rooms: rooms, guests: guests, activity: activity}
}

// Create registers a reservation. The guest is either looked up by id
// or created inline from walk-in details. When a room is assigned up
// front the base amount is priced from it immediately.
func (s *Service) Create(ctx context.Context, req CreateBookingRequest, actorID int64) (*domain.Booking, error) {
	checkIn, checkOut, err := parseStayDates(req.CheckInDate, req.CheckOutDate)
	if err != nil {
		return nil, err
	}
	if req.Adults < 1 {
		req.Adults = 1
	}

	guest, err := s.resolveGuest(ctx, req)
	if err != nil {
		return nil, err
	}
	if guest.IsBlacklisted {
		return nil, ErrGuestBlacklist
	}

	booking := &domain.Booking{
		GuestID:       guest.ID,
		CheckInDate:   checkIn,
		CheckOutDate:  checkOut,
		Adults:        req.Adults,
		Children:      req.Children,
		BaseAmount:    decimal.Zero,
		Status:        domain.BookingConfirmed,
		PaymentStatus: domain.PaymentPending,
	}

	if req.RoomID != nil {
		room, err := s.rooms.GetByID(ctx, *req.RoomID)
		if err != nil {
			return nil, err
		}
		if room.Status == domain.RoomMaintenance {
			return nil, domain.ErrRoomUnavailable
		}
		booking.RoomID = &room.ID
		booking.BaseAmount = stayPrice(room.PricePerNight, checkIn, checkOut)
	}

	if err := s.bookings.Create(ctx, booking); err != nil {
		return nil, err
	}

	if s.activity != nil {
		s.activity.Record(ctx, "BOOKING_CREATED",
			fmt.Sprintf("Booking #%d for %s (%s to %s)", booking.ID, guest.FullName, req.CheckInDate, req.CheckOutDate), actorID)
	}
	return s.bookings.GetByID(ctx, booking.ID)
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Booking, error) {
	return s.bookings.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, status domain.BookingStatus) ([]domain.Booking, error) {
	return s.bookings.List(ctx, status)
}

func (s *Service) ListByGuest(ctx context.Context, guestID int64) ([]domain.Booking, error) {
	return s.bookings.ListByGuest(ctx, guestID)
}

// MoveDates changes the stay window of a live booking. The entity is
// updated optimistically and reverted in place if the persist fails, so
// callers never observe half-applied dates.
func (s *Service) MoveDates(ctx context.Context, bookingID int64, checkInDate, checkOutDate string, actorID int64) (*domain.Booking, error) {
	checkIn, checkOut, err := parseStayDates(checkInDate, checkOutDate)
	if err != nil {
		return nil, err
	}

	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.Status.Terminal() {
		return nil, ErrBookingFinished
	}

	base := booking.BaseAmount
	if booking.RoomID != nil {
		room, err := s.rooms.GetByID(ctx, *booking.RoomID)
		if err != nil {
			return nil, err
		}
		base = stayPrice(room.PricePerNight, checkIn, checkOut)
	}

	prevIn, prevOut, prevBase := booking.CheckInDate, booking.CheckOutDate, booking.BaseAmount
	booking.CheckInDate, booking.CheckOutDate, booking.BaseAmount = checkIn, checkOut, base

	move := command.New(
		func() error {
			return s.bookings.UpdateDates(ctx, bookingID, checkIn, checkOut, base)
		},
		func() {
			booking.CheckInDate, booking.CheckOutDate, booking.BaseAmount = prevIn, prevOut, prevBase
		},
	)
	if err := move.Run(); err != nil {
		return nil, err
	}

	if s.activity != nil {
		s.activity.Record(ctx, "BOOKING_MOVED",
			fmt.Sprintf("Booking #%d moved to %s - %s", bookingID, checkInDate, checkOutDate), actorID)
	}
	return booking, nil
}

// AssignRoom attaches a room to a confirmed booking and reprices the
// stay from that room's rate.
func (s *Service) AssignRoom(ctx context.Context, bookingID, roomID int64, actorID int64) (*domain.Booking, error) {
	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.Status != domain.BookingConfirmed {
		return nil, domain.ErrInvalidTransition
	}

	room, err := s.rooms.GetByID(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if room.Status == domain.RoomMaintenance {
		return nil, domain.ErrRoomUnavailable
	}

	base := stayPrice(room.PricePerNight, booking.CheckInDate, booking.CheckOutDate)
	if err := s.bookings.AssignRoom(ctx, bookingID, roomID, base); err != nil {
		return nil, err
	}

	if s.activity != nil {
		s.activity.Record(ctx, "ROOM_ASSIGNED",
			fmt.Sprintf("Room %s assigned to booking #%d", room.RoomNumber, bookingID), actorID)
	}
	return s.bookings.GetByID(ctx, bookingID)
}

func (s *Service) resolveGuest(ctx context.Context, req CreateBookingRequest) (*domain.Guest, error) {
	if req.GuestID != nil {
		return s.guests.GetByID(ctx, *req.GuestID)
	}
	if req.Guest == nil {
		return nil, ErrGuestRequired
	}
	guest := &domain.Guest{
		FullName:      req.Guest.FullName,
		Phone:         req.Guest.Phone,
		Email:         req.Guest.Email,
		IDProofNumber: req.Guest.IDProofNumber,
	}
	if err := s.guests.FindOrCreateByEmail(ctx, guest); err != nil {
		return nil, err
	}
	return guest, nil
}

func stayPrice(perNight decimal.Decimal, checkIn, checkOut time.Time) decimal.Decimal {
	nights := int(checkOut.Sub(checkIn).Hours() / 24)
	return perNight.Mul(decimal.NewFromInt(int64(nights))).Round(2)
}

func parseStayDates(in, out string) (time.Time, time.Time, error) {
	checkIn, err := time.ParseInLocation(dateLayout, in, time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, domain.ErrValidation
	}
	checkOut, err := time.ParseInLocation(dateLayout, out, time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, domain.ErrValidation
	}
	if err := domain.ValidateStayDates(checkIn, checkOut); err != nil {
		return time.Time{}, time.Time{}, err
	}
	return checkIn, checkOut, nil
}
