package frontdesk

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"

	"atithi/internal/domain"
	"atithi/internal/modules/folio"
	"atithi/internal/modules/housekeeping"
	"atithi/internal/repository"
)

type fixture struct {
	db    *gorm.DB
	desk  *Service
	folio *folio.Service
	tasks *repository.HousekeepingRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db, err := gorm.Open(gormsqlite.New(gormsqlite.Config{
		DriverName: "sqlite",
		DSN:        "file:frontdesk_test?mode=memory&cache=shared",
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	// sqlite allows one writer; a single connection keeps the
	// concurrent tests free of busy errors.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&domain.Guest{},
		&domain.Room{},
		&domain.Booking{},
		&domain.Charge{},
		&domain.Payment{},
		&domain.HousekeepingTask{},
	))
	t.Cleanup(func() {
		for _, table := range []string{"housekeeping_tasks", "booking_payments", "booking_charges", "bookings", "rooms", "guests"} {
			db.Exec("DELETE FROM " + table)
		}
	})

	taskRepo := repository.NewHousekeepingRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	folioSvc := folio.NewService(repository.NewFolioRepository(db), repository.NewBookingRepository(db), nil)
	housekeepingSvc := housekeeping.NewService(taskRepo, roomRepo, nil)

	return &fixture{
		db:    db,
		desk:  NewService(db, folioSvc, housekeepingSvc, nil, nil),
		folio: folioSvc,
		tasks: taskRepo,
	}
}

var fixtureSeq int

func (f *fixture) seedRoom(t *testing.T, price string, status domain.RoomStatus) *domain.Room {
	t.Helper()
	fixtureSeq++
	room := &domain.Room{
		RoomNumber:    fmt.Sprintf("%d", 100+fixtureSeq),
		RoomType:      "STANDARD",
		PricePerNight: mustDec(t, price),
		Status:        status,
	}
	require.NoError(t, f.db.Create(room).Error)
	return room
}

func (f *fixture) seedBooking(t *testing.T, roomID *int64, status domain.BookingStatus, base string) *domain.Booking {
	t.Helper()
	fixtureSeq++
	guest := &domain.Guest{
		FullName: "Meera Iyer",
		Email:    fmt.Sprintf("meera%d@example.com", fixtureSeq),
	}
	require.NoError(t, f.db.Create(guest).Error)

	booking := &domain.Booking{
		GuestID:       guest.ID,
		RoomID:        roomID,
		CheckInDate:   time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC),
		CheckOutDate:  time.Date(2024, 6, 12, 0, 0, 0, 0, time.UTC),
		Adults:        2,
		BaseAmount:    mustDec(t, base),
		Status:        status,
		PaymentStatus: domain.PaymentPending,
	}
	require.NoError(t, f.db.Create(booking).Error)
	return booking
}

func mustDec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func (f *fixture) roomStatus(t *testing.T, id int64) domain.RoomStatus {
	t.Helper()
	var room domain.Room
	require.NoError(t, f.db.First(&room, id).Error)
	return room.Status
}

func TestCheckInHappyPath(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	room := f.seedRoom(t, "1200", domain.RoomAvailable)
	booking := f.seedBooking(t, &room.ID, domain.BookingConfirmed, "2400")

	checked, err := f.desk.CheckIn(ctx, booking.ID, nil, 1)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingCheckedIn, checked.Status)
	assert.Equal(t, domain.RoomOccupied, f.roomStatus(t, room.ID))

	// Same call again is a no-op.
	again, err := f.desk.CheckIn(ctx, booking.ID, nil, 1)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingCheckedIn, again.Status)
}

func TestCheckInAssignsRoomAtDesk(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	room := f.seedRoom(t, "1500", domain.RoomAvailable)
	booking := f.seedBooking(t, nil, domain.BookingConfirmed, "0")

	// No room on the booking and none supplied.
	_, err := f.desk.CheckIn(ctx, booking.ID, nil, 1)
	assert.ErrorIs(t, err, ErrRoomNotAssigned)

	checked, err := f.desk.CheckIn(ctx, booking.ID, &room.ID, 1)
	require.NoError(t, err)
	require.NotNil(t, checked.RoomID)
	assert.Equal(t, room.ID, *checked.RoomID)
	assert.True(t, checked.BaseAmount.Equal(mustDec(t, "3000")), "two nights at 1500")
}

func TestCheckInRejectsHeldRoom(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	room := f.seedRoom(t, "1200", domain.RoomAvailable)
	first := f.seedBooking(t, &room.ID, domain.BookingConfirmed, "2400")
	second := f.seedBooking(t, &room.ID, domain.BookingConfirmed, "2400")

	_, err := f.desk.CheckIn(ctx, first.ID, nil, 1)
	require.NoError(t, err)

	_, err = f.desk.CheckIn(ctx, second.ID, nil, 1)
	assert.ErrorIs(t, err, domain.ErrRoomUnavailable)
}

func TestCheckInRejectsWrongStates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	room := f.seedRoom(t, "1200", domain.RoomMaintenance)
	booking := f.seedBooking(t, &room.ID, domain.BookingConfirmed, "2400")
	_, err := f.desk.CheckIn(ctx, booking.ID, nil, 1)
	assert.ErrorIs(t, err, domain.ErrRoomUnavailable)

	cancelled := f.seedBooking(t, &room.ID, domain.BookingCancelled, "2400")
	_, err = f.desk.CheckIn(ctx, cancelled.ID, nil, 1)
	assert.ErrorIs(t, err, ErrBookingNotConfirmed)
}

func TestConcurrentCheckInOnlyOneWins(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	room := f.seedRoom(t, "1200", domain.RoomAvailable)
	a := f.seedBooking(t, &room.ID, domain.BookingConfirmed, "2400")
	b := f.seedBooking(t, &room.ID, domain.BookingConfirmed, "2400")

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, id := range []int64{a.ID, b.ID} {
		wg.Add(1)
		go func(i int, id int64) {
			defer wg.Done()
			_, errs[i] = f.desk.CheckIn(ctx, id, nil, 1)
		}(i, id)
	}
	wg.Wait()

	var ok, unavailable int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case assert.ErrorIs(t, err, domain.ErrRoomUnavailable):
			unavailable++
		}
	}
	assert.Equal(t, 1, ok, "exactly one check-in succeeds")
	assert.Equal(t, 1, unavailable)
	assert.Equal(t, domain.RoomOccupied, f.roomStatus(t, room.ID))
}

// Walks the desk through a full stay: check in, post a charge, attempt
// checkout against an unpaid balance, settle, and check out cleanly.
func TestStayLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	room := f.seedRoom(t, "1200", domain.RoomAvailable)
	booking := f.seedBooking(t, &room.ID, domain.BookingConfirmed, "2400")

	_, err := f.desk.CheckIn(ctx, booking.ID, nil, 1)
	require.NoError(t, err)

	_, err = f.folio.AddCharge(ctx, booking.ID, "Room service", mustDec(t, "350"), 1)
	require.NoError(t, err)

	// Balance is 2750; checkout refuses without force.
	_, err = f.desk.CheckOut(ctx, booking.ID, false, 1)
	assert.ErrorIs(t, err, ErrConfirmationRequired)
	assert.Equal(t, domain.RoomOccupied, f.roomStatus(t, room.ID), "refused checkout must not mutate")

	_, err = f.folio.AddPayment(ctx, booking.ID, mustDec(t, "2750"), domain.MethodUPI, 1)
	require.NoError(t, err)

	result, err := f.desk.CheckOut(ctx, booking.ID, false, 1)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingCheckedOut, result.Booking.Status)
	assert.False(t, result.BalanceWarning)
	assert.True(t, result.Totals.Balance.IsZero())
	assert.NotNil(t, result.Booking.CheckedOutAt)
	assert.Equal(t, domain.RoomDirty, f.roomStatus(t, room.ID))

	// Checkout queues a high priority cleaning task.
	pending, err := f.tasks.ListPending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, room.ID, pending[0].RoomID)
	assert.Equal(t, domain.PriorityHigh, pending[0].Priority)

	// Repeating checkout returns the final bill without changes.
	again, err := f.desk.CheckOut(ctx, booking.ID, false, 1)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingCheckedOut, again.Booking.Status)
}

func TestForcedCheckoutFlagsBalance(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	room := f.seedRoom(t, "1000", domain.RoomAvailable)
	booking := f.seedBooking(t, &room.ID, domain.BookingConfirmed, "2000")

	_, err := f.desk.CheckIn(ctx, booking.ID, nil, 1)
	require.NoError(t, err)

	result, err := f.desk.CheckOut(ctx, booking.ID, true, 1)
	require.NoError(t, err)
	assert.True(t, result.BalanceWarning)
	assert.True(t, result.Totals.Balance.Equal(mustDec(t, "2000")))
	assert.Equal(t, domain.BookingCheckedOut, result.Booking.Status)
}

func TestCancel(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	room := f.seedRoom(t, "1000", domain.RoomAvailable)
	booking := f.seedBooking(t, &room.ID, domain.BookingConfirmed, "2000")

	cancelled, err := f.desk.Cancel(ctx, booking.ID, "guest called to cancel", 1)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingCancelled, cancelled.Status)
	assert.Equal(t, "guest called to cancel", cancelled.CancellationReason)
	assert.NotNil(t, cancelled.CancelledAt)
	assert.Equal(t, domain.RoomAvailable, f.roomStatus(t, room.ID), "room was never occupied")

	// Cancelling again is a no-op.
	again, err := f.desk.Cancel(ctx, booking.ID, "duplicate", 1)
	require.NoError(t, err)
	assert.Equal(t, "guest called to cancel", again.CancellationReason)

	// An in-house stay cannot be cancelled.
	occupied := f.seedRoom(t, "1000", domain.RoomAvailable)
	inHouse := f.seedBooking(t, &occupied.ID, domain.BookingConfirmed, "2000")
	_, err = f.desk.CheckIn(ctx, inHouse.ID, nil, 1)
	require.NoError(t, err)
	_, err = f.desk.Cancel(ctx, inHouse.ID, "too late", 1)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestChangeRoom(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	oldRoom := f.seedRoom(t, "1200", domain.RoomAvailable)
	newRoom := f.seedRoom(t, "1800", domain.RoomAvailable)
	booking := f.seedBooking(t, &oldRoom.ID, domain.BookingConfirmed, "2400")

	_, err := f.desk.CheckIn(ctx, booking.ID, nil, 1)
	require.NoError(t, err)

	moved, err := f.desk.ChangeRoom(ctx, booking.ID, newRoom.ID, 1)
	require.NoError(t, err)
	require.NotNil(t, moved.RoomID)
	assert.Equal(t, newRoom.ID, *moved.RoomID)
	assert.True(t, moved.BaseAmount.Equal(mustDec(t, "3600")), "repriced from new room rate")
	assert.Equal(t, domain.RoomDirty, f.roomStatus(t, oldRoom.ID))
	assert.Equal(t, domain.RoomOccupied, f.roomStatus(t, newRoom.ID))

	pending, err := f.tasks.ListPending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, oldRoom.ID, pending[0].RoomID)
}

func TestChangeRoomRejectsUnavailableTarget(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	oldRoom := f.seedRoom(t, "1200", domain.RoomAvailable)
	dirty := f.seedRoom(t, "1200", domain.RoomDirty)
	booking := f.seedBooking(t, &oldRoom.ID, domain.BookingConfirmed, "2400")

	_, err := f.desk.CheckIn(ctx, booking.ID, nil, 1)
	require.NoError(t, err)

	_, err = f.desk.ChangeRoom(ctx, booking.ID, dirty.ID, 1)
	assert.ErrorIs(t, err, domain.ErrRoomUnavailable)
	assert.Equal(t, domain.RoomOccupied, f.roomStatus(t, oldRoom.ID), "failed move leaves the stay untouched")

	// Moving a booking that is not in house is refused.
	confirmed := f.seedBooking(t, &oldRoom.ID, domain.BookingConfirmed, "2400")
	_, err = f.desk.ChangeRoom(ctx, confirmed.ID, dirty.ID, 1)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}
