package guest

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"atithi/internal/domain"
)

type MockGuestRepository struct {
	mock.Mock
}

func (m *MockGuestRepository) Create(ctx context.Context, g *domain.Guest) error {
	args := m.Called(ctx, g)
	if g != nil {
		g.ID = 11
	}
	return args.Error(0)
}

func (m *MockGuestRepository) GetByID(ctx context.Context, id int64) (*domain.Guest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Guest), args.Error(1)
}

func (m *MockGuestRepository) Update(ctx context.Context, g *domain.Guest) error {
	args := m.Called(ctx, g)
	return args.Error(0)
}

func (m *MockGuestRepository) Search(ctx context.Context, query string) ([]domain.Guest, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Guest), args.Error(1)
}

func (m *MockGuestRepository) SetBlacklisted(ctx context.Context, id int64, blacklisted bool) error {
	args := m.Called(ctx, id, blacklisted)
	return args.Error(0)
}

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) ListByGuest(ctx context.Context, guestID int64) ([]domain.Booking, error) {
	args := m.Called(ctx, guestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

type MockSpendReader struct {
	mock.Mock
}

func (m *MockSpendReader) SumPaymentsForGuest(ctx context.Context, guestID int64) (decimal.Decimal, error) {
	args := m.Called(ctx, guestID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func newMockedService() (*Service, *MockGuestRepository, *MockBookingRepository, *MockSpendReader) {
	guests := new(MockGuestRepository)
	bookings := new(MockBookingRepository)
	spend := new(MockSpendReader)
	return NewService(guests, bookings, spend, nil), guests, bookings, spend
}

func TestCreateTrimsAndValidates(t *testing.T) {
	svc, guests, _, _ := newMockedService()
	ctx := context.Background()

	guests.On("Create", ctx, mock.AnythingOfType("*domain.Guest")).Return(nil)

	guest, err := svc.Create(ctx, CreateGuestRequest{FullName: "  Asha Verma  ", Phone: "98765"}, 1)
	require.NoError(t, err)
	assert.Equal(t, "Asha Verma", guest.FullName)

	_, err = svc.Create(ctx, CreateGuestRequest{FullName: "   "}, 1)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestSearchRejectsEmptyQuery(t *testing.T) {
	svc, guests, _, _ := newMockedService()
	ctx := context.Background()

	_, err := svc.Search(ctx, "   ")
	assert.ErrorIs(t, err, domain.ErrValidation)

	guests.On("Search", ctx, "asha").Return([]domain.Guest{{ID: 1}}, nil)
	found, err := svc.Search(ctx, " asha ")
	require.NoError(t, err)
	assert.Len(t, found, 1)
}

func TestHistoryAggregatesStaysAndSpend(t *testing.T) {
	svc, guests, bookings, spend := newMockedService()
	ctx := context.Background()

	checkedOut := time.Now()
	guests.On("GetByID", ctx, int64(5)).Return(&domain.Guest{ID: 5, FullName: "Ravi Menon"}, nil)
	bookings.On("ListByGuest", ctx, int64(5)).Return([]domain.Booking{
		{ID: 1, Status: domain.BookingCheckedOut, CheckedOutAt: &checkedOut},
		{ID: 2, Status: domain.BookingCheckedOut, CheckedOutAt: &checkedOut},
		{ID: 3, Status: domain.BookingCancelled},
		{ID: 4, Status: domain.BookingConfirmed},
	}, nil)
	spend.On("SumPaymentsForGuest", ctx, int64(5)).Return(decimal.RequireFromString("5400.50"), nil)

	history, err := svc.History(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, 2, history.TotalStays, "only completed stays count")
	assert.Len(t, history.Bookings, 4)
	assert.True(t, history.LifetimeSpend.Equal(decimal.RequireFromString("5400.50")))
}

func TestSetBlacklisted(t *testing.T) {
	svc, guests, _, _ := newMockedService()
	ctx := context.Background()

	guests.On("GetByID", ctx, int64(9)).Return(&domain.Guest{ID: 9}, nil)
	guests.On("SetBlacklisted", ctx, int64(9), true).Return(nil)

	_, err := svc.SetBlacklisted(ctx, 9, true, 1)
	require.NoError(t, err)
	guests.AssertExpectations(t)

	guests.On("GetByID", ctx, int64(404)).Return(nil, domain.ErrNotFound)
	_, err = svc.SetBlacklisted(ctx, 404, true, 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
