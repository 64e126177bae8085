package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"atithi/internal/domain"
	jwtsvc "atithi/internal/pkg/jwt"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	if u != nil {
		u.ID = 42
	}
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func hashOf(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func newMockedService() (*Service, *MockUserRepository) {
	users := new(MockUserRepository)
	return NewService(users, jwtsvc.New("test_secret_key_32_characters_min", time.Hour), nil), users
}

func TestLogin(t *testing.T) {
	svc, users := newMockedService()
	ctx := context.Background()

	users.On("GetByEmail", ctx, "desk@test.in").Return(&domain.User{
		ID:           1,
		Email:        "desk@test.in",
		PasswordHash: hashOf(t, "correct horse"),
		Role:         domain.RoleReceptionist,
		IsActive:     true,
	}, nil)

	result, err := svc.Login(ctx, "  Desk@Test.IN ", "correct horse")
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, "desk@test.in", result.User.Email)

	_, err = svc.Login(ctx, "desk@test.in", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUnknownUserAndDisabled(t *testing.T) {
	svc, users := newMockedService()
	ctx := context.Background()

	users.On("GetByEmail", ctx, "ghost@test.in").Return(nil, domain.ErrNotFound)
	_, err := svc.Login(ctx, "ghost@test.in", "whatever")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	users.On("GetByEmail", ctx, "gone@test.in").Return(&domain.User{
		Email:        "gone@test.in",
		PasswordHash: hashOf(t, "pw"),
		IsActive:     false,
	}, nil)
	_, err = svc.Login(ctx, "gone@test.in", "pw")
	assert.ErrorIs(t, err, ErrUserDisabled)
}

func TestCreateStaff(t *testing.T) {
	svc, users := newMockedService()
	ctx := context.Background()

	users.On("GetByEmail", ctx, "new@test.in").Return(nil, domain.ErrNotFound)
	users.On("Create", ctx, mock.AnythingOfType("*domain.User")).Return(nil)

	user, err := svc.CreateStaff(ctx, CreateStaffRequest{
		Email:    "New@Test.in",
		Password: "longenough",
		Name:     "New Staff",
		Role:     domain.RoleAccountant,
	}, 1)
	require.NoError(t, err)
	assert.Equal(t, "new@test.in", user.Email)
	assert.True(t, user.IsActive)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("longenough")))

	_, err = svc.CreateStaff(ctx, CreateStaffRequest{
		Email: "x@test.in", Password: "longenough", Name: "X", Role: domain.Role("JANITOR"),
	}, 1)
	assert.ErrorIs(t, err, ErrUnknownRole)
}

func TestCreateStaffRejectsTakenEmail(t *testing.T) {
	svc, users := newMockedService()
	ctx := context.Background()

	users.On("GetByEmail", ctx, "taken@test.in").Return(&domain.User{Email: "taken@test.in"}, nil)

	_, err := svc.CreateStaff(ctx, CreateStaffRequest{
		Email: "taken@test.in", Password: "longenough", Name: "Dup", Role: domain.RoleManager,
	}, 1)
	assert.ErrorIs(t, err, ErrEmailTaken)
}
