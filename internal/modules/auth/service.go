package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"atithi/internal/domain"
)

type jwtService interface {
	GenerateToken(userID int64, role domain.Role) (string, error)
}

type Service struct {
	users    UserRepository
	jwt      jwtService
	activity Recorder
}

func NewService(users UserRepository, jwt jwtService, activity Recorder) *Service {
	return &Service{users: users, jwt: jwt, activity: activity}
}

func (s *Service) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, ErrUserDisabled
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwt.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, err
	}

	if s.activity != nil {
		s.activity.Record(ctx, "LOGIN", fmt.Sprintf("%s signed in", user.Email), user.ID)
	}
	return &LoginResponse{Token: token, User: user}, nil
}

// CreateStaff registers a staff account. Only the owner may do this;
// the handler enforces the role gate.
func (s *Service) CreateStaff(ctx context.Context, req CreateStaffRequest, actorID int64) (*domain.User, error) {
	if !validRole(req.Role) {
		return nil, ErrUnknownRole
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		Name:         req.Name,
		Role:         req.Role,
		IsActive:     true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	if s.activity != nil {
		s.activity.Record(ctx, "STAFF_CREATED",
			fmt.Sprintf("Staff account %s created with role %s", user.Email, user.Role), actorID)
	}
	return user, nil
}

func (s *Service) Me(ctx context.Context, userID int64) (*domain.User, error) {
	return s.users.GetByID(ctx, userID)
}

func validRole(r domain.Role) bool {
	switch r {
	case domain.RoleOwner, domain.RoleManager, domain.RoleReceptionist,
		domain.RoleHousekeeping, domain.RoleAccountant:
		return true
	}
	return false
}
