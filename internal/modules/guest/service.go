package guest

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"atithi/internal/domain"
)

type Service struct {
	guests   GuestRepository
	bookings BookingRepository
	spend    SpendReader
	activity Recorder
}

func NewService(guests GuestRepository, bookings BookingRepository, spend SpendReader, activity Recorder) *Service {
	return &Service{guests: guests, bookings: bookings, spend: spend, activity: activity}
}

func (s *Service) Create(ctx context.Context, req CreateGuestRequest, actorID int64) (*domain.Guest, error) {
	if strings.TrimSpace(req.FullName) == "" {
		return nil, domain.ErrValidation
	}
	guest := &domain.Guest{
		FullName:      strings.TrimSpace(req.FullName),
		Phone:         req.Phone,
		Email:         req.Email,
		IDProofNumber: req.IDProofNumber,
	}
	if err := s.guests.Create(ctx, guest); err != nil {
		return nil, err
	}
	if s.activity != nil {
		s.activity.Record(ctx, "GUEST_CREATED", fmt.Sprintf("Guest %s registered", guest.FullName), actorID)
	}
	return guest, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Guest, error) {
	return s.guests.GetByID(ctx, id)
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateGuestRequest) (*domain.Guest, error) {
	guest, err := s.guests.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.FullName != nil {
		if strings.TrimSpace(*req.FullName) == "" {
			return nil, domain.ErrValidation
		}
		guest.FullName = strings.TrimSpace(*req.FullName)
	}
	if req.Phone != nil {
		guest.Phone = *req.Phone
	}
	if req.Email != nil {
		guest.Email = *req.Email
	}
	if req.IDProofNumber != nil {
		guest.IDProofNumber = *req.IDProofNumber
	}
	if err := s.guests.Update(ctx, guest); err != nil {
		return nil, err
	}
	return guest, nil
}

// Search matches on name, phone, email or id proof.
func (s *Service) Search(ctx context.Context, query string) ([]domain.Guest, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, domain.ErrValidation
	}
	return s.guests.Search(ctx, query)
}

// History is the guest's profile with their stays and lifetime spend.
type History struct {
	Guest         *domain.Guest    `json:"guest"`
	Bookings      []domain.Booking `json:"bookings"`
	TotalStays    int              `json:"total_stays"`
	LifetimeSpend decimal.Decimal  `json:"lifetime_spend"`
}

func (s *Service) History(ctx context.Context, id int64) (*History, error) {
	guest, err := s.guests.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	bookings, err := s.bookings.ListByGuest(ctx, id)
	if err != nil {
		return nil, err
	}
	spend, err := s.spend.SumPaymentsForGuest(ctx, id)
	if err != nil {
		return nil, err
	}

	stays := 0
	for _, b := range bookings {
		if b.Status == domain.BookingCheckedOut {
			stays++
		}
	}
	return &History{
		Guest:         guest,
		Bookings:      bookings,
		TotalStays:    stays,
		LifetimeSpend: spend.Round(2),
	}, nil
}

// SetBlacklisted flips the blacklist flag. Blacklisted guests cannot
// get new bookings; existing stays are untouched.
func (s *Service) SetBlacklisted(ctx context.Context, id int64, blacklisted bool, actorID int64) (*domain.Guest, error) {
	if _, err := s.guests.GetByID(ctx, id); err != nil {
		return nil, err
	}
	if err := s.guests.SetBlacklisted(ctx, id, blacklisted); err != nil {
		return nil, err
	}
	if s.activity != nil {
		action := "GUEST_BLACKLISTED"
		if !blacklisted {
			action = "GUEST_UNBLACKLISTED"
		}
		s.activity.Record(ctx, action, fmt.Sprintf("Guest #%d blacklist set to %t", id, blacklisted), actorID)
	}
	return s.guests.GetByID(ctx, id)
}
