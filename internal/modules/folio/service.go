package folio

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"atithi/internal/domain"
)

type Service struct {
	folios   FolioRepository
	bookings BookingRepository
	activity Recorder
}

func NewService(folios FolioRepository, bookings BookingRepository, activity Recorder) *Service {
	return &Service{folios: folios, bookings: bookings, activity: activity}
}

// AddCharge posts an extra (laundry, room service) to the booking's
// folio. The folio is closed once the booking reaches a terminal state.
func (s *Service) AddCharge(ctx context.Context, bookingID int64, description string, amount decimal.Decimal, actorID int64) (*domain.Charge, error) {
	if description == "" {
		return nil, domain.ErrValidation
	}
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.Status.Terminal() {
		return nil, ErrFolioClosed
	}

	charge := &domain.Charge{
		BookingID:   bookingID,
		Description: description,
		Amount:      amount.Round(2),
	}
	if err := s.folios.AddCharge(ctx, charge); err != nil {
		return nil, err
	}

	if err := s.refreshPaymentStatus(ctx, booking); err != nil {
		return nil, err
	}

	if s.activity != nil {
		s.activity.Record(ctx, "CHARGE",
			fmt.Sprintf("Added charge %q of %s to booking #%d", description, charge.Amount, bookingID), actorID)
	}
	return charge, nil
}

// AddPayment records a payment against the folio and re-derives the
// booking's payment status.
func (s *Service) AddPayment(ctx context.Context, bookingID int64, amount decimal.Decimal, method domain.PaymentMethod, actorID int64) (*domain.Payment, error) {
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	if !method.Valid() {
		return nil, ErrInvalidMethod
	}

	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.Status.Terminal() {
		return nil, ErrFolioClosed
	}

	payment := &domain.Payment{
		BookingID: bookingID,
		Amount:    amount.Round(2),
		Method:    method,
	}
	if err := s.folios.AddPayment(ctx, payment); err != nil {
		return nil, err
	}

	if err := s.refreshPaymentStatus(ctx, booking); err != nil {
		return nil, err
	}

	if s.activity != nil {
		s.activity.Record(ctx, "PAYMENT",
			fmt.Sprintf("Received %s via %s for booking #%d", payment.Amount, method, bookingID), actorID)
	}
	return payment, nil
}

// VoidPayment reverses a payment administratively. The entry is marked
// void and kept for audit; voiding an already-void payment is a no-op.
// Only the owner and managers may void.
func (s *Service) VoidPayment(ctx context.Context, bookingID int64, paymentID uuid.UUID, actorID int64, actorRole domain.Role, reason string) (*domain.Payment, error) {
	if !actorRole.CanVoidPayments() {
		return nil, domain.ErrPermissionDenied
	}
	if reason == "" {
		return nil, ErrReasonMissing
	}

	payment, err := s.folios.GetPayment(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if payment.BookingID != bookingID {
		return nil, domain.ErrNotFound
	}
	if payment.Void {
		return payment, nil
	}

	if err := s.folios.MarkPaymentVoid(ctx, paymentID, actorID, reason); err != nil {
		return nil, err
	}

	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if err := s.refreshPaymentStatus(ctx, booking); err != nil {
		return nil, err
	}

	if s.activity != nil {
		s.activity.Record(ctx, "PAYMENT_VOID",
			fmt.Sprintf("Voided payment %s on booking #%d: %s", paymentID, bookingID, reason), actorID)
	}
	return s.folios.GetPayment(ctx, paymentID)
}

// View is the folio as presented to the desk: the ledger entries plus
// totals recomputed on every read.
type View struct {
	BookingID     int64                `json:"booking_id"`
	GuestName     string               `json:"guest_name"`
	RoomNumber    string               `json:"room_number"`
	BaseAmount    decimal.Decimal      `json:"base_amount"`
	Charges       []domain.Charge      `json:"charges"`
	Payments      []domain.Payment     `json:"payments"`
	Totals        domain.FolioTotals   `json:"totals"`
	PaymentStatus domain.PaymentStatus `json:"payment_status"`
	Closed        bool                 `json:"closed"`
}

// Folio assembles the full bill for a booking. Totals are always
// derived from the ledger, never cached.
func (s *Service) Folio(ctx context.Context, bookingID int64) (*View, error) {
	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	charges, err := s.folios.ListCharges(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	payments, err := s.folios.ListPayments(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	totals := domain.ComputeTotals(booking.BaseAmount, charges, payments)

	view := &View{
		BookingID:     booking.ID,
		BaseAmount:    booking.BaseAmount,
		Charges:       charges,
		Payments:      payments,
		Totals:        totals,
		PaymentStatus: domain.DerivePaymentStatus(totals),
		Closed:        booking.Status.Terminal(),
	}
	if booking.Guest != nil {
		view.GuestName = booking.Guest.FullName
	}
	if booking.Room != nil {
		view.RoomNumber = booking.Room.RoomNumber
	}
	return view, nil
}

// Totals recomputes the folio figures for a booking.
func (s *Service) Totals(ctx context.Context, booking *domain.Booking) (domain.FolioTotals, error) {
	charges, err := s.folios.ListCharges(ctx, booking.ID)
	if err != nil {
		return domain.FolioTotals{}, err
	}
	payments, err := s.folios.ListPayments(ctx, booking.ID)
	if err != nil {
		return domain.FolioTotals{}, err
	}
	return domain.ComputeTotals(booking.BaseAmount, charges, payments), nil
}

func (s *Service) refreshPaymentStatus(ctx context.Context, booking *domain.Booking) error {
	totals, err := s.Totals(ctx, booking)
	if err != nil {
		return err
	}
	return s.bookings.UpdatePaymentStatus(ctx, booking.ID, domain.DerivePaymentStatus(totals))
}
