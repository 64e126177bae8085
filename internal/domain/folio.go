package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PaymentMethod string

const (
	MethodCash     PaymentMethod = "CASH"
	MethodUPI      PaymentMethod = "UPI"
	MethodCard     PaymentMethod = "CARD"
	MethodTransfer PaymentMethod = "TRANSFER"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case MethodCash, MethodUPI, MethodCard, MethodTransfer:
		return true
	}
	return false
}

// Charge is an immutable extra posted to a booking's folio (laundry,
// room service and the like).
type Charge struct {
	ID          uuid.UUID       `json:"id" gorm:"type:uuid;primaryKey"`
	BookingID   int64           `json:"booking_id" gorm:"index;not null"`
	Description string          `json:"description" gorm:"size:255;not null"`
	Amount      decimal.Decimal `json:"amount" gorm:"type:decimal(10,2);not null"`
	CreatedAt   time.Time       `json:"created_at"`
}

func (Charge) TableName() string { return "booking_charges" }

func (c *Charge) BeforeCreate(_ *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// Payment is an immutable ledger entry. Voiding marks the row rather
// than deleting it, so the audit trail survives.
type Payment struct {
	ID         uuid.UUID       `json:"id" gorm:"type:uuid;primaryKey"`
	BookingID  int64           `json:"booking_id" gorm:"index;not null"`
	Amount     decimal.Decimal `json:"amount" gorm:"type:decimal(10,2);not null"`
	Method     PaymentMethod   `json:"method" gorm:"size:16;not null"`
	Void       bool            `json:"void" gorm:"not null;default:false"`
	VoidReason string          `json:"void_reason,omitempty" gorm:"type:text"`
	VoidedByID int64           `json:"voided_by_id,omitempty"`
	VoidedAt   *time.Time      `json:"voided_at,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}

func (Payment) TableName() string { return "booking_payments" }

func (p *Payment) BeforeCreate(_ *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

type FolioTotals struct {
	Total   decimal.Decimal `json:"total_amount"`
	Paid    decimal.Decimal `json:"paid_amount"`
	Balance decimal.Decimal `json:"balance"`
}

// ComputeTotals derives the folio figures from the base room charge and
// the ledger entries. Void payments do not count toward paid. Each
// derived figure is rounded to two decimal places; the inputs are summed
// exactly, so the result does not depend on entry order.
func ComputeTotals(base decimal.Decimal, charges []Charge, payments []Payment) FolioTotals {
	total := base
	for _, c := range charges {
		total = total.Add(c.Amount)
	}
	paid := decimal.Zero
	for _, p := range payments {
		if p.Void {
			continue
		}
		paid = paid.Add(p.Amount)
	}
	total = total.Round(2)
	paid = paid.Round(2)
	return FolioTotals{
		Total:   total,
		Paid:    paid,
		Balance: total.Sub(paid),
	}
}

// DerivePaymentStatus maps folio totals to the booking's payment status.
func DerivePaymentStatus(t FolioTotals) PaymentStatus {
	switch {
	case t.Paid.GreaterThanOrEqual(t.Total) && t.Total.IsPositive():
		return PaymentPaid
	case t.Paid.IsPositive():
		return PaymentPartial
	default:
		return PaymentPending
	}
}
