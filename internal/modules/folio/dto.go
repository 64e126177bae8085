package folio

import (
	"github.com/shopspring/decimal"

	"atithi/internal/domain"
)

type AddChargeRequest struct {
	Description string          `json:"description" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
}

type AddPaymentRequest struct {
	Amount decimal.Decimal      `json:"amount" binding:"required"`
	Method domain.PaymentMethod `json:"method" binding:"required"`
}

type VoidPaymentRequest struct {
	Reason string `json:"reason" binding:"required"`
}
