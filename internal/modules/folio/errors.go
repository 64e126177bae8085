package folio

import "errors"

var (
	ErrFolioClosed   = errors.New("folio is closed")
	ErrInvalidAmount = errors.New("amount must be positive")
	ErrInvalidMethod = errors.New("unknown payment method")
	ErrReasonMissing = errors.New("void reason is required")
)
