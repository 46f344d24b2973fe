// Package payment holds the provider-neutral payment values exchanged with
// external payment providers.
package payment

import (
	"fmt"
	"time"

	"ordering/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

const (
	NaverPay = "naverpay"
	KakaoPay = "kakaopay"
)

type CallbackStatus string

const (
	CallbackSuccess CallbackStatus = "SUCCESS"
	CallbackFailed  CallbackStatus = "FAILED"
)

// Callback is a provider webhook normalized by the HTTP layer. RawData keeps the
// provider's original body, which some providers need for verification.
type Callback struct {
	OrderID       string
	TransactionID string
	Amount        decimal.Decimal
	Status        CallbackStatus
	Timestamp     time.Time
	Signature     string
	Provider      string
	RawData       map[string]any
}

func (c Callback) Validate() error {
	if c.OrderID == "" {
		return errs.NewValueIsRequiredError("orderId")
	}
	if c.Provider == "" {
		return errs.NewValueIsRequiredError("provider")
	}
	if c.Status != CallbackSuccess && c.Status != CallbackFailed {
		return errs.NewValueIsInvalidErrorWithCause("callback status", fmt.Errorf("%q is not SUCCESS or FAILED", c.Status))
	}
	return nil
}

// Raw returns a RawData field rendered as text, or "" if absent.
func (c Callback) Raw(key string) string {
	v, ok := c.RawData[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// Request asks a provider to open a payment session for an order.
type Request struct {
	OrderID       string
	ProductName   string
	Amount        decimal.Decimal
	ReturnURL     string
	CancelURL     string
	CustomerPhone string
}

// Session is what a provider returns for a new payment.
type Session struct {
	PaymentURL    string
	TransactionID string
	ExpiresAt     time.Time
}

// Refund is a provider's answer to a cancellation.
type Refund struct {
	RefundID    string
	Amount      decimal.Decimal
	Succeeded   bool
	ProcessedAt time.Time
}
