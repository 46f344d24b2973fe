package ports

import (
	"context"

	"ordering/internal/core/domain/model/payment"

	"github.com/shopspring/decimal"
)

// PaymentProvider is one external payment gateway.
type PaymentProvider interface {
	Name() string

	CreatePayment(ctx context.Context, req payment.Request) (payment.Session, error)

	// VerifyCallback reports whether cb really originates from the provider.
	// A transport failure while verifying is returned as an error.
	VerifyCallback(ctx context.Context, cb payment.Callback) (bool, error)

	CancelPayment(ctx context.Context, transactionID string, amount decimal.Decimal) (payment.Refund, error)
}

// PaymentProviders is the closed set of providers configured at startup.
type PaymentProviders interface {
	// Provider returns errs.ObjectNotFoundError for a provider that is not configured.
	Provider(name string) (PaymentProvider, error)
	Names() []string
}
