package commands

import (
	"context"
	"fmt"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/model/payment"
	"ordering/internal/core/ports"
	"ordering/internal/pkg/errs"
)

type StartPaymentResult struct {
	OrderID       kernel.UUID
	Provider      string
	PaymentURL    string
	TransactionID string
	ExpiresAt     time.Time
}

// StartPaymentCommandHandler asks the chosen provider for a payment session. The
// order is not modified: it becomes PAID only when the provider's webhook arrives.
type StartPaymentCommandHandler struct {
	orders         ports.OrderRepository
	providers      ports.PaymentProviders
	paymentBaseURL string
}

func NewStartPaymentCommandHandler(
	orders ports.OrderRepository,
	providers ports.PaymentProviders,
	paymentBaseURL string,
) StartPaymentCommandHandler {
	return StartPaymentCommandHandler{
		orders:         orders,
		providers:      providers,
		paymentBaseURL: paymentBaseURL,
	}
}

func (h *StartPaymentCommandHandler) Handle(ctx context.Context, cmd StartPaymentCommand) (StartPaymentResult, error) {
	if err := cmd.Validate(); err != nil {
		return StartPaymentResult{}, err
	}

	o, err := h.orders.Get(ctx, cmd.RestaurantID(), cmd.OrderID())
	if err != nil {
		return StartPaymentResult{}, err
	}
	if o.Status() != order.Created {
		return StartPaymentResult{}, errs.NewConflictErrorWithCause("order", o.ID(),
			fmt.Errorf("%s order cannot be paid", o.Status()))
	}

	provider, err := h.providers.Provider(cmd.Provider())
	if err != nil {
		return StartPaymentResult{}, err
	}

	req := payment.Request{
		OrderID:     o.ID().String(),
		ProductName: productName(o),
		Amount:      o.TotalAmount(),
		ReturnURL:   fmt.Sprintf("%s/payment/complete?orderId=%s", h.paymentBaseURL, o.ID()),
		CancelURL:   fmt.Sprintf("%s/payment/cancel?orderId=%s", h.paymentBaseURL, o.ID()),
	}
	if c := o.CustomerInfo(); c != nil {
		req.CustomerPhone = c.Phone
	}

	session, err := provider.CreatePayment(ctx, req)
	if err != nil {
		return StartPaymentResult{}, err
	}

	return StartPaymentResult{
		OrderID:       o.ID(),
		Provider:      provider.Name(),
		PaymentURL:    session.PaymentURL,
		TransactionID: session.TransactionID,
		ExpiresAt:     session.ExpiresAt,
	}, nil
}

// productName is the line shown on the provider's checkout page, e.g. "Burger and 2 more".
func productName(o *order.Order) string {
	items := o.Items()
	switch len(items) {
	case 0:
		return "Order #" + o.ID().ShortCode()
	case 1:
		return items[0].Name
	default:
		return fmt.Sprintf("%s and %d more", items[0].Name, len(items)-1)
	}
}
