package commands

import (
	"context"
	"fmt"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/services"
	"ordering/internal/core/ports"

	"github.com/shopspring/decimal"
)

// CreateOrderResult is returned to the customer after a successful create.
type CreateOrderResult struct {
	OrderID     kernel.UUID
	Status      order.Status
	TotalAmount decimal.Decimal
	PaymentURL  string
	CreatedAt   time.Time
}

// CreateOrderCommandHandler prices the requested lines against the restaurant's
// confirmed menu snapshot and stores the new order. Nothing is written when any
// check fails.
type CreateOrderCommandHandler struct {
	orders         ports.OrderRepository
	menus          ports.MenuReader
	validator      services.PriceValidator
	clock          kernel.Clock
	cartTTL        time.Duration
	paymentBaseURL string
}

func NewCreateOrderCommandHandler(
	orders ports.OrderRepository,
	menus ports.MenuReader,
	clock kernel.Clock,
	cartTTL time.Duration,
	paymentBaseURL string,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		orders:         orders,
		menus:          menus,
		validator:      services.NewPriceValidator(),
		clock:          clock,
		cartTTL:        cartTTL,
		paymentBaseURL: paymentBaseURL,
	}
}

func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (CreateOrderResult, error) {
	if err := cmd.Validate(); err != nil {
		return CreateOrderResult{}, err
	}

	version, err := h.menus.GetConfirmed(ctx, cmd.RestaurantID())
	if err != nil {
		return CreateOrderResult{}, err
	}
	snapshot := version.Snapshot()

	lines, err := h.validator.Validate(snapshot, cmd.Items())
	if err != nil {
		return CreateOrderResult{}, err
	}

	now := h.clock.Now()
	o, err := order.NewOrder(kernel.NewUUID(), cmd.RestaurantID(), snapshot, lines, cmd.Customer(), now, h.cartTTL)
	if err != nil {
		return CreateOrderResult{}, err
	}

	if err = h.orders.Add(ctx, o); err != nil {
		return CreateOrderResult{}, err
	}

	return CreateOrderResult{
		OrderID:     o.ID(),
		Status:      o.Status(),
		TotalAmount: o.TotalAmount(),
		PaymentURL:  fmt.Sprintf("%s/payment?orderId=%s", h.paymentBaseURL, o.ID()),
		CreatedAt:   o.CreatedAt(),
	}, nil
}
