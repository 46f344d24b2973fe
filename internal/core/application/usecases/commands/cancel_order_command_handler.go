package commands

import (
	"context"
	"log/slog"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/ports"

	"github.com/shopspring/decimal"
)

type CancelOrderResult struct {
	OrderID      kernel.UUID
	Status       order.Status
	RefundAmount decimal.Decimal
	RefundMethod string
}

// CancelOrderCommandHandler cancels an order and records its refund.
//
// The write is guarded by the status read at the start of the call, so a concurrent
// transition (payment, kitchen progress, auto-completion) makes the cancel fail with
// errs.ConflictError instead of overwriting it. Once the cancellation is stored, a
// paid order's refund is requested from its payment provider on a best-effort basis.
type CancelOrderCommandHandler struct {
	orders           ports.OrderRepository
	providers        ports.PaymentProviders
	clock            kernel.Clock
	refundCapPercent int
	logger           *slog.Logger
}

func NewCancelOrderCommandHandler(
	orders ports.OrderRepository,
	providers ports.PaymentProviders,
	clock kernel.Clock,
	refundCapPercent int,
	logger *slog.Logger,
) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		orders:           orders,
		providers:        providers,
		clock:            clock,
		refundCapPercent: refundCapPercent,
		logger:           logger.With("component", "cancel_order"),
	}
}

func (h *CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) (CancelOrderResult, error) {
	if err := cmd.Validate(); err != nil {
		return CancelOrderResult{}, err
	}

	o, err := h.orders.Get(ctx, cmd.RestaurantID(), cmd.OrderID())
	if err != nil {
		return CancelOrderResult{}, err
	}

	observed := o.Status()
	refund, err := o.Cancel(h.refundCapPercent, h.clock.Now())
	if err != nil {
		return CancelOrderResult{}, err
	}

	if err = h.orders.UpdateIfStatus(ctx, o, observed); err != nil {
		return CancelOrderResult{}, err
	}

	h.refund(ctx, o, refund.Amount)

	return CancelOrderResult{
		OrderID:      o.ID(),
		Status:       o.Status(),
		RefundAmount: refund.Amount,
		RefundMethod: o.RefundMethod(),
	}, nil
}

func (h *CancelOrderCommandHandler) refund(ctx context.Context, o *order.Order, amount decimal.Decimal) {
	paid := o.PaymentInfo()
	if paid == nil || !amount.IsPositive() {
		return
	}

	provider, err := h.providers.Provider(paid.Method)
	if err != nil {
		h.logger.WarnContext(ctx, "refund skipped, provider unavailable",
			"order_id", o.ID().String(), "provider", paid.Method, "error", err)
		return
	}

	result, err := provider.CancelPayment(ctx, paid.TransactionID, amount)
	if err != nil {
		h.logger.ErrorContext(ctx, "provider refund failed",
			"order_id", o.ID().String(), "provider", paid.Method, "error", err)
		return
	}

	h.logger.InfoContext(ctx, "provider refund requested",
		"order_id", o.ID().String(), "refund_id", result.RefundID, "succeeded", result.Succeeded)
}
