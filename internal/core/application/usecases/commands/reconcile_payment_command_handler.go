package commands

import (
	"context"
	"log/slog"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/model/payment"
	"ordering/internal/core/ports"
	"ordering/internal/pkg/errs"
)

type ReconcilePaymentResult struct {
	OrderID string
	Status  payment.CallbackStatus
}

// ReconcilePaymentCommandHandler verifies a webhook with its provider and then
// records the outcome on the order.
//
//   - unverifiable callbacks fail with errs.UnauthorizedError before any read or write
//   - SUCCESS moves CREATED -> PAID; a replayed or late SUCCESS fails with
//     errs.ConflictError and changes nothing
//   - FAILED records paymentFailureInfo and leaves the status alone
type ReconcilePaymentCommandHandler struct {
	orders    ports.OrderRepository
	providers ports.PaymentProviders
	clock     kernel.Clock
	logger    *slog.Logger
}

func NewReconcilePaymentCommandHandler(
	orders ports.OrderRepository,
	providers ports.PaymentProviders,
	clock kernel.Clock,
	logger *slog.Logger,
) ReconcilePaymentCommandHandler {
	return ReconcilePaymentCommandHandler{
		orders:    orders,
		providers: providers,
		clock:     clock,
		logger:    logger.With("component", "payment_reconciler"),
	}
}

func (h *ReconcilePaymentCommandHandler) Handle(
	ctx context.Context,
	cmd ReconcilePaymentCommand,
) (ReconcilePaymentResult, error) {
	if err := cmd.Validate(); err != nil {
		return ReconcilePaymentResult{}, err
	}
	cb := cmd.Callback()

	if err := h.verify(ctx, cb); err != nil {
		h.logger.WarnContext(ctx, "payment callback rejected",
			"order_id", cb.OrderID, "provider", cb.Provider, "error", err)
		return ReconcilePaymentResult{}, err
	}

	orderID, err := kernel.UUIDFromString(cb.OrderID)
	if err != nil {
		return ReconcilePaymentResult{}, errs.NewObjectNotFoundErrorWithCause("order", cb.OrderID, err)
	}

	o, err := h.orders.FindByID(ctx, orderID)
	if err != nil {
		return ReconcilePaymentResult{}, err
	}

	switch cb.Status {
	case payment.CallbackSuccess:
		err = h.markPaid(ctx, o, cb)
	case payment.CallbackFailed:
		o.RecordPaymentFailure(cb.Provider, cb.TransactionID, cb.Timestamp, h.clock.Now())
		err = h.orders.SavePaymentFailure(ctx, o)
	}
	if err != nil {
		return ReconcilePaymentResult{}, err
	}

	h.logger.InfoContext(ctx, "payment callback applied",
		"order_id", cb.OrderID, "provider", cb.Provider, "status", string(cb.Status))

	return ReconcilePaymentResult{OrderID: cb.OrderID, Status: cb.Status}, nil
}

func (h *ReconcilePaymentCommandHandler) verify(ctx context.Context, cb payment.Callback) error {
	provider, err := h.providers.Provider(cb.Provider)
	if err != nil {
		return err
	}

	ok, err := provider.VerifyCallback(ctx, cb)
	if err != nil {
		return errs.NewUnauthorizedErrorWithCause("payment callback could not be verified", err)
	}
	if !ok {
		return errs.NewUnauthorizedError("invalid payment callback signature")
	}
	return nil
}

func (h *ReconcilePaymentCommandHandler) markPaid(ctx context.Context, o *order.Order, cb payment.Callback) error {
	if o.Status() != order.Created {
		return errs.NewConflictErrorWithCause("order", o.ID(), errs.NewValueIsInvalidError("order status has already been updated"))
	}

	info := order.PaymentInfo{
		Method:        cb.Provider,
		TransactionID: cb.TransactionID,
		PaidAt:        cb.Timestamp,
		Amount:        cb.Amount,
	}
	if err := o.Pay(info, h.clock.Now()); err != nil {
		return err
	}

	return h.orders.UpdateIfStatus(ctx, o, order.Created)
}
