package commands

import (
	"errors"

	"ordering/internal/core/domain/model/payment"
	"ordering/internal/pkg/guard"
)

var ErrReconcilePaymentCommandIsNotConstructed = errors.New(
	"ReconcilePaymentCommand must be created via NewReconcilePaymentCommand constructor",
)

// ReconcilePaymentCommand applies a provider's payment webhook to its order.
type ReconcilePaymentCommand struct {
	callback payment.Callback
	guard    guard.ConstructorGuard
}

func NewReconcilePaymentCommand(callback payment.Callback) (ReconcilePaymentCommand, error) {
	if err := callback.Validate(); err != nil {
		return ReconcilePaymentCommand{}, err
	}
	return ReconcilePaymentCommand{callback: callback, guard: guard.NewConstructorGuard()}, nil
}

func (c ReconcilePaymentCommand) Validate() error {
	return c.guard.Validate(ErrReconcilePaymentCommandIsNotConstructed)
}

func (c ReconcilePaymentCommand) Callback() payment.Callback {
	return c.callback
}
