package commands

import (
	"errors"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

var ErrStartPaymentCommandIsNotConstructed = errors.New(
	"StartPaymentCommand must be created via NewStartPaymentCommand constructor",
)

// StartPaymentCommand opens a payment session for a CREATED order with one provider.
type StartPaymentCommand struct {
	ref      orderRef
	provider string
	guard    guard.ConstructorGuard
}

func NewStartPaymentCommand(orderID kernel.UUID, restaurantID, provider string) (StartPaymentCommand, error) {
	ref, err := newOrderRef(orderID, restaurantID)
	if err != nil {
		return StartPaymentCommand{}, err
	}
	if provider == "" {
		return StartPaymentCommand{}, errs.NewValueIsRequiredError("provider")
	}
	return StartPaymentCommand{ref: ref, provider: provider, guard: guard.NewConstructorGuard()}, nil
}

func (c StartPaymentCommand) Validate() error {
	return c.guard.Validate(ErrStartPaymentCommandIsNotConstructed)
}

func (c StartPaymentCommand) OrderID() kernel.UUID {
	return c.ref.orderID
}

func (c StartPaymentCommand) RestaurantID() string {
	return c.ref.restaurantID
}

func (c StartPaymentCommand) Provider() string {
	return c.provider
}
