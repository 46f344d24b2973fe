package commands

import (
	"errors"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/guard"
)

var ErrCancelOrderCommandIsNotConstructed = errors.New(
	"CancelOrderCommand must be created via NewCancelOrderCommand constructor",
)

// CancelOrderCommand is a customer's request to cancel an order.
type CancelOrderCommand struct {
	ref   orderRef
	guard guard.ConstructorGuard
}

func NewCancelOrderCommand(orderID kernel.UUID, restaurantID string) (CancelOrderCommand, error) {
	ref, err := newOrderRef(orderID, restaurantID)
	if err != nil {
		return CancelOrderCommand{}, err
	}
	return CancelOrderCommand{ref: ref, guard: guard.NewConstructorGuard()}, nil
}

func (c CancelOrderCommand) Validate() error {
	return c.guard.Validate(ErrCancelOrderCommandIsNotConstructed)
}

func (c CancelOrderCommand) OrderID() kernel.UUID {
	return c.ref.orderID
}

func (c CancelOrderCommand) RestaurantID() string {
	return c.ref.restaurantID
}
