package commands

import (
	"errors"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/guard"
)

var ErrAdvanceOrderStatusCommandIsNotConstructed = errors.New(
	"AdvanceOrderStatusCommand must be created via NewAdvanceOrderStatusCommand constructor",
)

// AdvanceOrderStatusCommand moves an order one step through the kitchen workflow on
// the restaurant owner's behalf.
type AdvanceOrderStatusCommand struct {
	ref    orderRef
	target order.Status
	guard  guard.ConstructorGuard
}

func NewAdvanceOrderStatusCommand(orderID kernel.UUID, restaurantID string, target order.Status) (AdvanceOrderStatusCommand, error) {
	ref, err := newOrderRef(orderID, restaurantID)
	if err != nil {
		return AdvanceOrderStatusCommand{}, err
	}
	if err = target.Validate(); err != nil {
		return AdvanceOrderStatusCommand{}, err
	}
	return AdvanceOrderStatusCommand{ref: ref, target: target, guard: guard.NewConstructorGuard()}, nil
}

func (c AdvanceOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrAdvanceOrderStatusCommandIsNotConstructed)
}

func (c AdvanceOrderStatusCommand) OrderID() kernel.UUID {
	return c.ref.orderID
}

func (c AdvanceOrderStatusCommand) RestaurantID() string {
	return c.ref.restaurantID
}

func (c AdvanceOrderStatusCommand) Target() order.Status {
	return c.target
}
