package commands

import (
	"errors"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/guard"
)

var ErrPrintOrderCommandIsNotConstructed = errors.New(
	"PrintOrderCommand must be created via NewPrintOrderCommand or NewReprintOrderCommand constructor",
)

// PrintOrderCommand asks for an order to be printed on the restaurant's POS printer.
// A reprint behaves exactly like a print and always gets a fresh job.
type PrintOrderCommand struct {
	ref     orderRef
	reprint bool
	guard   guard.ConstructorGuard
}

func NewPrintOrderCommand(orderID kernel.UUID, restaurantID string) (PrintOrderCommand, error) {
	return newPrintOrderCommand(orderID, restaurantID, false)
}

func NewReprintOrderCommand(orderID kernel.UUID, restaurantID string) (PrintOrderCommand, error) {
	return newPrintOrderCommand(orderID, restaurantID, true)
}

func newPrintOrderCommand(orderID kernel.UUID, restaurantID string, reprint bool) (PrintOrderCommand, error) {
	ref, err := newOrderRef(orderID, restaurantID)
	if err != nil {
		return PrintOrderCommand{}, err
	}
	return PrintOrderCommand{ref: ref, reprint: reprint, guard: guard.NewConstructorGuard()}, nil
}

func (c PrintOrderCommand) Validate() error {
	return c.guard.Validate(ErrPrintOrderCommandIsNotConstructed)
}

func (c PrintOrderCommand) OrderID() kernel.UUID {
	return c.ref.orderID
}

func (c PrintOrderCommand) RestaurantID() string {
	return c.ref.restaurantID
}

func (c PrintOrderCommand) IsReprint() bool {
	return c.reprint
}
