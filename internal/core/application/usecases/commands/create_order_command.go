package commands

import (
	"errors"
	"fmt"

	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/services"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand places a new order for one restaurant. Line prices and option
// modifiers are what the client claims; the handler re-derives them.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand("r1", []services.RequestedItem{{
//	    MenuItemID: "burger",
//	    Quantity:   2,
//	    Price:      decimal.NewFromInt(24000),
//	}}, nil)
type CreateOrderCommand struct {
	restaurantID string
	items        []services.RequestedItem
	customer     *order.CustomerInfo

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates the request shape: restaurant and at least one item
// are required, each item names a menu item and orders between 1 and 99 of it.
func NewCreateOrderCommand(
	restaurantID string,
	items []services.RequestedItem,
	customer *order.CustomerInfo,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		customer: customer,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setRestaurantID(restaurantID),
		cmd.setItems(items),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) RestaurantID() string {
	return c.restaurantID
}

func (c CreateOrderCommand) Items() []services.RequestedItem {
	return c.items
}

func (c CreateOrderCommand) Customer() *order.CustomerInfo {
	return c.customer
}

func (c *CreateOrderCommand) setRestaurantID(restaurantID string) error {
	if restaurantID == "" {
		return errs.NewValueIsRequiredError("restaurantId")
	}
	c.restaurantID = restaurantID
	return nil
}

func (c *CreateOrderCommand) setItems(items []services.RequestedItem) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	for i, it := range items {
		if it.MenuItemID == "" {
			return errs.NewValueIsRequiredError(fmt.Sprintf("items[%d].menuItemId", i))
		}
		if it.Quantity < order.MinQuantity || it.Quantity > order.MaxQuantity {
			return errs.NewValueIsOutOfRangeError(fmt.Sprintf("items[%d].quantity", i),
				it.Quantity, order.MinQuantity, order.MaxQuantity)
		}
	}
	c.items = items
	return nil
}
