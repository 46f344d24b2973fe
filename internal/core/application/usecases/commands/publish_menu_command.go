package commands

import (
	"errors"

	"ordering/internal/core/domain/model/menu"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

var ErrPublishMenuCommandIsNotConstructed = errors.New(
	"PublishMenuCommand must be created via NewPublishMenuCommand constructor",
)

// PublishMenuCommand stores a new menu version, optionally confirming it.
type PublishMenuCommand struct {
	restaurantID string
	items        []menu.Item
	confirm      bool
	guard        guard.ConstructorGuard
}

func NewPublishMenuCommand(restaurantID string, items []menu.Item, confirm bool) (PublishMenuCommand, error) {
	var problems []error
	if restaurantID == "" {
		problems = append(problems, errs.NewValueIsRequiredError("restaurantId"))
	}
	if len(items) == 0 {
		problems = append(problems, menu.ErrItemsAreRequired)
	}
	if err := errors.Join(problems...); err != nil {
		return PublishMenuCommand{}, err
	}

	return PublishMenuCommand{
		restaurantID: restaurantID,
		items:        items,
		confirm:      confirm,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (c PublishMenuCommand) Validate() error {
	return c.guard.Validate(ErrPublishMenuCommandIsNotConstructed)
}

func (c PublishMenuCommand) RestaurantID() string { return c.restaurantID }
func (c PublishMenuCommand) Items() []menu.Item   { return c.items }
func (c PublishMenuCommand) Confirm() bool        { return c.confirm }
