package commands

import (
	"errors"

	"ordering/internal/pkg/guard"
)

var ErrAutoCompleteOrdersCommandIsNotConstructed = errors.New(
	"AutoCompleteOrdersCommand must be created via NewAutoCompleteOrdersCommand constructor",
)

// AutoCompleteOrdersCommand runs one auto-completion sweep. It carries no parameters.
type AutoCompleteOrdersCommand struct {
	guard guard.ConstructorGuard
}

func NewAutoCompleteOrdersCommand() AutoCompleteOrdersCommand {
	return AutoCompleteOrdersCommand{guard: guard.NewConstructorGuard()}
}

func (c AutoCompleteOrdersCommand) Validate() error {
	return c.guard.Validate(ErrAutoCompleteOrdersCommandIsNotConstructed)
}
