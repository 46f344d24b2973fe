package services

import (
	"fmt"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/menu"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// RequestedOption is an option choice as the client submitted it, including the
// modifier the client believes applies.
type RequestedOption struct {
	OptionID      string
	ChoiceID      string
	PriceModifier decimal.Decimal
}

// RequestedItem is an order line as the client submitted it. Price is the client's
// line total for the whole quantity.
type RequestedItem struct {
	MenuItemID      string
	Quantity        int
	Price           decimal.Decimal
	SelectedOptions []RequestedOption
}

// PriceValidator checks requested lines against a menu snapshot and produces the
// lines that get persisted.
//
// Rules, applied per item in request order, the first violation wins:
//   - the item must exist in the snapshot (422) and be available (410)
//   - every selected option and choice must exist (422)
//   - each client modifier must be within 0.01 of the snapshot modifier (422)
//   - every required option of the item must be selected (422)
//   - the client line total must be within 0.01 of round2((base + modifiers) * qty) (422)
//
// The persisted line always carries the server-computed price and snapshot names.
type PriceValidator struct{}

func NewPriceValidator() PriceValidator {
	return PriceValidator{}
}

func (PriceValidator) Validate(snapshot menu.Snapshot, requested []RequestedItem) ([]order.LineItem, error) {
	lines := make([]order.LineItem, 0, len(requested))
	for _, req := range requested {
		line, err := validateItem(snapshot, req)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, nil
}

func validateItem(snapshot menu.Snapshot, req RequestedItem) (order.LineItem, error) {
	item, ok := snapshot.FindItem(req.MenuItemID)
	if !ok {
		return order.LineItem{}, errs.NewUnprocessableError("menuItemId",
			fmt.Sprintf("menu item %s not found", req.MenuItemID))
	}
	if !item.Available {
		return order.LineItem{}, errs.NewObjectIsGoneError("menu item", item.Name)
	}

	unitPrice := item.Price
	selected := make([]order.SelectedOption, 0, len(req.SelectedOptions))
	chosen := make(map[string]struct{}, len(req.SelectedOptions))
	for _, ro := range req.SelectedOptions {
		opt, ok := item.FindOption(ro.OptionID)
		if !ok {
			return order.LineItem{}, errs.NewUnprocessableError("optionId",
				fmt.Sprintf("option %s not found for item %s", ro.OptionID, item.Name))
		}
		choice, ok := opt.FindChoice(ro.ChoiceID)
		if !ok {
			return order.LineItem{}, errs.NewUnprocessableError("choiceId",
				fmt.Sprintf("choice %s not found for option %s", ro.ChoiceID, opt.Name))
		}
		if !kernel.WithinTolerance(ro.PriceModifier, choice.PriceModifier) {
			return order.LineItem{}, errs.NewUnprocessableError("priceModifier", "price modifier mismatch")
		}

		unitPrice = unitPrice.Add(choice.PriceModifier)
		chosen[opt.ID] = struct{}{}
		selected = append(selected, order.SelectedOption{
			OptionID:      opt.ID,
			ChoiceID:      choice.ID,
			Name:          choice.Name,
			PriceModifier: choice.PriceModifier,
		})
	}

	for _, opt := range item.Options {
		if _, ok := chosen[opt.ID]; opt.Required && !ok {
			return order.LineItem{}, errs.NewUnprocessableError("selectedOptions",
				fmt.Sprintf("required option %s of item %s is not selected", opt.Name, item.Name))
		}
	}

	expected := kernel.RoundMoney(unitPrice.Mul(decimal.NewFromInt(int64(req.Quantity))))
	if !kernel.WithinTolerance(req.Price, expected) {
		return order.LineItem{}, errs.NewUnprocessableError("price",
			fmt.Sprintf("price mismatch for item %s", item.Name))
	}

	return order.LineItem{
		MenuItemID:      item.ID,
		Name:            item.Name,
		Price:           expected,
		Quantity:        req.Quantity,
		SelectedOptions: selected,
	}, nil
}
