package menu

import (
	"errors"
	"fmt"

	"ordering/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// OptionType is the presentation hint of an option group.
type OptionType string

const (
	OptionTypeSize   OptionType = "size"
	OptionTypeAddon  OptionType = "addon"
	OptionTypeChoice OptionType = "choice"
)

// Choice is one selectable value of an option, e.g. "Large" with +2000.
type Choice struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	PriceModifier decimal.Decimal `json:"priceModifier"`
}

// Option groups the choices a customer picks from for an item.
type Option struct {
	ID       string     `json:"id"`
	Name     string     `json:"name"`
	Type     OptionType `json:"type"`
	Required bool       `json:"required"`
	Choices  []Choice   `json:"choices"`
}

// Item is a sellable menu entry.
type Item struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"imageUrl,omitempty"`
	Options     []Option        `json:"options"`
	Available   bool            `json:"available"`
}

func (i Item) FindOption(id string) (Option, bool) {
	for _, o := range i.Options {
		if o.ID == id {
			return o, true
		}
	}
	return Option{}, false
}

func (o Option) FindChoice(id string) (Choice, bool) {
	for _, c := range o.Choices {
		if c.ID == id {
			return c, true
		}
	}
	return Choice{}, false
}

// Validate enforces the publishing rules for a single item.
func (i Item) Validate() error {
	var problems []error
	if i.ID == "" {
		problems = append(problems, errs.NewValueIsRequiredError("item id"))
	}
	if i.Name == "" {
		problems = append(problems, errs.NewValueIsRequiredError("item name"))
	}
	if i.Price.IsNegative() {
		problems = append(problems, errs.NewValueIsOutOfRangeError("item price", i.Price, 0, "unbounded"))
	}
	for _, o := range i.Options {
		if o.ID == "" || o.Name == "" {
			problems = append(problems, errs.NewValueIsInvalidErrorWithCause("option",
				fmt.Errorf("option of item %q needs an id and a name", i.ID)))
		}
		if len(o.Choices) == 0 {
			problems = append(problems, errs.NewValueIsInvalidErrorWithCause("option",
				fmt.Errorf("option %q of item %q has no choices", o.ID, i.ID)))
		}
		for _, c := range o.Choices {
			if c.ID == "" {
				problems = append(problems, errs.NewValueIsRequiredError("choice id"))
			}
		}
	}
	return errors.Join(problems...)
}

func cloneItems(items []Item) []Item {
	out := make([]Item, len(items))
	for i, it := range items {
		out[i] = it
		out[i].Options = make([]Option, len(it.Options))
		for j, o := range it.Options {
			out[i].Options[j] = o
			out[i].Options[j].Choices = append([]Choice(nil), o.Choices...)
		}
	}
	return out
}
