package services_test

import (
	"testing"

	"ordering/internal/core/domain/model/menu"
	"ordering/internal/core/domain/services"
	"ordering/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func snapshot() menu.Snapshot {
	return menu.NewSnapshot("v1", []menu.Item{
		{
			ID:        "burger",
			Name:      "Burger",
			Price:     decimal.NewFromInt(10000),
			Available: true,
			Options: []menu.Option{
				{
					ID:       "size",
					Name:     "Size",
					Type:     menu.OptionTypeSize,
					Required: true,
					Choices: []menu.Choice{
						{ID: "regular", Name: "Regular", PriceModifier: decimal.Zero},
						{ID: "large", Name: "Large", PriceModifier: decimal.NewFromInt(2000)},
					},
				},
				{
					ID:   "extra",
					Name: "Extra",
					Type: menu.OptionTypeAddon,
					Choices: []menu.Choice{
						{ID: "cheese", Name: "Cheese", PriceModifier: decimal.RequireFromString("500.50")},
					},
				},
			},
		},
		{ID: "soup", Name: "Soup", Price: decimal.NewFromInt(5000), Available: false},
	})
}

func large() services.RequestedOption {
	return services.RequestedOption{OptionID: "size", ChoiceID: "large", PriceModifier: decimal.NewFromInt(2000)}
}

func TestPriceValidator_Validate(t *testing.T) {
	v := services.NewPriceValidator()

	t.Run("should accept server-consistent price and use snapshot names", func(t *testing.T) {
		// Given: 10000 base + 2000 large, quantity 2
		req := []services.RequestedItem{{
			MenuItemID:      "burger",
			Quantity:        2,
			Price:           decimal.NewFromInt(24000),
			SelectedOptions: []services.RequestedOption{large()},
		}}

		// When
		lines, err := v.Validate(snapshot(), req)

		// Then
		require.NoError(t, err)
		require.Len(t, lines, 1)
		assert.True(t, lines[0].Price.Equal(decimal.NewFromInt(24000)))
		assert.Equal(t, "Burger", lines[0].Name)
		assert.Equal(t, "Large", lines[0].SelectedOptions[0].Name)
	})

	t.Run("should reject a tampered line total", func(t *testing.T) {
		req := []services.RequestedItem{{
			MenuItemID:      "burger",
			Quantity:        2,
			Price:           decimal.NewFromInt(20000),
			SelectedOptions: []services.RequestedOption{large()},
		}}

		_, err := v.Validate(snapshot(), req)

		require.ErrorIs(t, err, errs.ErrUnprocessable)
		assert.Contains(t, err.Error(), "price mismatch for item Burger")
	})

	t.Run("should tolerate one cent and store the server price", func(t *testing.T) {
		req := []services.RequestedItem{{
			MenuItemID: "burger",
			Quantity:   1,
			Price:      decimal.RequireFromString("10500.51"),
			SelectedOptions: []services.RequestedOption{
				{OptionID: "size", ChoiceID: "regular", PriceModifier: decimal.Zero},
				{OptionID: "extra", ChoiceID: "cheese", PriceModifier: decimal.RequireFromString("500.49")},
			},
		}}

		lines, err := v.Validate(snapshot(), req)

		require.NoError(t, err)
		assert.Equal(t, "10500.50", lines[0].Price.StringFixed(2))
		assert.Equal(t, "500.50", lines[0].SelectedOptions[1].PriceModifier.StringFixed(2))
	})

	t.Run("should reject a tampered modifier", func(t *testing.T) {
		opt := large()
		opt.PriceModifier = decimal.Zero
		req := []services.RequestedItem{{MenuItemID: "burger", Quantity: 1, Price: decimal.NewFromInt(10000), SelectedOptions: []services.RequestedOption{opt}}}

		_, err := v.Validate(snapshot(), req)

		require.ErrorIs(t, err, errs.ErrUnprocessable)
		assert.Contains(t, err.Error(), "price modifier mismatch")
	})

	t.Run("should report unknown references as unprocessable", func(t *testing.T) {
		cases := map[string]services.RequestedItem{
			"menu item pizza not found": {MenuItemID: "pizza", Quantity: 1},
			"option color not found": {MenuItemID: "burger", Quantity: 1, SelectedOptions: []services.RequestedOption{
				{OptionID: "color", ChoiceID: "red"},
			}},
			"choice huge not found": {MenuItemID: "burger", Quantity: 1, SelectedOptions: []services.RequestedOption{
				{OptionID: "size", ChoiceID: "huge"},
			}},
		}
		for want, item := range cases {
			_, err := v.Validate(snapshot(), []services.RequestedItem{item})
			require.ErrorIs(t, err, errs.ErrUnprocessable)
			assert.Contains(t, err.Error(), want)
		}
	})

	t.Run("should require required options", func(t *testing.T) {
		req := []services.RequestedItem{{MenuItemID: "burger", Quantity: 1, Price: decimal.NewFromInt(10000)}}

		_, err := v.Validate(snapshot(), req)

		require.ErrorIs(t, err, errs.ErrUnprocessable)
		assert.Contains(t, err.Error(), "required option Size")
	})

	t.Run("should report unavailable items as gone", func(t *testing.T) {
		req := []services.RequestedItem{{MenuItemID: "soup", Quantity: 1, Price: decimal.NewFromInt(5000)}}

		_, err := v.Validate(snapshot(), req)

		require.ErrorIs(t, err, errs.ErrObjectIsGone)
		assert.Contains(t, err.Error(), "Soup")
	})
}
