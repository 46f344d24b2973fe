package queries

import (
	"errors"
	"time"

	"ordering/internal/core/domain/model/menu"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

var ErrGetMenuQueryIsNotConstructed = errors.New(
	"GetMenuQuery must be created via NewGetMenuQuery constructor",
)

// GetMenuQuery reads the menu customers currently order from.
type GetMenuQuery struct {
	restaurantID string
	guard        guard.ConstructorGuard
}

func NewGetMenuQuery(restaurantID string) (GetMenuQuery, error) {
	if restaurantID == "" {
		return GetMenuQuery{}, errs.NewValueIsRequiredError("restaurantId")
	}
	return GetMenuQuery{restaurantID: restaurantID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetMenuQuery) Validate() error {
	return q.guard.Validate(ErrGetMenuQueryIsNotConstructed)
}

func (q GetMenuQuery) RestaurantID() string {
	return q.restaurantID
}

type GetMenuQueryResponse struct {
	RestaurantID string
	Version      string
	Status       menu.Status
	Items        []menu.Item
	ConfirmedAt  *time.Time
}
