package commands

import (
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
)

// orderRef is the (restaurant, order) pair most order commands address.
type orderRef struct {
	orderID      kernel.UUID
	restaurantID string
}

func newOrderRef(orderID kernel.UUID, restaurantID string) (orderRef, error) {
	if err := orderID.Validate(); err != nil {
		return orderRef{}, err
	}
	if restaurantID == "" {
		return orderRef{}, errs.NewValueIsRequiredError("restaurantId")
	}
	return orderRef{orderID: orderID, restaurantID: restaurantID}, nil
}
