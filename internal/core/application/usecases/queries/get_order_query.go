// Package queries contains read operations. Each query is a validated value paired
// with a handler that returns a read model shaped for the HTTP layer.
package queries

import (
	"errors"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery reads one order of one restaurant.
//
// Example:
//
//	query, err := NewGetOrderQuery(orderID, "r1")
//	if err != nil {
//	    return err
//	}
//	resp, err := handler.Handle(ctx, query)
type GetOrderQuery struct {
	orderID      kernel.UUID
	restaurantID string
	guard        guard.ConstructorGuard
}

func NewGetOrderQuery(orderID kernel.UUID, restaurantID string) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}
	if restaurantID == "" {
		return GetOrderQuery{}, errs.NewValueIsRequiredError("restaurantId")
	}
	return GetOrderQuery{orderID: orderID, restaurantID: restaurantID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

func (q GetOrderQuery) RestaurantID() string {
	return q.restaurantID
}

// GetOrderQueryResponse is the customer-facing projection of an order. The embedded
// menu snapshot and internal bookkeeping (expiry, payment failures) are left out.
type GetOrderQueryResponse struct {
	OrderID      kernel.UUID
	RestaurantID string
	Status       order.Status
	Items        []order.LineItem
	TotalAmount  decimal.Decimal
	CreatedAt    time.Time
	UpdatedAt    time.Time
	PaymentInfo  *order.PaymentInfo
	RefundInfo   *order.RefundInfo
}
