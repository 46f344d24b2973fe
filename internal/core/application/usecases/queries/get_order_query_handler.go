package queries

import (
	"context"

	"ordering/internal/core/ports"
)

type GetOrderQueryHandler struct {
	orders ports.OrderRepository
}

func NewGetOrderQueryHandler(orders ports.OrderRepository) GetOrderQueryHandler {
	return GetOrderQueryHandler{orders: orders}
}

// Handle returns errs.ObjectNotFoundError when the order does not exist or belongs to
// another restaurant.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	o, err := h.orders.Get(ctx, query.RestaurantID(), query.OrderID())
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	return GetOrderQueryResponse{
		OrderID:      o.ID(),
		RestaurantID: o.RestaurantID(),
		Status:       o.Status(),
		Items:        o.Items(),
		TotalAmount:  o.TotalAmount(),
		CreatedAt:    o.CreatedAt(),
		UpdatedAt:    o.UpdatedAt(),
		PaymentInfo:  o.PaymentInfo(),
		RefundInfo:   o.RefundInfo(),
	}, nil
}
