package ports

import (
	"context"

	"ordering/internal/core/domain/model/order"
)

// OrderNotifier tells the customer about order progress. Delivery is best effort.
type OrderNotifier interface {
	NotifyCompleted(ctx context.Context, o *order.Order) error
}
