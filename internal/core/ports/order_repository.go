// Package ports defines the contracts between the application core and its adapters:
// repositories for orders, menus and print jobs, and the outbound payment, printer
// and notification gateways.
package ports

import (
	"context"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
)

// OrderRepository persists order aggregates. Every write that changes the status is
// conditional on the status the caller observed; there is no other locking.
type OrderRepository interface {
	// Add inserts a new order unconditionally. Order ids are server-generated UUIDs.
	Add(ctx context.Context, aggregate *order.Order) error

	// Get loads an order of one restaurant. Returns errs.ObjectNotFoundError if absent.
	Get(ctx context.Context, restaurantID string, id kernel.UUID) (*order.Order, error)

	// FindByID loads an order by id alone, for callers that do not know the
	// restaurant (payment webhooks). It is an index lookup, never a scan.
	FindByID(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// UpdateIfStatus writes the aggregate's mutable fields only if the stored status
	// still equals expected. Returns errs.ConflictError when the guard fails.
	UpdateIfStatus(ctx context.Context, aggregate *order.Order, expected order.Status) error

	// SavePaymentFailure writes paymentFailureInfo and updatedAt unconditionally.
	SavePaymentFailure(ctx context.Context, aggregate *order.Order) error

	// FindStaleReady returns up to limit READY orders last updated before cutoff.
	FindStaleReady(ctx context.Context, cutoff time.Time, limit int) ([]*order.Order, error)
}
