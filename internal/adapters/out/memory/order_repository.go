package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/ports"
	"ordering/internal/pkg/errs"
)

var _ ports.OrderRepository = (*OrderRepository)(nil)

type OrderRepository struct {
	mu     sync.Mutex
	orders map[kernel.UUID]order.State
}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{orders: make(map[kernel.UUID]order.State)}
}

func (r *OrderRepository) Add(_ context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders[aggregate.ID()] = aggregate.State()
	return nil
}

func (r *OrderRepository) Get(_ context.Context, restaurantID string, id kernel.UUID) (*order.Order, error) {
	r.mu.Lock()
	state, ok := r.orders[id]
	r.mu.Unlock()
	if !ok || state.RestaurantID != restaurantID {
		return nil, errs.NewObjectNotFoundError("order", id)
	}
	return order.RestoreOrder(state)
}

func (r *OrderRepository) FindByID(_ context.Context, id kernel.UUID) (*order.Order, error) {
	r.mu.Lock()
	state, ok := r.orders[id]
	r.mu.Unlock()
	if !ok {
		return nil, errs.NewObjectNotFoundError("order", id)
	}
	return order.RestoreOrder(state)
}

func (r *OrderRepository) UpdateIfStatus(_ context.Context, aggregate *order.Order, expected order.Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.orders[aggregate.ID()]
	if !ok || stored.Status != expected {
		return errs.NewConflictError("order", aggregate.ID())
	}

	next := aggregate.State()
	next.MenuSnapshot = stored.MenuSnapshot
	next.CreatedAt = stored.CreatedAt
	r.orders[aggregate.ID()] = next
	return nil
}

func (r *OrderRepository) SavePaymentFailure(_ context.Context, aggregate *order.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.orders[aggregate.ID()]
	if !ok {
		return errs.NewObjectNotFoundError("order", aggregate.ID())
	}
	stored.PaymentFailureInfo = aggregate.PaymentFailureInfo()
	stored.UpdatedAt = aggregate.UpdatedAt()
	r.orders[aggregate.ID()] = stored
	return nil
}

func (r *OrderRepository) FindStaleReady(_ context.Context, cutoff time.Time, limit int) ([]*order.Order, error) {
	r.mu.Lock()
	states := make([]order.State, 0)
	for _, s := range r.orders {
		if s.Status == order.Ready && s.UpdatedAt.Before(cutoff) {
			states = append(states, s)
		}
	}
	r.mu.Unlock()

	sort.Slice(states, func(i, j int) bool { return states[i].UpdatedAt.Before(states[j].UpdatedAt) })
	if limit > 0 && len(states) > limit {
		states = states[:limit]
	}

	result := make([]*order.Order, 0, len(states))
	for _, s := range states {
		o, err := order.RestoreOrder(s)
		if err != nil {
			return nil, err
		}
		result = append(result, o)
	}
	return result, nil
}
