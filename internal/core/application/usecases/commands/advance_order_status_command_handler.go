package commands

import (
	"context"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/ports"
)

type AdvanceOrderStatusResult struct {
	OrderID   kernel.UUID
	Status    order.Status
	UpdatedAt time.Time
}

// AdvanceOrderStatusCommandHandler applies PAID->COOKING->READY->COMPLETED one step at
// a time. Entering READY restarts the auto-completion clock because it stamps updatedAt.
type AdvanceOrderStatusCommandHandler struct {
	orders ports.OrderRepository
	clock  kernel.Clock
}

func NewAdvanceOrderStatusCommandHandler(orders ports.OrderRepository, clock kernel.Clock) AdvanceOrderStatusCommandHandler {
	return AdvanceOrderStatusCommandHandler{orders: orders, clock: clock}
}

func (h *AdvanceOrderStatusCommandHandler) Handle(
	ctx context.Context,
	cmd AdvanceOrderStatusCommand,
) (AdvanceOrderStatusResult, error) {
	if err := cmd.Validate(); err != nil {
		return AdvanceOrderStatusResult{}, err
	}

	o, err := h.orders.Get(ctx, cmd.RestaurantID(), cmd.OrderID())
	if err != nil {
		return AdvanceOrderStatusResult{}, err
	}

	observed := o.Status()
	if err = o.Advance(cmd.Target(), h.clock.Now()); err != nil {
		return AdvanceOrderStatusResult{}, err
	}

	if err = h.orders.UpdateIfStatus(ctx, o, observed); err != nil {
		return AdvanceOrderStatusResult{}, err
	}

	return AdvanceOrderStatusResult{
		OrderID:   o.ID(),
		Status:    o.Status(),
		UpdatedAt: o.UpdatedAt(),
	}, nil
}
