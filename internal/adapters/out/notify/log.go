package notify

import (
	"context"
	"log/slog"

	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/ports"
)

var _ ports.OrderNotifier = (*LogNotifier)(nil)

// LogNotifier is used when no broker is configured. It logs what would be sent.
type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger.With("component", "log_notifier")}
}

func (n *LogNotifier) NotifyCompleted(ctx context.Context, o *order.Order) error {
	msg := completedNotification(o)
	attrs := []any{"order_id", msg.OrderID, "restaurant_id", msg.RestaurantID, "message", msg.Message}
	if c := msg.CustomerInfo; c != nil {
		attrs = append(attrs, "phone", c.Phone, "email", c.Email)
	}
	n.logger.InfoContext(ctx, "order completion notification", attrs...)
	return nil
}
