// Package notify delivers order-completed notifications to customers, either by
// publishing them to RabbitMQ for the messaging workers or by logging them.
package notify

import (
	"fmt"

	"ordering/internal/core/domain/model/order"
)

// Notification is the message body consumers of the orders exchange receive.
type Notification struct {
	OrderID      string              `json:"orderId"`
	RestaurantID string              `json:"restaurantId"`
	Status       string              `json:"status"`
	Message      string              `json:"message"`
	CustomerInfo *order.CustomerInfo `json:"customerInfo,omitempty"`
}

func completedNotification(o *order.Order) Notification {
	return Notification{
		OrderID:      o.ID().String(),
		RestaurantID: o.RestaurantID(),
		Status:       o.Status().String(),
		Message:      fmt.Sprintf("Your order #%s is ready for pickup!", o.ID().ShortCode()),
		CustomerInfo: o.CustomerInfo(),
	}
}
