// Package orderrepo persists order aggregates in PostgreSQL with GORM. Nested values
// (menu snapshot, line items, payment and refund details) are stored as jsonb
// columns; the columns the service filters on are plain indexed columns.
package orderrepo

import (
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/menu"
	"ordering/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO is the orders table row. The (status, updated_at) index serves the
// auto-completion candidate query; order_id is the primary key webhooks look up by.
type OrderDTO struct {
	OrderID            uuid.UUID        `gorm:"type:uuid;primaryKey"`
	RestaurantID       string           `gorm:"not null;index"`
	MenuSnapshot       menu.Snapshot    `gorm:"type:jsonb;serializer:json"`
	Items              []order.LineItem `gorm:"type:jsonb;serializer:json"`
	Status             int              `gorm:"not null;index:idx_orders_status_updated_at,priority:1"`
	TotalAmount        decimal.Decimal  `gorm:"type:numeric(14,2);not null"`
	CreatedAt          time.Time        `gorm:"autoCreateTime:false"`
	UpdatedAt          time.Time        `gorm:"autoUpdateTime:false;index:idx_orders_status_updated_at,priority:2"`
	ExpiresAt          *time.Time       `gorm:"index"`
	AutoCompletedAt    *time.Time
	CustomerInfo       *order.CustomerInfo       `gorm:"type:jsonb;serializer:json"`
	PaymentInfo        *order.PaymentInfo        `gorm:"type:jsonb;serializer:json"`
	PaymentFailureInfo *order.PaymentFailureInfo `gorm:"type:jsonb;serializer:json"`
	RefundInfo         *order.RefundInfo         `gorm:"type:jsonb;serializer:json"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// mutableColumns are written by conditional updates. Everything fixed at creation
// (restaurant, snapshot, items, total) is never rewritten.
var mutableColumns = []string{
	"status",
	"updated_at",
	"expires_at",
	"auto_completed_at",
	"payment_info",
	"payment_failure_info",
	"refund_info",
}

func fromDomain(o *order.Order) OrderDTO {
	s := o.State()
	return OrderDTO{
		OrderID:            s.ID.Bytes(),
		RestaurantID:       s.RestaurantID,
		MenuSnapshot:       s.MenuSnapshot,
		Items:              s.Items,
		Status:             int(s.Status),
		TotalAmount:        s.TotalAmount,
		CreatedAt:          s.CreatedAt,
		UpdatedAt:          s.UpdatedAt,
		ExpiresAt:          s.ExpiresAt,
		AutoCompletedAt:    s.AutoCompletedAt,
		CustomerInfo:       s.CustomerInfo,
		PaymentInfo:        s.PaymentInfo,
		PaymentFailureInfo: s.PaymentFailureInfo,
		RefundInfo:         s.RefundInfo,
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(order.State{
		ID:                 id,
		RestaurantID:       dto.RestaurantID,
		MenuSnapshot:       dto.MenuSnapshot,
		Items:              dto.Items,
		Status:             order.Status(dto.Status),
		TotalAmount:        dto.TotalAmount,
		CreatedAt:          dto.CreatedAt,
		UpdatedAt:          dto.UpdatedAt,
		ExpiresAt:          dto.ExpiresAt,
		AutoCompletedAt:    dto.AutoCompletedAt,
		CustomerInfo:       dto.CustomerInfo,
		PaymentInfo:        dto.PaymentInfo,
		PaymentFailureInfo: dto.PaymentFailureInfo,
		RefundInfo:         dto.RefundInfo,
	})
}
