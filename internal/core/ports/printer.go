package ports

import (
	"context"

	"ordering/internal/core/domain/model/order"
)

// TicketRenderer turns an order into printer-ready bytes.
type TicketRenderer interface {
	Receipt(o *order.Order) []byte
	KitchenTicket(o *order.Order) []byte
}

// Printer delivers one rendered document to the POS printer.
type Printer interface {
	Print(ctx context.Context, payload []byte) error
}
