package queries

import (
	"context"

	"ordering/internal/core/ports"
)

// GetMenuQueryHandler serves the CONFIRMED menu version, the same one new orders
// are priced against. Drafts are never shown to customers.
type GetMenuQueryHandler struct {
	menus ports.MenuReader
}

func NewGetMenuQueryHandler(menus ports.MenuReader) GetMenuQueryHandler {
	return GetMenuQueryHandler{menus: menus}
}

func (h GetMenuQueryHandler) Handle(ctx context.Context, query GetMenuQuery) (GetMenuQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetMenuQueryResponse{}, err
	}

	version, err := h.menus.GetConfirmed(ctx, query.RestaurantID())
	if err != nil {
		return GetMenuQueryResponse{}, err
	}

	return GetMenuQueryResponse{
		RestaurantID: version.RestaurantID(),
		Version:      version.Version(),
		Status:       version.Status(),
		Items:        version.Items(),
		ConfirmedAt:  version.ConfirmedAt(),
	}, nil
}
