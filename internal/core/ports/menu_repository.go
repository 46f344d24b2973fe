package ports

import (
	"context"

	"ordering/internal/core/domain/model/menu"
)

// MenuReader resolves the menu that new orders are priced against.
type MenuReader interface {
	// GetConfirmed returns the CONFIRMED version of the restaurant's menu, or
	// errs.ObjectNotFoundError if the restaurant has none.
	GetConfirmed(ctx context.Context, restaurantID string) (*menu.Version, error)
}

type MenuRepository interface {
	MenuReader

	// Add stores a new version. If the version is CONFIRMED, any previously confirmed
	// version of the same restaurant is demoted to DRAFT in the same transaction.
	Add(ctx context.Context, version *menu.Version) error
}
