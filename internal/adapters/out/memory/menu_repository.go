package memory

import (
	"context"
	"sync"

	"ordering/internal/core/domain/model/menu"
	"ordering/internal/core/ports"
	"ordering/internal/pkg/errs"
)

var _ ports.MenuRepository = (*MenuRepository)(nil)

type MenuRepository struct {
	mu       sync.Mutex
	versions map[string][]*menu.Version
}

func NewMenuRepository() *MenuRepository {
	return &MenuRepository{versions: make(map[string][]*menu.Version)}
}

func (r *MenuRepository) Add(_ context.Context, version *menu.Version) error {
	if err := version.Validate(); err != nil {
		return err
	}
	stored, err := copyVersion(version)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if stored.Status() == menu.Confirmed {
		for _, v := range r.versions[stored.RestaurantID()] {
			if v.Status() == menu.Confirmed {
				v.Demote()
			}
		}
	}
	r.versions[stored.RestaurantID()] = append(r.versions[stored.RestaurantID()], stored)
	return nil
}

func (r *MenuRepository) GetConfirmed(_ context.Context, restaurantID string) (*menu.Version, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, v := range r.versions[restaurantID] {
		if v.Status() == menu.Confirmed {
			return copyVersion(v)
		}
	}
	return nil, errs.NewObjectNotFoundError("menu", restaurantID)
}

func copyVersion(v *menu.Version) (*menu.Version, error) {
	return menu.RestoreVersion(v.RestaurantID(), v.Version(), v.Items(), v.Status(), v.CreatedAt(), v.ConfirmedAt())
}
