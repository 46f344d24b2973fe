package commands

import (
	"context"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/menu"
	"ordering/internal/core/ports"
)

type PublishMenuResult struct {
	Version   string
	Status    menu.Status
	CreatedAt time.Time
}

// PublishMenuCommandHandler creates a menu version. With confirm set, the new version
// becomes the one orders are priced against and the previous one is demoted; the
// repository does both in one transaction.
type PublishMenuCommandHandler struct {
	menus ports.MenuRepository
	clock kernel.Clock
}

func NewPublishMenuCommandHandler(menus ports.MenuRepository, clock kernel.Clock) PublishMenuCommandHandler {
	return PublishMenuCommandHandler{menus: menus, clock: clock}
}

func (h *PublishMenuCommandHandler) Handle(ctx context.Context, cmd PublishMenuCommand) (PublishMenuResult, error) {
	if err := cmd.Validate(); err != nil {
		return PublishMenuResult{}, err
	}

	now := h.clock.Now()
	version, err := menu.NewVersion(cmd.RestaurantID(), cmd.Items(), now)
	if err != nil {
		return PublishMenuResult{}, err
	}
	if cmd.Confirm() {
		version.Confirm(now)
	}

	if err = h.menus.Add(ctx, version); err != nil {
		return PublishMenuResult{}, err
	}

	return PublishMenuResult{
		Version:   version.Version(),
		Status:    version.Status(),
		CreatedAt: version.CreatedAt(),
	}, nil
}
