package menu

import (
	"errors"
	"fmt"
	"time"

	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

var (
	ErrVersionIsNotConstructed = errors.New("menu Version must be created via NewVersion or RestoreVersion")
	ErrItemsAreRequired        = errs.NewValueIsRequiredError("menu items")
)

// Version is one published revision of a restaurant's menu. Versions are append-only:
// publishing never edits an existing version, it only flips the status of the
// previously confirmed one.
type Version struct {
	restaurantID string
	version      string
	items        []Item
	status       Status
	createdAt    time.Time
	confirmedAt  *time.Time
	guard        guard.ConstructorGuard
}

// VersionName derives the version label from the publish time, e.g. "v1718000000000".
func VersionName(at time.Time) string {
	return fmt.Sprintf("v%d", at.UnixMilli())
}

// NewVersion creates a DRAFT version stamped at now. Every item must pass Item.Validate
// and item ids must be unique within the version.
func NewVersion(restaurantID string, items []Item, now time.Time) (*Version, error) {
	v := &Version{
		version:   VersionName(now),
		status:    Draft,
		createdAt: now,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		v.setRestaurantID(restaurantID),
		v.setItems(items),
	); err != nil {
		return nil, err
	}

	return v, nil
}

// RestoreVersion rebuilds a version loaded from storage.
func RestoreVersion(
	restaurantID, version string,
	items []Item,
	status Status,
	createdAt time.Time,
	confirmedAt *time.Time,
) (*Version, error) {
	v := &Version{
		version:     version,
		createdAt:   createdAt,
		confirmedAt: confirmedAt,
		guard:       guard.NewConstructorGuard(),
	}

	var versionErr error
	if version == "" {
		versionErr = errs.NewValueIsRequiredError("menu version")
	}

	if err := errors.Join(
		v.setRestaurantID(restaurantID),
		versionErr,
		status.Validate(),
	); err != nil {
		return nil, err
	}
	v.status = status
	v.items = cloneItems(items)

	return v, nil
}

func (v *Version) Validate() error {
	if v == nil {
		return ErrVersionIsNotConstructed
	}
	return v.guard.Validate(ErrVersionIsNotConstructed)
}

func (v *Version) RestaurantID() string {
	return v.restaurantID
}

func (v *Version) Version() string {
	return v.version
}

// Items returns a copy; callers cannot mutate the version through it.
func (v *Version) Items() []Item {
	return cloneItems(v.items)
}

func (v *Version) Status() Status {
	return v.status
}

func (v *Version) CreatedAt() time.Time {
	return v.createdAt
}

func (v *Version) ConfirmedAt() *time.Time {
	return v.confirmedAt
}

// Confirm marks the version as the one orders are priced against.
func (v *Version) Confirm(now time.Time) {
	v.status = Confirmed
	v.confirmedAt = &now
}

// Demote returns a previously confirmed version to DRAFT. confirmedAt is kept as history.
func (v *Version) Demote() {
	v.status = Draft
}

// Snapshot freezes the version for embedding into an order.
func (v *Version) Snapshot() Snapshot {
	return NewSnapshot(v.version, v.items)
}

func (v *Version) setRestaurantID(restaurantID string) error {
	if restaurantID == "" {
		return errs.NewValueIsRequiredError("restaurantId")
	}
	v.restaurantID = restaurantID
	return nil
}

func (v *Version) setItems(items []Item) error {
	if len(items) == 0 {
		return ErrItemsAreRequired
	}

	seen := make(map[string]struct{}, len(items))
	problems := make([]error, 0)
	for _, it := range items {
		if err := it.Validate(); err != nil {
			problems = append(problems, err)
			continue
		}
		if _, dup := seen[it.ID]; dup {
			problems = append(problems, errs.NewValueIsInvalidErrorWithCause("menu items",
				fmt.Errorf("item id %q is used more than once", it.ID)))
		}
		seen[it.ID] = struct{}{}
	}
	if err := errors.Join(problems...); err != nil {
		return err
	}

	v.items = cloneItems(items)
	return nil
}
