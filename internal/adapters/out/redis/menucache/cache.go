// Package menucache puts a Redis cache-aside layer in front of the menu repository.
// Every order creation resolves the restaurant's CONFIRMED menu, so the lookup is
// cached and concurrent misses for one restaurant collapse into a single store read.
package menucache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"ordering/internal/core/domain/model/menu"
	"ordering/internal/core/ports"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

var _ ports.MenuRepository = (*Cache)(nil)

// Cache decorates a ports.MenuRepository. Redis failures degrade to reading the
// repository directly; they are logged and never returned.
type Cache struct {
	next   ports.MenuRepository
	client redis.Cmdable
	ttl    time.Duration
	group  singleflight.Group
	logger *slog.Logger
}

func New(next ports.MenuRepository, client redis.Cmdable, ttl time.Duration, logger *slog.Logger) *Cache {
	return &Cache{
		next:   next,
		client: client,
		ttl:    ttl,
		logger: logger.With("component", "menu_cache"),
	}
}

func key(restaurantID string) string {
	return "menu:confirmed:" + restaurantID
}

func (c *Cache) GetConfirmed(ctx context.Context, restaurantID string) (*menu.Version, error) {
	k := key(restaurantID)

	data, err := c.client.Get(ctx, k).Bytes()
	switch {
	case err == nil:
		v, decodeErr := decode(data)
		if decodeErr == nil {
			return v, nil
		}
		c.logger.WarnContext(ctx, "discarding undecodable cache entry", "key", k, "error", decodeErr)
	case !errors.Is(err, redis.Nil):
		c.logger.WarnContext(ctx, "menu cache read failed", "key", k, "error", err)
	}

	shared, err, _ := c.group.Do(k, func() (any, error) {
		v, loadErr := c.next.GetConfirmed(ctx, restaurantID)
		if loadErr != nil {
			return nil, loadErr
		}
		encoded, encodeErr := encode(v)
		if encodeErr != nil {
			return nil, encodeErr
		}
		if setErr := c.client.Set(ctx, k, encoded, c.ttl).Err(); setErr != nil {
			c.logger.WarnContext(ctx, "menu cache write failed", "key", k, "error", setErr)
		}
		return encoded, nil
	})
	if err != nil {
		return nil, err
	}

	// Each caller decodes its own copy of the shared bytes.
	return decode(shared.([]byte))
}

// Add stores the version and drops the cached CONFIRMED entry of its restaurant.
func (c *Cache) Add(ctx context.Context, version *menu.Version) error {
	if err := c.next.Add(ctx, version); err != nil {
		return err
	}

	if err := c.client.Del(ctx, key(version.RestaurantID())).Err(); err != nil {
		c.logger.WarnContext(ctx, "menu cache invalidation failed",
			"restaurant_id", version.RestaurantID(), "error", err)
	}
	return nil
}

type entry struct {
	RestaurantID string      `json:"restaurantId"`
	Version      string      `json:"version"`
	Items        []menu.Item `json:"items"`
	Status       string      `json:"status"`
	CreatedAt    time.Time   `json:"createdAt"`
	ConfirmedAt  *time.Time  `json:"confirmedAt,omitempty"`
}

func encode(v *menu.Version) ([]byte, error) {
	return json.Marshal(entry{
		RestaurantID: v.RestaurantID(),
		Version:      v.Version(),
		Items:        v.Items(),
		Status:       v.Status().String(),
		CreatedAt:    v.CreatedAt(),
		ConfirmedAt:  v.ConfirmedAt(),
	})
}

func decode(data []byte) (*menu.Version, error) {
	var e entry
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, err
	}
	status, err := menu.ParseStatus(e.Status)
	if err != nil {
		return nil, err
	}
	return menu.RestoreVersion(e.RestaurantID, e.Version, e.Items, status, e.CreatedAt, e.ConfirmedAt)
}
