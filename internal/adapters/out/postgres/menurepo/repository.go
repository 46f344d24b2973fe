// Package menurepo persists menu versions. A partial unique index keeps at most one
// CONFIRMED version per restaurant.
package menurepo

import (
	"context"
	"errors"
	"strconv"
	"time"

	"ordering/internal/core/domain/model/menu"
	"ordering/internal/core/ports"
	"ordering/internal/pkg/errs"

	"gorm.io/gorm"
)

var _ ports.MenuRepository = (*GormMenuRepository)(nil)

type MenuDTO struct {
	RestaurantID string      `gorm:"primaryKey"`
	Version      string      `gorm:"primaryKey"`
	Items        []menu.Item `gorm:"type:jsonb;serializer:json"`
	Status       int         `gorm:"not null"`
	CreatedAt    time.Time   `gorm:"autoCreateTime:false"`
	ConfirmedAt  *time.Time
}

func (MenuDTO) TableName() string {
	return "menus"
}

// ConfirmedIndexDDL creates the index that enforces a single CONFIRMED version.
var ConfirmedIndexDDL = "CREATE UNIQUE INDEX IF NOT EXISTS idx_menus_one_confirmed " +
	"ON menus (restaurant_id) WHERE status = " + strconv.Itoa(int(menu.Confirmed))

type GormMenuRepository struct {
	db *gorm.DB
}

func NewGormMenuRepository(db *gorm.DB) *GormMenuRepository {
	return &GormMenuRepository{db: db}
}

// Add inserts the version. A CONFIRMED version first demotes the restaurant's
// current one inside the same transaction.
func (r *GormMenuRepository) Add(ctx context.Context, version *menu.Version) error {
	if err := version.Validate(); err != nil {
		return err
	}

	dto := fromDomain(version)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if version.Status() == menu.Confirmed {
			err := tx.Model(&MenuDTO{}).
				Where("restaurant_id = ? AND status = ?", dto.RestaurantID, int(menu.Confirmed)).
				Update("status", int(menu.Draft)).Error
			if err != nil {
				return err
			}
		}
		return tx.Create(&dto).Error
	})
}

func (r *GormMenuRepository) GetConfirmed(ctx context.Context, restaurantID string) (*menu.Version, error) {
	var dto MenuDTO
	err := r.db.WithContext(ctx).
		Where("restaurant_id = ? AND status = ?", restaurantID, int(menu.Confirmed)).
		First(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("menu", restaurantID)
		}
		return nil, err
	}

	return toDomain(dto)
}

func fromDomain(v *menu.Version) MenuDTO {
	return MenuDTO{
		RestaurantID: v.RestaurantID(),
		Version:      v.Version(),
		Items:        v.Items(),
		Status:       int(v.Status()),
		CreatedAt:    v.CreatedAt(),
		ConfirmedAt:  v.ConfirmedAt(),
	}
}

func toDomain(dto MenuDTO) (*menu.Version, error) {
	return menu.RestoreVersion(dto.RestaurantID, dto.Version, dto.Items, menu.Status(dto.Status), dto.CreatedAt, dto.ConfirmedAt)
}
