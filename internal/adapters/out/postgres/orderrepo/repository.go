package orderrepo

import (
	"context"
	"errors"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/ports"
	"ordering/internal/pkg/errs"

	"gorm.io/gorm"
)

var _ ports.OrderRepository = (*GormOrderRepository)(nil)

// GormOrderRepository implements ports.OrderRepository using GORM. Status changes are
// single UPDATE statements whose WHERE clause carries the expected status, so the
// database row is the only arbiter between concurrent writers.
type GormOrderRepository struct {
	db *gorm.DB
}

func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).Create(&dto).Error
}

func (r *GormOrderRepository) Get(ctx context.Context, restaurantID string, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	err := r.db.WithContext(ctx).
		Where("order_id = ? AND restaurant_id = ?", id.Bytes(), restaurantID).
		First(&dto).Error
	if err != nil {
		return nil, notFound(err, id)
	}

	return toDomain(dto)
}

func (r *GormOrderRepository) FindByID(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "order_id = ?", id.Bytes()).Error; err != nil {
		return nil, notFound(err, id)
	}

	return toDomain(dto)
}

func (r *GormOrderRepository) UpdateIfStatus(ctx context.Context, aggregate *order.Order, expected order.Status) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("order_id = ? AND status = ?", dto.OrderID, int(expected)).
		Select(mutableColumns).
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewConflictError("order", aggregate.ID().String())
	}
	return nil
}

func (r *GormOrderRepository) SavePaymentFailure(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("order_id = ?", dto.OrderID).
		Select("payment_failure_info", "updated_at").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", aggregate.ID().String())
	}
	return nil
}

func (r *GormOrderRepository) FindStaleReady(ctx context.Context, cutoff time.Time, limit int) ([]*order.Order, error) {
	var dtos []OrderDTO
	q := r.db.WithContext(ctx).
		Where("status = ? AND updated_at < ?", int(order.Ready), cutoff).
		Order("updated_at")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&dtos).Error; err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, nil
}

func notFound(err error, id kernel.UUID) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.NewObjectNotFoundError("order", id.String())
	}
	return err
}
