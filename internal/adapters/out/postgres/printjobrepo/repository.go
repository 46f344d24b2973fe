// Package printjobrepo persists POS print jobs.
package printjobrepo

import (
	"context"
	"errors"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/printjob"
	"ordering/internal/core/ports"
	"ordering/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var _ ports.PrintJobRepository = (*GormPrintJobRepository)(nil)

type PrintJobDTO struct {
	JobID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID      uuid.UUID `gorm:"type:uuid;not null;index"`
	Status       int       `gorm:"not null"`
	CreatedAt    time.Time `gorm:"autoCreateTime:false"`
	Attempts     int       `gorm:"not null;default:0"`
	LastAttempt  *time.Time
	CompletedAt  *time.Time
	ErrorMessage string
	ExpiresAt    time.Time `gorm:"index"`
}

func (PrintJobDTO) TableName() string {
	return "pos_jobs"
}

var mutableColumns = []string{"status", "attempts", "last_attempt", "completed_at", "error_message"}

type GormPrintJobRepository struct {
	db *gorm.DB
}

func NewGormPrintJobRepository(db *gorm.DB) *GormPrintJobRepository {
	return &GormPrintJobRepository{db: db}
}

func (r *GormPrintJobRepository) Add(ctx context.Context, job *printjob.Job) error {
	if err := job.Validate(); err != nil {
		return err
	}

	dto := fromDomain(job)
	return r.db.WithContext(ctx).Create(&dto).Error
}

func (r *GormPrintJobRepository) Get(ctx context.Context, orderID, jobID kernel.UUID) (*printjob.Job, error) {
	var dto PrintJobDTO
	err := r.db.WithContext(ctx).
		Where("job_id = ? AND order_id = ?", jobID.Bytes(), orderID.Bytes()).
		First(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("print job", jobID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// Update only touches a row that is still PENDING.
func (r *GormPrintJobRepository) Update(ctx context.Context, job *printjob.Job) error {
	if err := job.Validate(); err != nil {
		return err
	}

	dto := fromDomain(job)
	result := r.db.WithContext(ctx).
		Model(&PrintJobDTO{}).
		Where("job_id = ? AND status = ?", dto.JobID, int(printjob.Pending)).
		Select(mutableColumns).
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewConflictError("print job", job.ID().String())
	}
	return nil
}

func fromDomain(j *printjob.Job) PrintJobDTO {
	return PrintJobDTO{
		JobID:        j.ID().Bytes(),
		OrderID:      j.OrderID().Bytes(),
		Status:       int(j.Status()),
		CreatedAt:    j.CreatedAt(),
		Attempts:     j.Attempts(),
		LastAttempt:  j.LastAttempt(),
		CompletedAt:  j.CompletedAt(),
		ErrorMessage: j.ErrorMessage(),
		ExpiresAt:    j.ExpiresAt(),
	}
}

func toDomain(dto PrintJobDTO) (*printjob.Job, error) {
	id, err := kernel.UUIDFromBytes(dto.JobID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	return printjob.RestoreJob(id, orderID, printjob.Status(dto.Status), dto.CreatedAt,
		dto.Attempts, dto.LastAttempt, dto.CompletedAt, dto.ErrorMessage, dto.ExpiresAt)
}
