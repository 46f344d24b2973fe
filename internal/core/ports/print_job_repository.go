package ports

import (
	"context"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/printjob"
)

type PrintJobRepository interface {
	Add(ctx context.Context, job *printjob.Job) error

	// Get returns errs.ObjectNotFoundError unless the job exists and belongs to orderID.
	Get(ctx context.Context, orderID, jobID kernel.UUID) (*printjob.Job, error)

	// Update writes attempts, status and completion fields, guarded by the stored
	// status being PENDING so a terminal job never reverts. Returns errs.ConflictError
	// when the guard fails.
	Update(ctx context.Context, job *printjob.Job) error
}
