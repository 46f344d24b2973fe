package memory

import (
	"context"
	"sync"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/printjob"
	"ordering/internal/core/ports"
	"ordering/internal/pkg/errs"
)

var _ ports.PrintJobRepository = (*PrintJobRepository)(nil)

type PrintJobRepository struct {
	mu   sync.Mutex
	jobs map[kernel.UUID]*printjob.Job
}

func NewPrintJobRepository() *PrintJobRepository {
	return &PrintJobRepository{jobs: make(map[kernel.UUID]*printjob.Job)}
}

func (r *PrintJobRepository) Add(_ context.Context, job *printjob.Job) error {
	if err := job.Validate(); err != nil {
		return err
	}
	stored, err := copyJob(job)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.jobs[job.ID()] = stored
	return nil
}

func (r *PrintJobRepository) Get(_ context.Context, orderID, jobID kernel.UUID) (*printjob.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	j, ok := r.jobs[jobID]
	if !ok || !j.OrderID().IsEqual(orderID) {
		return nil, errs.NewObjectNotFoundError("print job", jobID)
	}
	return copyJob(j)
}

func (r *PrintJobRepository) Update(_ context.Context, job *printjob.Job) error {
	stored, err := copyJob(job)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	current, ok := r.jobs[job.ID()]
	if !ok || current.Status() != printjob.Pending {
		return errs.NewConflictError("print job", job.ID())
	}
	r.jobs[job.ID()] = stored
	return nil
}

func copyJob(j *printjob.Job) (*printjob.Job, error) {
	return printjob.RestoreJob(
		j.ID(), j.OrderID(), j.Status(), j.CreatedAt(), j.Attempts(),
		j.LastAttempt(), j.CompletedAt(), j.ErrorMessage(), j.ExpiresAt(),
	)
}
