package queries

import (
	"context"

	"ordering/internal/core/ports"
)

type GetPrintJobQueryHandler struct {
	jobs ports.PrintJobRepository
}

func NewGetPrintJobQueryHandler(jobs ports.PrintJobRepository) GetPrintJobQueryHandler {
	return GetPrintJobQueryHandler{jobs: jobs}
}

func (h GetPrintJobQueryHandler) Handle(ctx context.Context, query GetPrintJobQuery) (GetPrintJobQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetPrintJobQueryResponse{}, err
	}

	job, err := h.jobs.Get(ctx, query.OrderID(), query.JobID())
	if err != nil {
		return GetPrintJobQueryResponse{}, err
	}

	return GetPrintJobQueryResponse{
		JobID:        job.ID(),
		Status:       job.Status(),
		Attempts:     job.Attempts(),
		CreatedAt:    job.CreatedAt(),
		CompletedAt:  job.CompletedAt(),
		ErrorMessage: job.ErrorMessage(),
	}, nil
}
