package commands

import (
	"context"
	"log/slog"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/printjob"
	"ordering/internal/core/ports"
)

type PrintOrderResult struct {
	JobID     kernel.UUID
	Status    printjob.Status
	CreatedAt time.Time
}

// PrintJobDispatcher delivers a stored job to the printer.
type PrintJobDispatcher interface {
	Handle(ctx context.Context, cmd DispatchPrintJobCommand) error
}

// PrintOrderCommandHandler stores a PENDING print job and hands delivery to the
// background runner. It returns as soon as the job row exists; printer retries and
// their delays never run on the caller's goroutine.
type PrintOrderCommandHandler struct {
	orders     ports.OrderRepository
	jobs       ports.PrintJobRepository
	dispatcher PrintJobDispatcher
	runner     ports.BackgroundRunner
	clock      kernel.Clock
	logger     *slog.Logger
}

func NewPrintOrderCommandHandler(
	orders ports.OrderRepository,
	jobs ports.PrintJobRepository,
	dispatcher PrintJobDispatcher,
	runner ports.BackgroundRunner,
	clock kernel.Clock,
	logger *slog.Logger,
) PrintOrderCommandHandler {
	return PrintOrderCommandHandler{
		orders:     orders,
		jobs:       jobs,
		dispatcher: dispatcher,
		runner:     runner,
		clock:      clock,
		logger:     logger.With("component", "print_order"),
	}
}

func (h *PrintOrderCommandHandler) Handle(ctx context.Context, cmd PrintOrderCommand) (PrintOrderResult, error) {
	if err := cmd.Validate(); err != nil {
		return PrintOrderResult{}, err
	}

	o, err := h.orders.Get(ctx, cmd.RestaurantID(), cmd.OrderID())
	if err != nil {
		return PrintOrderResult{}, err
	}

	job, err := printjob.NewJob(kernel.NewUUID(), o.ID(), h.clock.Now())
	if err != nil {
		return PrintOrderResult{}, err
	}

	if err = h.jobs.Add(ctx, job); err != nil {
		return PrintOrderResult{}, err
	}

	result := PrintOrderResult{
		JobID:     job.ID(),
		Status:    job.Status(),
		CreatedAt: job.CreatedAt(),
	}

	dispatch, err := NewDispatchPrintJobCommand(job, o)
	if err != nil {
		return PrintOrderResult{}, err
	}

	h.logger.InfoContext(ctx, "print job accepted",
		"job_id", job.ID().String(), "order_id", o.ID().String(), "reprint", cmd.IsReprint())

	h.runner.Go(func(bg context.Context) {
		if dispatchErr := h.dispatcher.Handle(bg, dispatch); dispatchErr != nil {
			h.logger.ErrorContext(bg, "print job dispatch failed",
				"job_id", result.JobID.String(), "error", dispatchErr)
		}
	})

	return result, nil
}
