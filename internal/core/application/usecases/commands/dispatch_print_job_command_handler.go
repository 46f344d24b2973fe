package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/model/printjob"
	"ordering/internal/core/ports"
	"ordering/internal/pkg/errs"
)

// DefaultRetryDelays are waited before attempts 1, 2 and 3 respectively.
var DefaultRetryDelays = []time.Duration{0, 15 * time.Second, 30 * time.Second}

const finalWriteTimeout = 5 * time.Second

// Sleeper waits for d or until ctx is done.
type Sleeper func(ctx context.Context, d time.Duration) error

// SleepContext is the production Sleeper.
func SleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// DispatchPrintJobCommandHandler renders the order and sends it to the printer, with
// at most printjob.MaxAttempts attempts. Each attempt is persisted before it runs; a
// store error while doing so counts as a failed attempt. The job ends SUCCESS when
// every document of the configured print type was accepted, or FAILED with the last
// error after the final attempt or when ctx is done between attempts.
type DispatchPrintJobCommandHandler struct {
	jobs      ports.PrintJobRepository
	renderer  ports.TicketRenderer
	printer   ports.Printer
	clock     kernel.Clock
	printType printjob.PrintType
	delays    []time.Duration
	sleep     Sleeper
	logger    *slog.Logger
}

func NewDispatchPrintJobCommandHandler(
	jobs ports.PrintJobRepository,
	renderer ports.TicketRenderer,
	printer ports.Printer,
	clock kernel.Clock,
	printType printjob.PrintType,
	logger *slog.Logger,
) *DispatchPrintJobCommandHandler {
	return &DispatchPrintJobCommandHandler{
		jobs:      jobs,
		renderer:  renderer,
		printer:   printer,
		clock:     clock,
		printType: printType,
		delays:    DefaultRetryDelays,
		sleep:     SleepContext,
		logger:    logger.With("component", "print_dispatcher"),
	}
}

// WithRetryDelays replaces the delay schedule and the way it is waited out.
func (h *DispatchPrintJobCommandHandler) WithRetryDelays(delays []time.Duration, sleep Sleeper) *DispatchPrintJobCommandHandler {
	h.delays = delays
	h.sleep = sleep
	return h
}

func (h *DispatchPrintJobCommandHandler) Handle(ctx context.Context, cmd DispatchPrintJobCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	job, o := cmd.Job(), cmd.Order()

	var lastErr error
	for job.CanRetry() {
		attempt := job.Attempts() + 1
		if err := h.sleep(ctx, h.delayBefore(attempt)); err != nil {
			lastErr = interrupted(lastErr, err)
			break
		}

		if err := job.StartAttempt(h.clock.Now()); err != nil {
			return err
		}
		if err := h.jobs.Update(ctx, job); err != nil {
			if errors.Is(err, errs.ErrConflict) {
				return h.ignoreConflict(ctx, job, err)
			}
			lastErr = err
			h.logger.WarnContext(ctx, "print attempt could not be recorded",
				"job_id", job.ID().String(), "attempt", attempt, "error", err)
			continue
		}

		if lastErr = h.printAll(ctx, o); lastErr != nil {
			h.logger.WarnContext(ctx, "print attempt failed",
				"job_id", job.ID().String(), "attempt", attempt, "error", lastErr)
			continue
		}

		if err := job.Succeed(h.clock.Now()); err != nil {
			return err
		}
		h.logger.InfoContext(ctx, "print job completed", "job_id", job.ID().String(), "attempts", job.Attempts())
		break
	}

	return h.finish(ctx, job, lastErr)
}

// finish records the terminal state. The write is detached from ctx so a job is still
// closed when the dispatch was interrupted by shutdown.
func (h *DispatchPrintJobCommandHandler) finish(ctx context.Context, job *printjob.Job, lastErr error) error {
	if job.Status() == printjob.Pending {
		if lastErr == nil {
			lastErr = errors.New("print attempts exhausted")
		}
		if err := job.Fail(lastErr.Error()); err != nil {
			return err
		}
	}

	writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), finalWriteTimeout)
	defer cancel()
	if err := h.ignoreConflict(ctx, job, h.jobs.Update(writeCtx, job)); err != nil {
		h.logger.ErrorContext(ctx, "print job result could not be saved",
			"job_id", job.ID().String(), "status", job.Status().String(), "error", err)
		return err
	}
	return nil
}

// interrupted keeps the last delivery error as the reason and notes the interruption.
func interrupted(lastErr, cause error) error {
	if lastErr == nil {
		return cause
	}
	return fmt.Errorf("%w (retry interrupted: %v)", lastErr, cause)
}

func (h *DispatchPrintJobCommandHandler) delayBefore(attempt int) time.Duration {
	if attempt-1 < len(h.delays) {
		return h.delays[attempt-1]
	}
	return 0
}

func (h *DispatchPrintJobCommandHandler) printAll(ctx context.Context, o *order.Order) error {
	documents := make([][]byte, 0, 2)
	if h.printType.IncludesReceipt() {
		documents = append(documents, h.renderer.Receipt(o))
	}
	if h.printType.IncludesKitchen() {
		documents = append(documents, h.renderer.KitchenTicket(o))
	}

	for _, doc := range documents {
		if err := h.printer.Print(ctx, doc); err != nil {
			return err
		}
	}
	return nil
}

// ignoreConflict treats a lost guard as "the job already reached a terminal state".
func (h *DispatchPrintJobCommandHandler) ignoreConflict(ctx context.Context, job *printjob.Job, err error) error {
	if errors.Is(err, errs.ErrConflict) {
		h.logger.InfoContext(ctx, "print job is no longer pending", "job_id", job.ID().String())
		return nil
	}
	return err
}
