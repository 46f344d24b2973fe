package commands

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/ports"
	"ordering/internal/pkg/errs"

	"golang.org/x/sync/errgroup"
)

const (
	defaultSweepConcurrency = 8
	defaultSweepBatchLimit  = 500
)

// SweepReport summarizes one auto-completion run.
type SweepReport struct {
	Candidates int
	Completed  int
	Skipped    int
	Failed     int
}

// AutoCompleteOrdersCommandHandler completes orders that have been READY for longer
// than the configured window.
//
// Candidates are processed independently with bounded parallelism. A candidate that
// is no longer stale, or whose guarded write loses to a concurrent transition, is
// skipped; an unexpected error on one candidate is counted and never aborts the run.
// Only a failing candidate query is returned as an error.
type AutoCompleteOrdersCommandHandler struct {
	orders      ports.OrderRepository
	notifier    ports.OrderNotifier
	clock       kernel.Clock
	after       time.Duration
	concurrency int
	batchLimit  int
	logger      *slog.Logger
}

func NewAutoCompleteOrdersCommandHandler(
	orders ports.OrderRepository,
	notifier ports.OrderNotifier,
	clock kernel.Clock,
	after time.Duration,
	logger *slog.Logger,
) AutoCompleteOrdersCommandHandler {
	return AutoCompleteOrdersCommandHandler{
		orders:      orders,
		notifier:    notifier,
		clock:       clock,
		after:       after,
		concurrency: defaultSweepConcurrency,
		batchLimit:  defaultSweepBatchLimit,
		logger:      logger.With("component", "auto_completion"),
	}
}

func (h *AutoCompleteOrdersCommandHandler) Handle(ctx context.Context, cmd AutoCompleteOrdersCommand) (SweepReport, error) {
	if err := cmd.Validate(); err != nil {
		return SweepReport{}, err
	}

	now := h.clock.Now()
	candidates, err := h.orders.FindStaleReady(ctx, now.Add(-h.after), h.batchLimit)
	if err != nil {
		return SweepReport{}, err
	}

	var completed, skipped, failed atomic.Int64
	g := new(errgroup.Group)
	g.SetLimit(h.concurrency)

	for _, candidate := range candidates {
		g.Go(func() error {
			switch outcome := h.complete(ctx, candidate, now); outcome {
			case sweepCompleted:
				completed.Add(1)
			case sweepSkipped:
				skipped.Add(1)
			default:
				failed.Add(1)
			}
			return nil
		})
	}
	_ = g.Wait()

	report := SweepReport{
		Candidates: len(candidates),
		Completed:  int(completed.Load()),
		Skipped:    int(skipped.Load()),
		Failed:     int(failed.Load()),
	}
	h.logger.InfoContext(ctx, "auto-completion sweep finished",
		"candidates", report.Candidates,
		"completed", report.Completed,
		"skipped", report.Skipped,
		"failed", report.Failed,
	)

	return report, nil
}

type sweepOutcome int

const (
	sweepCompleted sweepOutcome = iota
	sweepSkipped
	sweepFailed
)

func (h *AutoCompleteOrdersCommandHandler) complete(ctx context.Context, o *order.Order, now time.Time) sweepOutcome {
	if !o.IsStale(now, h.after) {
		return sweepSkipped
	}

	if err := o.AutoComplete(now); err != nil {
		return sweepSkipped
	}

	if err := h.orders.UpdateIfStatus(ctx, o, order.Ready); err != nil {
		if errors.Is(err, errs.ErrConflict) {
			h.logger.InfoContext(ctx, "order changed during auto-completion, skipping", "order_id", o.ID().String())
			return sweepSkipped
		}
		h.logger.ErrorContext(ctx, "failed to auto-complete order", "order_id", o.ID().String(), "error", err)
		return sweepFailed
	}

	if err := h.notifier.NotifyCompleted(ctx, o); err != nil {
		h.logger.WarnContext(ctx, "completion notification failed", "order_id", o.ID().String(), "error", err)
	}

	return sweepCompleted
}
