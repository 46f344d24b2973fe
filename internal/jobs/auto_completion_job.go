package jobs

import (
	"context"
	"log/slog"

	"ordering/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DefaultAutoCompletionSchedule runs the sweep at second 0 of every minute.
const DefaultAutoCompletionSchedule = "0 * * * * *"

// SweepHandler runs one auto-completion sweep.
type SweepHandler interface {
	Handle(ctx context.Context, cmd commands.AutoCompleteOrdersCommand) (commands.SweepReport, error)
}

// AutoCompletionJob runs the auto-completion sweep on a cron schedule.
type AutoCompletionJob struct {
	handler  SweepHandler
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

func NewAutoCompletionJob(handler SweepHandler, schedule string, logger *slog.Logger) *AutoCompletionJob {
	if schedule == "" {
		schedule = DefaultAutoCompletionSchedule
	}
	return &AutoCompletionJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:   logger.With("component", "auto_completion_job"),
	}
}

// ValidateSchedule reports whether spec is a valid seconds-enabled cron expression.
func ValidateSchedule(spec string) error {
	_, err := cron.NewParser(
		cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
	).Parse(spec)
	return err
}

// Run performs a single sweep. Failures are logged; the next tick tries again.
func (j *AutoCompletionJob) Run(ctx context.Context) {
	report, err := j.handler.Handle(ctx, commands.NewAutoCompleteOrdersCommand())
	if err != nil {
		j.logger.ErrorContext(ctx, "Auto-completion sweep failed", "error", err)
		return
	}
	if report.Failed > 0 {
		j.logger.WarnContext(ctx, "Auto-completion sweep left orders behind", "failed", report.Failed)
	}
}

func (j *AutoCompletionJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		j.Run(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Auto-completion job started", "schedule", j.schedule)
	return nil
}

// Stop stops scheduling and waits for a sweep in progress to return.
func (j *AutoCompletionJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Auto-completion job stopped")
}
