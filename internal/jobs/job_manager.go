package jobs

import (
	"fmt"
	"log/slog"
)

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	autoCompletionJob *AutoCompletionJob
}

func NewJobManager(autoComplete SweepHandler, schedule string, logger *slog.Logger) *JobManager {
	return &JobManager{
		autoCompletionJob: NewAutoCompletionJob(autoComplete, schedule, logger),
	}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.autoCompletionJob.Start(); err != nil {
		return fmt.Errorf("failed to start auto-completion job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs, waiting for running ones to finish.
func (jm *JobManager) StopAll() {
	jm.autoCompletionJob.Stop()
}
