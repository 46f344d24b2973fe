// Package jobs provides scheduled background tasks for the ordering service.
//
// Jobs are cron-based (github.com/robfig/cron/v3, seconds-enabled expressions).
//
// # Available Jobs
//
//  1. AutoCompletionJob - completes orders that have sat in READY longer than the
//     configured window (default schedule: every minute, "0 * * * * *")
//
// # Usage
//
//	jobManager := jobs.NewJobManager(autoCompleteHandler, schedule, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Scheduling
//
// A run that is still in progress when the next tick fires causes that tick to be
// skipped, so sweeps never overlap. StopAll waits for a running sweep to finish.
package jobs
