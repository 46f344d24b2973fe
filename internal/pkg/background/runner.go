// Package background runs fire-and-forget work that must outlive the HTTP request
// that started it, while still letting shutdown wait for it.
package background

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Runner starts tasks on their own goroutines with a context that is independent of
// any request. Shutdown cancels that context only if the tasks do not finish in time.
type Runner struct {
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	logger *slog.Logger
}

func NewRunner(logger *slog.Logger) *Runner {
	ctx, cancel := context.WithCancel(context.Background())
	return &Runner{
		ctx:    ctx,
		cancel: cancel,
		logger: logger.With("component", "background_runner"),
	}
}

// Go runs fn detached. A panic in fn is logged and does not take the process down.
func (r *Runner) Go(fn func(ctx context.Context)) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		defer func() {
			if p := recover(); p != nil {
				r.logger.Error("background task panicked", "panic", p)
			}
		}()
		fn(r.ctx)
	}()
}

// Wait blocks until every started task has returned.
func (r *Runner) Wait() {
	r.wg.Wait()
}

// Shutdown waits up to timeout for in-flight tasks, then cancels them and waits for
// them to observe the cancellation.
func (r *Runner) Shutdown(timeout time.Duration) {
	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(timeout):
		r.logger.Warn("background tasks still running, cancelling", "timeout", timeout.String())
		r.cancel()
		<-done
	}
	r.cancel()
}
