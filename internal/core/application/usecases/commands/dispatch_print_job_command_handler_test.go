package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"ordering/internal/adapters/out/memory"
	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/model/printjob"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// recordingSleeper records requested delays instead of waiting.
type recordingSleeper struct{ delays []time.Duration }

func (s *recordingSleeper) sleep(_ context.Context, d time.Duration) error {
	s.delays = append(s.delays, d)
	return nil
}

type dispatchFixture struct {
	jobs    *memory.PrintJobRepository
	printer *MockPrinter
	sleeper *recordingSleeper
	handler *commands.DispatchPrintJobCommandHandler
	cmd     commands.DispatchPrintJobCommand
}

func newDispatchFixture(t *testing.T, printType printjob.PrintType) dispatchFixture {
	t.Helper()
	jobs := memory.NewPrintJobRepository()
	o := placedOrder(order.Paid)
	job, err := printjob.NewJob(kernel.NewUUID(), o.ID(), testNow)
	require.NoError(t, err)
	require.NoError(t, jobs.Add(t.Context(), job))
	cmd, err := commands.NewDispatchPrintJobCommand(job, o)
	require.NoError(t, err)

	f := dispatchFixture{
		jobs:    jobs,
		printer: new(MockPrinter),
		sleeper: &recordingSleeper{},
		cmd:     cmd,
	}
	f.handler = commands.NewDispatchPrintJobCommandHandler(jobs, stubRenderer{}, f.printer, fixedClock(), printType, discardLogger()).
		WithRetryDelays(commands.DefaultRetryDelays, f.sleeper.sleep)
	return f
}

func (f dispatchFixture) stored(t *testing.T) *printjob.Job {
	t.Helper()
	job, err := f.jobs.Get(t.Context(), f.cmd.Order().ID(), f.cmd.Job().ID())
	require.NoError(t, err)
	return job
}

func TestDispatchPrintJobCommandHandler_FailsAfterThreeAttempts(t *testing.T) {
	f := newDispatchFixture(t, printjob.PrintBoth)
	f.printer.On("Print", mock.Anything, []byte("receipt")).Return(errors.New("first")).Once()
	f.printer.On("Print", mock.Anything, []byte("receipt")).Return(errors.New("second")).Once()
	f.printer.On("Print", mock.Anything, []byte("receipt")).Return(errors.New("printer offline")).Once()

	err := f.handler.Handle(t.Context(), f.cmd)

	require.NoError(t, err)
	job := f.stored(t)
	assert.Equal(t, printjob.Failed, job.Status())
	assert.Equal(t, printjob.MaxAttempts, job.Attempts())
	assert.Equal(t, "printer offline", job.ErrorMessage())
	assert.Nil(t, job.CompletedAt())
	assert.Equal(t, []time.Duration{0, 15 * time.Second, 30 * time.Second}, f.sleeper.delays)
	f.printer.AssertNotCalled(t, "Print", mock.Anything, []byte("kitchen"))
}

func TestDispatchPrintJobCommandHandler_SucceedsOnSecondAttempt(t *testing.T) {
	f := newDispatchFixture(t, printjob.PrintBoth)
	f.printer.On("Print", mock.Anything, []byte("receipt")).Return(errors.New("paper jam")).Once()
	f.printer.On("Print", mock.Anything, []byte("receipt")).Return(nil).Once()
	f.printer.On("Print", mock.Anything, []byte("kitchen")).Return(nil).Once()

	err := f.handler.Handle(t.Context(), f.cmd)

	require.NoError(t, err)
	job := f.stored(t)
	assert.Equal(t, printjob.Success, job.Status())
	assert.Equal(t, 2, job.Attempts())
	require.NotNil(t, job.CompletedAt())
	assert.Equal(t, []time.Duration{0, 15 * time.Second}, f.sleeper.delays)
	f.printer.AssertExpectations(t)
	f.printer.AssertNumberOfCalls(t, "Print", 3)
}

func TestDispatchPrintJobCommandHandler_PrintTypeSelectsDocuments(t *testing.T) {
	f := newDispatchFixture(t, printjob.PrintKitchen)
	f.printer.On("Print", mock.Anything, []byte("kitchen")).Return(nil).Once()

	require.NoError(t, f.handler.Handle(t.Context(), f.cmd))

	f.printer.AssertExpectations(t)
	f.printer.AssertNotCalled(t, "Print", mock.Anything, []byte("receipt"))
	assert.Equal(t, 1, f.stored(t).Attempts())
}

func TestDispatchPrintJobCommandHandler_ClosesJobWhenContextIsDone(t *testing.T) {
	f := newDispatchFixture(t, printjob.PrintReceipt)
	ctx, cancel := context.WithCancel(t.Context())
	cancel()
	f.handler.WithRetryDelays([]time.Duration{time.Hour}, commands.SleepContext)

	err := f.handler.Handle(ctx, f.cmd)

	require.NoError(t, err)
	job := f.stored(t)
	assert.Equal(t, printjob.Failed, job.Status())
	assert.Equal(t, 0, job.Attempts())
	assert.Equal(t, context.Canceled.Error(), job.ErrorMessage())
	f.printer.AssertNotCalled(t, "Print", mock.Anything, mock.Anything)
}

func TestDispatchPrintJobCommandHandler_InterruptedRetryKeepsLastError(t *testing.T) {
	f := newDispatchFixture(t, printjob.PrintReceipt)
	f.printer.On("Print", mock.Anything, []byte("receipt")).Return(errors.New("paper jam")).Once()
	f.handler.WithRetryDelays(commands.DefaultRetryDelays, func(_ context.Context, d time.Duration) error {
		if d > 0 {
			return context.Canceled
		}
		return nil
	})

	require.NoError(t, f.handler.Handle(t.Context(), f.cmd))

	job := f.stored(t)
	assert.Equal(t, printjob.Failed, job.Status())
	assert.Equal(t, 1, job.Attempts())
	assert.Equal(t, "paper jam (retry interrupted: context canceled)", job.ErrorMessage())
	f.printer.AssertExpectations(t)
}

// flakyJobs fails the first failures Update calls and then delegates.
type flakyJobs struct {
	*memory.PrintJobRepository
	failures int
	err      error
}

func (r *flakyJobs) Update(ctx context.Context, job *printjob.Job) error {
	if r.failures > 0 {
		r.failures--
		return r.err
	}
	return r.PrintJobRepository.Update(ctx, job)
}

func newFlakyDispatchFixture(t *testing.T, failures int) (dispatchFixture, *flakyJobs) {
	t.Helper()
	f := newDispatchFixture(t, printjob.PrintKitchen)
	jobs := &flakyJobs{PrintJobRepository: f.jobs, failures: failures, err: errors.New("store timeout")}
	f.handler = commands.NewDispatchPrintJobCommandHandler(jobs, stubRenderer{}, f.printer, fixedClock(), printjob.PrintKitchen, discardLogger()).
		WithRetryDelays(commands.DefaultRetryDelays, f.sleeper.sleep)
	return f, jobs
}

func TestDispatchPrintJobCommandHandler_StoreErrorCountsAsFailedAttempt(t *testing.T) {
	f, _ := newFlakyDispatchFixture(t, 1)
	f.printer.On("Print", mock.Anything, []byte("kitchen")).Return(nil).Once()

	require.NoError(t, f.handler.Handle(t.Context(), f.cmd))

	job := f.stored(t)
	assert.Equal(t, printjob.Success, job.Status())
	assert.Equal(t, 2, job.Attempts())
	assert.Equal(t, []time.Duration{0, 15 * time.Second}, f.sleeper.delays)
	f.printer.AssertNumberOfCalls(t, "Print", 1)
}

func TestDispatchPrintJobCommandHandler_StoreOutageEndsFailed(t *testing.T) {
	f, _ := newFlakyDispatchFixture(t, printjob.MaxAttempts)

	require.NoError(t, f.handler.Handle(t.Context(), f.cmd))

	job := f.stored(t)
	assert.Equal(t, printjob.Failed, job.Status())
	assert.Equal(t, printjob.MaxAttempts, job.Attempts())
	assert.Equal(t, "store timeout", job.ErrorMessage())
	assert.Len(t, f.sleeper.delays, printjob.MaxAttempts)
	f.printer.AssertNotCalled(t, "Print", mock.Anything, mock.Anything)
}

func TestDispatchPrintJobCommandHandler_ReturnsErrorWhenResultCannotBeSaved(t *testing.T) {
	f, _ := newFlakyDispatchFixture(t, printjob.MaxAttempts+1)

	err := f.handler.Handle(t.Context(), f.cmd)

	require.EqualError(t, err, "store timeout")
	assert.Equal(t, printjob.Pending, f.stored(t).Status())
}
