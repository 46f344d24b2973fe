package jobs_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/jobs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockSweepHandler struct {
	mock.Mock
}

func (m *MockSweepHandler) Handle(ctx context.Context, cmd commands.AutoCompleteOrdersCommand) (commands.SweepReport, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(commands.SweepReport), args.Error(1)
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestValidateSchedule(t *testing.T) {
	require.NoError(t, jobs.ValidateSchedule(jobs.DefaultAutoCompletionSchedule))
	require.NoError(t, jobs.ValidateSchedule("@every 30s"))
	require.Error(t, jobs.ValidateSchedule("* * * * *"), "five fields lack the seconds column")
	require.Error(t, jobs.ValidateSchedule("not a schedule"))
}

func TestAutoCompletionJob_Run(t *testing.T) {
	h := &MockSweepHandler{}
	h.On("Handle", mock.Anything, mock.Anything).Return(commands.SweepReport{Candidates: 2, Completed: 2}, nil).Once()
	h.On("Handle", mock.Anything, mock.Anything).Return(commands.SweepReport{}, errors.New("db down")).Once()

	job := jobs.NewAutoCompletionJob(h, "", discard())
	job.Run(t.Context())
	job.Run(t.Context())

	h.AssertNumberOfCalls(t, "Handle", 2)
}

func TestJobManager_RunsOnSchedule(t *testing.T) {
	ran := make(chan struct{}, 8)
	h := &MockSweepHandler{}
	h.On("Handle", mock.Anything, mock.Anything).
		Run(func(mock.Arguments) { ran <- struct{}{} }).
		Return(commands.SweepReport{}, nil)

	jm := jobs.NewJobManager(h, "* * * * * *", discard())
	require.NoError(t, jm.StartAll())
	defer jm.StopAll()

	select {
	case <-ran:
	case <-time.After(3 * time.Second):
		t.Fatal("sweep did not run within 3s")
	}
}

func TestJobManager_RejectsBadSchedule(t *testing.T) {
	jm := jobs.NewJobManager(&MockSweepHandler{}, "every now and then", discard())
	err := jm.StartAll()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "auto-completion job")
}
