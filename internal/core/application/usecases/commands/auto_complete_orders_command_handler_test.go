package commands_test

import (
	"errors"
	"testing"
	"time"

	"ordering/internal/adapters/out/memory"
	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// readySince returns a READY order whose last update was ago before testNow.
func readySince(t *testing.T, ago time.Duration) *order.Order {
	t.Helper()
	s := placedOrder(order.Ready).State()
	s.UpdatedAt = testNow.Add(-ago)
	o, err := order.RestoreOrder(s)
	require.NoError(t, err)
	return o
}

func TestAutoCompleteOrdersCommandHandler_CompletesOnlyStaleOrders(t *testing.T) {
	ctx := t.Context()
	orders := memory.NewOrderRepository()
	stale := readySince(t, 31*time.Minute)
	fresh := readySince(t, 10*time.Minute)
	cooking := placedOrder(order.Cooking)
	for _, o := range []*order.Order{stale, fresh, cooking} {
		require.NoError(t, orders.Add(ctx, o))
	}
	notifier := new(MockNotifier)
	notifier.On("NotifyCompleted", mock.Anything, mock.Anything).Return(nil)
	h := commands.NewAutoCompleteOrdersCommandHandler(orders, notifier, fixedClock(), 30*time.Minute, discardLogger())

	report, err := h.Handle(ctx, commands.NewAutoCompleteOrdersCommand())

	require.NoError(t, err)
	assert.Equal(t, commands.SweepReport{Candidates: 1, Completed: 1}, report)

	got, _ := orders.FindByID(ctx, stale.ID())
	assert.Equal(t, order.Completed, got.Status())
	require.NotNil(t, got.AutoCompletedAt())
	assert.Equal(t, testNow, *got.AutoCompletedAt())

	got, _ = orders.FindByID(ctx, fresh.ID())
	assert.Equal(t, order.Ready, got.Status())
	got, _ = orders.FindByID(ctx, cooking.ID())
	assert.Equal(t, order.Cooking, got.Status())

	notifier.AssertNumberOfCalls(t, "NotifyCompleted", 1)
}

func TestAutoCompleteOrdersCommandHandler_CandidatesAreIsolated(t *testing.T) {
	ctx := t.Context()
	lost := readySince(t, time.Hour)
	broken := readySince(t, time.Hour)
	ok := readySince(t, time.Hour)
	notStale := readySince(t, time.Minute)

	orders := new(MockOrderRepository)
	orders.On("FindStaleReady", ctx, testNow.Add(-30*time.Minute), 500).
		Return([]*order.Order{lost, broken, ok, notStale}, nil)
	orders.On("UpdateIfStatus", ctx, lost, order.Ready).Return(errs.NewConflictError("order", lost.ID()))
	orders.On("UpdateIfStatus", ctx, broken, order.Ready).Return(errors.New("connection reset"))
	orders.On("UpdateIfStatus", ctx, ok, order.Ready).Return(nil)

	notifier := new(MockNotifier)
	notifier.On("NotifyCompleted", ctx, ok).Return(errors.New("broker down"))

	h := commands.NewAutoCompleteOrdersCommandHandler(orders, notifier, fixedClock(), 30*time.Minute, discardLogger())

	report, err := h.Handle(ctx, commands.NewAutoCompleteOrdersCommand())

	require.NoError(t, err)
	assert.Equal(t, commands.SweepReport{Candidates: 4, Completed: 1, Skipped: 2, Failed: 1}, report)
	orders.AssertNotCalled(t, "UpdateIfStatus", ctx, notStale, order.Ready)
	notifier.AssertNumberOfCalls(t, "NotifyCompleted", 1)
}

func TestAutoCompleteOrdersCommandHandler_QueryFailure(t *testing.T) {
	ctx := t.Context()
	orders := new(MockOrderRepository)
	orders.On("FindStaleReady", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("db down"))
	h := commands.NewAutoCompleteOrdersCommandHandler(orders, new(MockNotifier), fixedClock(), 30*time.Minute, discardLogger())

	_, err := h.Handle(ctx, commands.NewAutoCompleteOrdersCommand())

	require.Error(t, err)
}

func TestAutoCompleteOrdersCommandHandler_EmptyRun(t *testing.T) {
	h := commands.NewAutoCompleteOrdersCommandHandler(memory.NewOrderRepository(), new(MockNotifier), fixedClock(), 30*time.Minute, discardLogger())

	report, err := h.Handle(t.Context(), commands.NewAutoCompleteOrdersCommand())

	require.NoError(t, err)
	assert.Equal(t, commands.SweepReport{}, report)
}
