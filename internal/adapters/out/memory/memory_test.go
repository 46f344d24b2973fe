package memory_test

import (
	"testing"
	"time"

	"ordering/internal/adapters/out/memory"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/menu"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/model/printjob"
	"ordering/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func newOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), "r1", menu.Snapshot{Version: "v1"},
		[]order.LineItem{{MenuItemID: "burger", Name: "Burger", Price: decimal.NewFromInt(10000), Quantity: 1}},
		nil, now, 10*time.Minute)
	require.NoError(t, err)
	return o
}

func TestOrderRepository_UpdateIfStatus(t *testing.T) {
	ctx := t.Context()
	repo := memory.NewOrderRepository()
	o := newOrder(t)
	require.NoError(t, repo.Add(ctx, o))

	first, err := repo.FindByID(ctx, o.ID())
	require.NoError(t, err)
	second, err := repo.FindByID(ctx, o.ID())
	require.NoError(t, err)

	require.NoError(t, first.Pay(order.PaymentInfo{Method: "naverpay", TransactionID: "T1"}, now))
	require.NoError(t, repo.UpdateIfStatus(ctx, first, order.Created))

	_, err = second.Cancel(5, now)
	require.NoError(t, err)
	err = repo.UpdateIfStatus(ctx, second, order.Created)
	require.ErrorIs(t, err, errs.ErrConflict)

	stored, err := repo.Get(ctx, "r1", o.ID())
	require.NoError(t, err)
	assert.Equal(t, order.Paid, stored.Status())
	assert.Nil(t, stored.RefundInfo())
}

func TestOrderRepository_GetScopesByRestaurant(t *testing.T) {
	ctx := t.Context()
	repo := memory.NewOrderRepository()
	o := newOrder(t)
	require.NoError(t, repo.Add(ctx, o))

	_, err := repo.Get(ctx, "other", o.ID())
	require.ErrorIs(t, err, errs.ErrObjectNotFound)

	_, err = repo.FindByID(ctx, kernel.NewUUID())
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestOrderRepository_SavePaymentFailureKeepsStatus(t *testing.T) {
	ctx := t.Context()
	repo := memory.NewOrderRepository()
	o := newOrder(t)
	require.NoError(t, repo.Add(ctx, o))

	o.RecordPaymentFailure("kakaopay", "T2", now, now.Add(time.Second))
	require.NoError(t, repo.SavePaymentFailure(ctx, o))

	stored, err := repo.FindByID(ctx, o.ID())
	require.NoError(t, err)
	assert.Equal(t, order.Created, stored.Status())
	require.NotNil(t, stored.PaymentFailureInfo())
	assert.Equal(t, "T2", stored.PaymentFailureInfo().TransactionID)
}

func TestOrderRepository_FindStaleReady(t *testing.T) {
	ctx := t.Context()
	repo := memory.NewOrderRepository()

	ready := func(updated time.Time) *order.Order {
		o := newOrder(t)
		require.NoError(t, o.Pay(order.PaymentInfo{Method: "naverpay", TransactionID: "T"}, updated))
		require.NoError(t, o.Advance(order.Cooking, updated))
		require.NoError(t, o.Advance(order.Ready, updated))
		require.NoError(t, repo.Add(ctx, o))
		return o
	}
	stale := ready(now.Add(-31 * time.Minute))
	ready(now.Add(-10 * time.Minute))
	require.NoError(t, repo.Add(ctx, newOrder(t)))

	found, err := repo.FindStaleReady(ctx, now.Add(-30*time.Minute), 10)

	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.True(t, found[0].IsEqual(stale))
}

func TestMenuRepository_ConfirmDemotesPrevious(t *testing.T) {
	ctx := t.Context()
	repo := memory.NewMenuRepository()
	items := []menu.Item{{ID: "burger", Name: "Burger", Price: decimal.NewFromInt(10000), Available: true}}

	_, err := repo.GetConfirmed(ctx, "r1")
	require.ErrorIs(t, err, errs.ErrObjectNotFound)

	v1, err := menu.NewVersion("r1", items, now)
	require.NoError(t, err)
	v1.Confirm(now)
	require.NoError(t, repo.Add(ctx, v1))

	v2, err := menu.NewVersion("r1", items, now.Add(time.Second))
	require.NoError(t, err)
	v2.Confirm(now.Add(time.Second))
	require.NoError(t, repo.Add(ctx, v2))

	got, err := repo.GetConfirmed(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, v2.Version(), got.Version())
}

func TestPrintJobRepository_TerminalNeverReverts(t *testing.T) {
	ctx := t.Context()
	repo := memory.NewPrintJobRepository()
	orderID := kernel.NewUUID()
	job, err := printjob.NewJob(kernel.NewUUID(), orderID, now)
	require.NoError(t, err)
	require.NoError(t, repo.Add(ctx, job))

	require.NoError(t, job.StartAttempt(now))
	require.NoError(t, job.Succeed(now))
	require.NoError(t, repo.Update(ctx, job))

	stale, err := printjob.RestoreJob(job.ID(), orderID, printjob.Failed, now, 3, nil, nil, "late", job.ExpiresAt())
	require.NoError(t, err)
	require.ErrorIs(t, repo.Update(ctx, stale), errs.ErrConflict)

	got, err := repo.Get(ctx, orderID, job.ID())
	require.NoError(t, err)
	assert.Equal(t, printjob.Success, got.Status())

	_, err = repo.Get(ctx, kernel.NewUUID(), job.ID())
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}
