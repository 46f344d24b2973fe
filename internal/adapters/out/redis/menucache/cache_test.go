package menucache

import (
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"ordering/internal/adapters/out/memory"
	"ordering/internal/core/domain/model/menu"
	"ordering/internal/pkg/errs"

	"github.com/go-redis/redismock/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ttl = time.Minute

func confirmedMenu(t *testing.T) *menu.Version {
	t.Helper()
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	v, err := menu.NewVersion("r1", []menu.Item{
		{ID: "burger", Name: "Burger", Price: decimal.NewFromInt(10000), Available: true},
	}, now)
	require.NoError(t, err)
	v.Confirm(now)
	return v
}

func newCache(t *testing.T, store *memory.MenuRepository) (*Cache, redismock.ClientMock) {
	t.Helper()
	db, mock := redismock.NewClientMock()
	return New(store, db, ttl, slog.New(slog.NewTextHandler(io.Discard, nil))), mock
}

func TestCache_MissLoadsAndStores(t *testing.T) {
	ctx := t.Context()
	store := memory.NewMenuRepository()
	v := confirmedMenu(t)
	require.NoError(t, store.Add(ctx, v))
	encoded, err := encode(v)
	require.NoError(t, err)

	c, mock := newCache(t, store)
	mock.ExpectGet("menu:confirmed:r1").RedisNil()
	mock.ExpectSet("menu:confirmed:r1", encoded, ttl).SetVal("OK")

	got, err := c.GetConfirmed(ctx, "r1")

	require.NoError(t, err)
	assert.Equal(t, v.Version(), got.Version())
	assert.Equal(t, menu.Confirmed, got.Status())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCache_HitSkipsStore(t *testing.T) {
	ctx := t.Context()
	v := confirmedMenu(t)
	encoded, err := encode(v)
	require.NoError(t, err)

	// Given: an empty store, so any answer must come from redis
	c, mock := newCache(t, memory.NewMenuRepository())
	mock.ExpectGet("menu:confirmed:r1").SetVal(string(encoded))

	got, err := c.GetConfirmed(ctx, "r1")

	require.NoError(t, err)
	assert.Equal(t, v.Version(), got.Version())
	require.Len(t, got.Items(), 1)
	assert.True(t, got.Items()[0].Price.Equal(decimal.NewFromInt(10000)))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCache_RedisDownFallsBackToStore(t *testing.T) {
	ctx := t.Context()
	store := memory.NewMenuRepository()
	v := confirmedMenu(t)
	require.NoError(t, store.Add(ctx, v))
	encoded, err := encode(v)
	require.NoError(t, err)

	c, mock := newCache(t, store)
	mock.ExpectGet("menu:confirmed:r1").SetErr(errors.New("connection refused"))
	mock.ExpectSet("menu:confirmed:r1", encoded, ttl).SetErr(errors.New("connection refused"))

	got, err := c.GetConfirmed(ctx, "r1")

	require.NoError(t, err)
	assert.Equal(t, v.Version(), got.Version())
}

func TestCache_NotFoundIsNotCached(t *testing.T) {
	c, mock := newCache(t, memory.NewMenuRepository())
	mock.ExpectGet("menu:confirmed:r1").RedisNil()

	_, err := c.GetConfirmed(t.Context(), "r1")

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCache_AddInvalidates(t *testing.T) {
	ctx := t.Context()
	store := memory.NewMenuRepository()
	c, mock := newCache(t, store)
	mock.ExpectDel("menu:confirmed:r1").SetVal(1)

	require.NoError(t, c.Add(ctx, confirmedMenu(t)))

	require.NoError(t, mock.ExpectationsWereMet())
	_, err := store.GetConfirmed(ctx, "r1")
	require.NoError(t, err)
}
