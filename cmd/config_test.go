package cmd_test

import (
	"testing"
	"time"

	"ordering/cmd"
	"ordering/internal/core/domain/model/printjob"
	"ordering/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envOf(vars map[string]string) func(string) string {
	return func(key string) string { return vars[key] }
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := cmd.LoadConfig(envOf(nil))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, cmd.StoragePostgres, cfg.Storage)
	assert.Equal(t, 10*time.Minute, cfg.CartTTL)
	assert.Equal(t, 30*time.Minute, cfg.AutoCompleteAfter)
	assert.Equal(t, "0 * * * * *", cfg.AutoCompleteSchedule)
	assert.Equal(t, 5, cfg.RefundCapPercent)
	assert.Equal(t, printjob.PrintKitchen, cfg.PrintType)
	assert.Equal(t, 60*time.Second, cfg.MenuCacheTTL)
	assert.Equal(t, "orders", cfg.NotifyExchange)
	assert.Equal(t, "https://example.com", cfg.PaymentBaseURL)
	assert.Equal(t, "https://dev.apis.naver.com/naverpay-partner", cfg.NaverPayBaseURL)
	assert.False(t, cfg.NaverPayEnabled())
	assert.False(t, cfg.KakaoPayEnabled())
}

func TestLoadConfig_Overrides(t *testing.T) {
	cfg, err := cmd.LoadConfig(envOf(map[string]string{
		"STORAGE":                "memory",
		"CART_TTL_MINUTES":       "15",
		"AUTO_COMPLETE_MINUTES":  "45",
		"REFUND_CAP_PERCENT":     "10",
		"POS_PRINT_TYPE":         "both",
		"NAVERPAY_CLIENT_ID":     "id",
		"NAVERPAY_CLIENT_SECRET": "secret",
		"AUTO_COMPLETE_SCHEDULE": "@every 30s",
	}))
	require.NoError(t, err)

	assert.Equal(t, cmd.StorageMemory, cfg.Storage)
	assert.Equal(t, 15*time.Minute, cfg.CartTTL)
	assert.Equal(t, 45*time.Minute, cfg.AutoCompleteAfter)
	assert.Equal(t, 10, cfg.RefundCapPercent)
	assert.Equal(t, printjob.PrintBoth, cfg.PrintType)
	assert.True(t, cfg.NaverPayEnabled())
}

func TestLoadConfig_Invalid(t *testing.T) {
	_, err := cmd.LoadConfig(envOf(map[string]string{
		"STORAGE":            "dynamodb",
		"CART_TTL_MINUTES":   "ten",
		"REFUND_CAP_PERCENT": "150",
		"POS_PRINT_TYPE":     "label",
	}))
	require.Error(t, err)

	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	for _, key := range []string{"STORAGE", "CART_TTL_MINUTES", "REFUND_CAP_PERCENT", "print type"} {
		assert.Contains(t, err.Error(), key)
	}
}
