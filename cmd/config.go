package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"ordering/internal/adapters/out/paymentgw"
	"ordering/internal/core/domain/model/printjob"
	"ordering/internal/jobs"
	"ordering/internal/pkg/errs"
)

const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

type Config struct {
	HTTPPort string
	Storage  string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	RedisAddr    string
	MenuCacheTTL time.Duration

	RabbitMQURL    string
	NotifyExchange string

	CartTTL                time.Duration
	AutoCompleteAfter      time.Duration
	AutoCompleteSchedule   string
	RefundCapPercent       int
	PrintType              printjob.PrintType
	PrinterEndpoint        string
	PaymentBaseURL         string
	NaverPayClientID       string
	NaverPayClientSecret   string
	NaverPayBaseURL        string
	KakaoPayCID            string
	KakaoPaySecretKey      string
	KakaoPayBaseURL        string
	ShutdownTimeout        time.Duration
	BackgroundDrainTimeout time.Duration
}

// LoadConfig reads the service configuration through getenv (os.Getenv in
// production), applying defaults for unset variables. Malformed numbers and unknown
// enum values are reported together.
func LoadConfig(getenv func(string) string) (Config, error) {
	env := func(key, def string) string {
		if v := getenv(key); v != "" {
			return v
		}
		return def
	}

	cfg := Config{
		HTTPPort:             env("HTTP_PORT", "8080"),
		Storage:              env("STORAGE", StoragePostgres),
		DBHost:               env("DB_HOST", "localhost"),
		DBPort:               env("DB_PORT", "5432"),
		DBUser:               env("DB_USER", "postgres"),
		DBPassword:           getenv("DB_PASSWORD"),
		DBName:               env("DB_NAME", "ordering"),
		DBSslMode:            env("DB_SSLMODE", "disable"),
		RedisAddr:            getenv("REDIS_ADDR"),
		RabbitMQURL:          getenv("RABBITMQ_URL"),
		NotifyExchange:       env("NOTIFY_EXCHANGE", "orders"),
		AutoCompleteSchedule: env("AUTO_COMPLETE_SCHEDULE", jobs.DefaultAutoCompletionSchedule),
		PrinterEndpoint:      getenv("POS_PRINTER_ENDPOINT"),
		PaymentBaseURL:       env("PAYMENT_BASE_URL", "https://example.com"),
		NaverPayClientID:     getenv("NAVERPAY_CLIENT_ID"),
		NaverPayClientSecret: getenv("NAVERPAY_CLIENT_SECRET"),
		NaverPayBaseURL:      env("NAVERPAY_BASE_URL", paymentgw.DefaultNaverPayBaseURL),
		KakaoPayCID:          getenv("KAKAOPAY_CID"),
		KakaoPaySecretKey:    getenv("KAKAOPAY_SECRET_KEY"),
		KakaoPayBaseURL:      env("KAKAOPAY_BASE_URL", paymentgw.DefaultKakaoPayBaseURL),

		ShutdownTimeout:        10 * time.Second,
		BackgroundDrainTimeout: 60 * time.Second,
	}

	var problems []error
	number := func(key string, def, minValue, maxValue int) int {
		raw := env(key, strconv.Itoa(def))
		n, err := strconv.Atoi(raw)
		if err != nil {
			problems = append(problems, errs.NewValueIsInvalidErrorWithCause(key, err))
			return def
		}
		if n < minValue || n > maxValue {
			problems = append(problems, errs.NewValueIsOutOfRangeError(key, n, minValue, maxValue))
			return def
		}
		return n
	}

	cfg.MenuCacheTTL = time.Duration(number("MENU_CACHE_TTL_SECONDS", 60, 1, 86400)) * time.Second
	cfg.CartTTL = time.Duration(number("CART_TTL_MINUTES", 10, 1, 1440)) * time.Minute
	cfg.AutoCompleteAfter = time.Duration(number("AUTO_COMPLETE_MINUTES", 30, 1, 1440)) * time.Minute
	cfg.RefundCapPercent = number("REFUND_CAP_PERCENT", 5, 0, 100)

	if _, err := strconv.Atoi(cfg.HTTPPort); err != nil {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause("HTTP_PORT", err))
	}

	if cfg.Storage != StoragePostgres && cfg.Storage != StorageMemory {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause("STORAGE",
			fmt.Errorf("%q is not %s or %s", cfg.Storage, StoragePostgres, StorageMemory)))
	}

	printType, err := printjob.ParsePrintType(env("POS_PRINT_TYPE", string(printjob.PrintKitchen)))
	if err != nil {
		problems = append(problems, err)
	}
	cfg.PrintType = printType

	if err = jobs.ValidateSchedule(cfg.AutoCompleteSchedule); err != nil {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause("AUTO_COMPLETE_SCHEDULE", err))
	}

	if err = errors.Join(problems...); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// NaverPayEnabled reports whether NaverPay credentials are configured.
func (c Config) NaverPayEnabled() bool {
	return c.NaverPayClientID != "" && c.NaverPayClientSecret != ""
}

func (c Config) KakaoPayEnabled() bool {
	return c.KakaoPayCID != "" && c.KakaoPaySecretKey != ""
}
