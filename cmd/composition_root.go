package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	httpin "ordering/internal/adapters/in/http"
	"ordering/internal/adapters/out/memory"
	"ordering/internal/adapters/out/notify"
	"ordering/internal/adapters/out/paymentgw"
	"ordering/internal/adapters/out/postgres"
	"ordering/internal/adapters/out/postgres/menurepo"
	"ordering/internal/adapters/out/postgres/orderrepo"
	"ordering/internal/adapters/out/postgres/printjobrepo"
	"ordering/internal/adapters/out/printer"
	"ordering/internal/adapters/out/redis/menucache"
	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/application/usecases/queries"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/ports"
	"ordering/internal/jobs"
	"ordering/internal/pkg/background"

	"github.com/redis/go-redis/v9"
)

// CompositionRoot owns the process-wide adapters and builds every use case handler
// from them. Close releases the connections it opened.
type CompositionRoot struct {
	cfg    Config
	logger *slog.Logger
	clock  kernel.Clock

	orders    ports.OrderRepository
	menus     ports.MenuRepository
	jobs      ports.PrintJobRepository
	providers *paymentgw.Registry
	notifier  ports.OrderNotifier
	printer   ports.Printer
	runner    *background.Runner

	closers []io.Closer
}

func NewCompositionRoot(ctx context.Context, cfg Config, logger *slog.Logger) (*CompositionRoot, error) {
	c := &CompositionRoot{
		cfg:    cfg,
		logger: logger,
		clock:  kernel.SystemClock{},
		runner: background.NewRunner(logger),
	}

	if err := c.initStorage(); err != nil {
		c.Close()
		return nil, err
	}
	c.initMenuCache(ctx)
	if err := c.initNotifier(); err != nil {
		c.Close()
		return nil, err
	}
	c.initProviders()
	c.initPrinter()

	return c, nil
}

func (c *CompositionRoot) initStorage() error {
	if c.cfg.Storage == StorageMemory {
		c.logger.Warn("using in-memory storage, data is lost on restart")
		c.orders = memory.NewOrderRepository()
		c.menus = memory.NewMenuRepository()
		c.jobs = memory.NewPrintJobRepository()
		return nil
	}

	db, err := postgres.Open(postgres.Config{
		Host:     c.cfg.DBHost,
		Port:     c.cfg.DBPort,
		User:     c.cfg.DBUser,
		Password: c.cfg.DBPassword,
		Name:     c.cfg.DBName,
		SSLMode:  c.cfg.DBSslMode,
	})
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("get sql.DB: %w", err)
	}
	c.closers = append(c.closers, sqlDB)

	if err = postgres.Migrate(db); err != nil {
		return err
	}

	c.orders = orderrepo.NewGormOrderRepository(db)
	c.menus = menurepo.NewGormMenuRepository(db)
	c.jobs = printjobrepo.NewGormPrintJobRepository(db)
	return nil
}

func (c *CompositionRoot) initMenuCache(ctx context.Context) {
	if c.cfg.RedisAddr == "" {
		return
	}

	client := redis.NewClient(&redis.Options{Addr: c.cfg.RedisAddr})
	c.closers = append(c.closers, client)
	if err := client.Ping(ctx).Err(); err != nil {
		c.logger.Warn("redis is not reachable, menu reads fall back to storage until it is", "addr", c.cfg.RedisAddr, "error", err)
	}
	c.menus = menucache.New(c.menus, client, c.cfg.MenuCacheTTL, c.logger)
}

func (c *CompositionRoot) initNotifier() error {
	if c.cfg.RabbitMQURL == "" {
		c.notifier = notify.NewLogNotifier(c.logger)
		return nil
	}

	conn, ch, err := notify.Dial(c.cfg.RabbitMQURL, c.cfg.NotifyExchange)
	if err != nil {
		return err
	}
	c.closers = append(c.closers, conn)
	c.notifier = notify.NewRabbitNotifier(ch, c.cfg.NotifyExchange, c.clock, c.logger)
	return nil
}

func (c *CompositionRoot) initProviders() {
	client := &http.Client{Timeout: 10 * time.Second}

	var providers []ports.PaymentProvider
	if c.cfg.NaverPayEnabled() {
		providers = append(providers, paymentgw.NewNaverPay(paymentgw.NaverPayConfig{
			ClientID:     c.cfg.NaverPayClientID,
			ClientSecret: c.cfg.NaverPayClientSecret,
			BaseURL:      c.cfg.NaverPayBaseURL,
		}, client, c.clock))
	}
	if c.cfg.KakaoPayEnabled() {
		providers = append(providers, paymentgw.NewKakaoPay(paymentgw.KakaoPayConfig{
			CID:       c.cfg.KakaoPayCID,
			SecretKey: c.cfg.KakaoPaySecretKey,
			BaseURL:   c.cfg.KakaoPayBaseURL,
		}, client, c.clock))
	}

	c.providers = paymentgw.NewRegistry(providers...)
	c.logger.Info("payment providers configured", "providers", c.providers.Names())
}

func (c *CompositionRoot) initPrinter() {
	if c.cfg.PrinterEndpoint == "" {
		c.printer = printer.NewLogPrinter(c.logger)
		return
	}
	c.printer = printer.NewHTTPPrinter(c.cfg.PrinterEndpoint, nil)
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orders, c.menus, c.clock, c.cfg.CartTTL, c.cfg.PaymentBaseURL)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(c.orders, c.providers, c.clock, c.cfg.RefundCapPercent, c.logger)
}

func (c *CompositionRoot) CreateAdvanceOrderStatusCommandHandler() commands.AdvanceOrderStatusCommandHandler {
	return commands.NewAdvanceOrderStatusCommandHandler(c.orders, c.clock)
}

func (c *CompositionRoot) CreateStartPaymentCommandHandler() commands.StartPaymentCommandHandler {
	return commands.NewStartPaymentCommandHandler(c.orders, c.providers, c.cfg.PaymentBaseURL)
}

func (c *CompositionRoot) CreateReconcilePaymentCommandHandler() commands.ReconcilePaymentCommandHandler {
	return commands.NewReconcilePaymentCommandHandler(c.orders, c.providers, c.clock, c.logger)
}

func (c *CompositionRoot) CreateAutoCompleteOrdersCommandHandler() commands.AutoCompleteOrdersCommandHandler {
	return commands.NewAutoCompleteOrdersCommandHandler(c.orders, c.notifier, c.clock, c.cfg.AutoCompleteAfter, c.logger)
}

func (c *CompositionRoot) CreateDispatchPrintJobCommandHandler() *commands.DispatchPrintJobCommandHandler {
	return commands.NewDispatchPrintJobCommandHandler(c.jobs, printer.TicketRenderer{}, c.printer, c.clock, c.cfg.PrintType, c.logger)
}

func (c *CompositionRoot) CreatePrintOrderCommandHandler() commands.PrintOrderCommandHandler {
	return commands.NewPrintOrderCommandHandler(c.orders, c.jobs, c.CreateDispatchPrintJobCommandHandler(), c.runner, c.clock, c.logger)
}

func (c *CompositionRoot) CreatePublishMenuCommandHandler() commands.PublishMenuCommandHandler {
	return commands.NewPublishMenuCommandHandler(c.menus, c.clock)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.orders)
}

func (c *CompositionRoot) CreateGetPrintJobQueryHandler() queries.GetPrintJobQueryHandler {
	return queries.NewGetPrintJobQueryHandler(c.jobs)
}

func (c *CompositionRoot) CreateGetMenuQueryHandler() queries.GetMenuQueryHandler {
	return queries.NewGetMenuQueryHandler(c.menus)
}

// CreateHTTPServer wires every HTTP endpoint to its handler.
func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(httpin.Handlers{
		CreateOrder:   c.CreateCreateOrderCommandHandler(),
		CancelOrder:   c.CreateCancelOrderCommandHandler(),
		AdvanceStatus: c.CreateAdvanceOrderStatusCommandHandler(),
		StartPayment:  c.CreateStartPaymentCommandHandler(),
		Reconcile:     c.CreateReconcilePaymentCommandHandler(),
		PrintOrder:    c.CreatePrintOrderCommandHandler(),
		PublishMenu:   c.CreatePublishMenuCommandHandler(),
		GetOrder:      c.CreateGetOrderQueryHandler(),
		GetPrintJob:   c.CreateGetPrintJobQueryHandler(),
		GetMenu:       c.CreateGetMenuQueryHandler(),
	}, c.logger)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	handler := c.CreateAutoCompleteOrdersCommandHandler()
	return jobs.NewJobManager(&handler, c.cfg.AutoCompleteSchedule, c.logger)
}

// Shutdown drains in-flight print dispatches, then closes connections.
func (c *CompositionRoot) Shutdown() {
	c.runner.Shutdown(c.cfg.BackgroundDrainTimeout)
	c.Close()
}

func (c *CompositionRoot) Close() {
	var err error
	for i := len(c.closers) - 1; i >= 0; i-- {
		err = errors.Join(err, c.closers[i].Close())
	}
	c.closers = nil
	if err != nil {
		c.logger.Error("closing connections failed", "error", err)
	}
}
