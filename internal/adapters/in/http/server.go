// Package http exposes the ordering use cases over echo. Handlers translate JSON to
// commands and queries, and every failure is rendered as a problem document whose
// status comes from the errs sentinel the error wraps.
package http

import (
	"log/slog"
	"net/http"

	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
)

// Handlers groups the use cases the HTTP API delegates to.
type Handlers struct {
	CreateOrder   commands.CreateOrderCommandHandler
	CancelOrder   commands.CancelOrderCommandHandler
	AdvanceStatus commands.AdvanceOrderStatusCommandHandler
	StartPayment  commands.StartPaymentCommandHandler
	Reconcile     commands.ReconcilePaymentCommandHandler
	PrintOrder    commands.PrintOrderCommandHandler
	PublishMenu   commands.PublishMenuCommandHandler

	GetOrder    queries.GetOrderQueryHandler
	GetPrintJob queries.GetPrintJobQueryHandler
	GetMenu     queries.GetMenuQueryHandler
}

// Server implements the HTTP endpoints on top of the application handlers.
type Server struct {
	h      Handlers
	logger *slog.Logger
}

func NewServer(h Handlers, logger *slog.Logger) *Server {
	return &Server{
		h:      h,
		logger: logger.With("component", "http"),
	}
}

// RegisterHandlers mounts every API route on e and installs the problem error handler.
func (s *Server) RegisterHandlers(e *echo.Echo) {
	e.HTTPErrorHandler = s.ErrorHandler

	e.POST("/order", s.CreateOrder)
	e.GET("/order/:orderId", s.GetOrder)
	e.DELETE("/order/:orderId", s.CancelOrder)
	e.PATCH("/order/:orderId/status", s.AdvanceOrderStatus)
	e.POST("/order/:orderId/payment", s.StartPayment)

	e.POST("/payment/callback/:provider", s.PaymentCallback)

	e.POST("/pos/print", s.PrintOrder)
	e.POST("/pos/reprint", s.ReprintOrder)
	e.GET("/pos/print/:jobId", s.GetPrintStatus)

	e.GET("/menu", s.GetMenu)
	e.POST("/menu", s.PublishMenu)

	e.GET("/health", func(ctx echo.Context) error {
		return ctx.String(http.StatusOK, "Healthy")
	})
}
