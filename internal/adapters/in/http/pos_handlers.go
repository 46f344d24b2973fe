package http

import (
	"net/http"

	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/application/usecases/queries"
	"ordering/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

type printCommandFactory func(orderID kernel.UUID, restaurantID string) (commands.PrintOrderCommand, error)

// PrintOrder handles POST /pos/print?restaurantId=.
func (s *Server) PrintOrder(ctx echo.Context) error {
	return s.print(ctx, commands.NewPrintOrderCommand)
}

// ReprintOrder handles POST /pos/reprint?restaurantId=.
func (s *Server) ReprintOrder(ctx echo.Context) error {
	return s.print(ctx, commands.NewReprintOrderCommand)
}

func (s *Server) print(ctx echo.Context, newCommand printCommandFactory) error {
	restaurantID, err := requiredQuery(ctx, "restaurantId")
	if err != nil {
		return s.fail(ctx, err)
	}

	var req PrintRequest
	if err = bindBody(ctx, &req); err != nil {
		return s.fail(ctx, err)
	}
	orderID, err := parseUUID("orderId", req.OrderID)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := newCommand(orderID, restaurantID)
	if err != nil {
		return s.fail(ctx, err)
	}

	res, err := s.h.PrintOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, PrintJobCreatedResponse{
		JobID:     res.JobID.String(),
		Status:    res.Status.String(),
		CreatedAt: res.CreatedAt,
	})
}

// GetPrintStatus handles GET /pos/print/:jobId?orderId=.
func (s *Server) GetPrintStatus(ctx echo.Context) error {
	jobID, err := pathUUID(ctx, "jobId")
	if err != nil {
		return s.fail(ctx, err)
	}
	rawOrderID, err := requiredQuery(ctx, "orderId")
	if err != nil {
		return s.fail(ctx, err)
	}
	orderID, err := parseUUID("orderId", rawOrderID)
	if err != nil {
		return s.fail(ctx, err)
	}

	query, err := queries.NewGetPrintJobQuery(jobID, orderID)
	if err != nil {
		return s.fail(ctx, err)
	}

	res, err := s.h.GetPrintJob.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, PrintJobResponse{
		JobID:        res.JobID.String(),
		Status:       res.Status.String(),
		Attempts:     res.Attempts,
		CreatedAt:    res.CreatedAt,
		CompletedAt:  res.CompletedAt,
		ErrorMessage: res.ErrorMessage,
	})
}
