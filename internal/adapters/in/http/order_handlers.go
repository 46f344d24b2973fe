package http

import (
	"net/http"

	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/application/usecases/queries"
	"ordering/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
)

// CreateOrder handles POST /order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req CreateOrderRequest
	if err := bindBody(ctx, &req); err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewCreateOrderCommand(req.RestaurantID, req.requestedItems(), req.customer())
	if err != nil {
		return s.fail(ctx, err)
	}

	res, err := s.h.CreateOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreateOrderResponse{
		OrderID:     res.OrderID.String(),
		Status:      res.Status.String(),
		TotalAmount: money(res.TotalAmount),
		PaymentURL:  res.PaymentURL,
		CreatedAt:   res.CreatedAt,
	})
}

// GetOrder handles GET /order/:orderId?restaurantId=.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return s.fail(ctx, err)
	}
	restaurantID, err := requiredQuery(ctx, "restaurantId")
	if err != nil {
		return s.fail(ctx, err)
	}

	query, err := queries.NewGetOrderQuery(orderID, restaurantID)
	if err != nil {
		return s.fail(ctx, err)
	}

	res, err := s.h.GetOrder.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toOrderResponse(res))
}

// CancelOrder handles DELETE /order/:orderId?restaurantId=.
func (s *Server) CancelOrder(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return s.fail(ctx, err)
	}
	restaurantID, err := requiredQuery(ctx, "restaurantId")
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewCancelOrderCommand(orderID, restaurantID)
	if err != nil {
		return s.fail(ctx, err)
	}

	res, err := s.h.CancelOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, CancelOrderResponse{
		OrderID:      res.OrderID.String(),
		Status:       res.Status.String(),
		RefundAmount: money(res.RefundAmount),
		RefundMethod: res.RefundMethod,
	})
}

// AdvanceOrderStatus handles PATCH /order/:orderId/status?restaurantId=.
func (s *Server) AdvanceOrderStatus(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return s.fail(ctx, err)
	}
	restaurantID, err := requiredQuery(ctx, "restaurantId")
	if err != nil {
		return s.fail(ctx, err)
	}

	var req AdvanceStatusRequest
	if err = bindBody(ctx, &req); err != nil {
		return s.fail(ctx, err)
	}
	target, err := order.ParseStatus(req.Status)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewAdvanceOrderStatusCommand(orderID, restaurantID, target)
	if err != nil {
		return s.fail(ctx, err)
	}

	res, err := s.h.AdvanceStatus.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, AdvanceStatusResponse{
		OrderID:   res.OrderID.String(),
		Status:    res.Status.String(),
		UpdatedAt: res.UpdatedAt,
	})
}

// StartPayment handles POST /order/:orderId/payment?restaurantId=&provider=.
func (s *Server) StartPayment(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return s.fail(ctx, err)
	}
	restaurantID, err := requiredQuery(ctx, "restaurantId")
	if err != nil {
		return s.fail(ctx, err)
	}
	provider, err := requiredQuery(ctx, "provider")
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewStartPaymentCommand(orderID, restaurantID, provider)
	if err != nil {
		return s.fail(ctx, err)
	}

	res, err := s.h.StartPayment.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, StartPaymentResponse{
		OrderID:       res.OrderID.String(),
		Provider:      res.Provider,
		PaymentURL:    res.PaymentURL,
		TransactionID: res.TransactionID,
		ExpiresAt:     res.ExpiresAt,
	})
}
