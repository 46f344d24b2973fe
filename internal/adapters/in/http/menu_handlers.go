package http

import (
	"net/http"

	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
)

// GetMenu handles GET /menu?restaurantId= and returns the confirmed version.
func (s *Server) GetMenu(ctx echo.Context) error {
	restaurantID, err := requiredQuery(ctx, "restaurantId")
	if err != nil {
		return s.fail(ctx, err)
	}

	query, err := queries.NewGetMenuQuery(restaurantID)
	if err != nil {
		return s.fail(ctx, err)
	}

	res, err := s.h.GetMenu.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toMenuResponse(res))
}

// PublishMenu handles POST /menu?restaurantId=&confirm=.
func (s *Server) PublishMenu(ctx echo.Context) error {
	restaurantID, err := requiredQuery(ctx, "restaurantId")
	if err != nil {
		return s.fail(ctx, err)
	}
	confirm, err := optionalBoolQuery(ctx, "confirm")
	if err != nil {
		return s.fail(ctx, err)
	}

	var req PublishMenuRequest
	if err = bindBody(ctx, &req); err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewPublishMenuCommand(restaurantID, req.Items, confirm)
	if err != nil {
		return s.fail(ctx, err)
	}

	res, err := s.h.PublishMenu.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, PublishMenuResponse{
		Version:   res.Version,
		Status:    res.Status.String(),
		CreatedAt: res.CreatedAt,
	})
}
