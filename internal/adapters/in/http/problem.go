package http

import (
	"errors"
	"fmt"
	"net/http"

	"ordering/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Problem is the error body returned by every endpoint.
type Problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail"`
}

func newProblem(status int, detail string) Problem {
	return Problem{
		Type:   fmt.Sprintf("https://httpstatuses.com/%d", status),
		Title:  http.StatusText(status),
		Status: status,
		Detail: detail,
	}
}

// StatusOf maps a domain or application error to its HTTP status.
func StatusOf(err error) int {
	switch {
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, errs.ErrVersionIsInvalid):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, errs.ErrObjectIsGone):
		return http.StatusGone
	case errors.Is(err, errs.ErrUnprocessable):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func writeProblem(ctx echo.Context, p Problem) error {
	ctx.Response().Header().Set(echo.HeaderContentType, "application/problem+json")
	return ctx.JSON(p.Status, p)
}

// fail renders err as a problem document. Internal errors are logged and their
// details withheld from the client.
func (s *Server) fail(ctx echo.Context, err error) error {
	status := StatusOf(err)
	if status == http.StatusInternalServerError {
		s.logger.ErrorContext(ctx.Request().Context(), "request failed",
			"method", ctx.Request().Method, "path", ctx.Path(), "error", err)
		return writeProblem(ctx, newProblem(status, "An unexpected error occurred"))
	}
	return writeProblem(ctx, newProblem(status, err.Error()))
}

// ErrorHandler renders echo's own errors (unknown routes, bad methods, panics
// recovered by middleware) as problem documents too.
func (s *Server) ErrorHandler(err error, ctx echo.Context) {
	if ctx.Response().Committed {
		return
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		detail := http.StatusText(he.Code)
		if msg, ok := he.Message.(string); ok {
			detail = msg
		}
		_ = writeProblem(ctx, newProblem(he.Code, detail))
		return
	}
	_ = s.fail(ctx, err)
}
