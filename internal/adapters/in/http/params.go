package http

import (
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

// pathUUID binds a required path parameter and parses it as a UUID.
func pathUUID(ctx echo.Context, name string) (kernel.UUID, error) {
	var raw string
	err := runtime.BindStyledParameterWithOptions("simple", name, ctx.Param(name), &raw,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return parseUUID(name, raw)
}

func parseUUID(name, raw string) (kernel.UUID, error) {
	if raw == "" {
		return kernel.UUID{}, errs.NewValueIsRequiredError(name)
	}
	id, err := kernel.UUIDFromString(raw)
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return id, nil
}

// requiredQuery binds a required form-style query parameter.
func requiredQuery(ctx echo.Context, name string) (string, error) {
	var v string
	if err := runtime.BindQueryParameter("form", true, true, name, ctx.QueryParams(), &v); err != nil {
		return "", errs.NewValueIsRequiredErrorWithCause(name, err)
	}
	if v == "" {
		return "", errs.NewValueIsRequiredError(name)
	}
	return v, nil
}

func optionalBoolQuery(ctx echo.Context, name string) (bool, error) {
	var v *bool
	if err := runtime.BindQueryParameter("form", true, false, name, ctx.QueryParams(), &v); err != nil {
		return false, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return v != nil && *v, nil
}

func bindBody(ctx echo.Context, dst any) error {
	if err := (&echo.DefaultBinder{}).BindBody(ctx, dst); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("request body", err)
	}
	return nil
}
