package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/menuglobal/menu-admin/internal/core/domain"
)

// bindAndValidate decodes the request body into req and runs the registered
// validator. Decode failures are 400 "invalid payload"; rule violations are
// validation errors carrying the field messages.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if c.Echo().Validator == nil {
		return nil
	}
	if err := c.Validate(req); err != nil {
		return domain.NewValidationError(err.Error())
	}
	return nil
}
