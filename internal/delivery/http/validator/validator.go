// Package validator adapts go-playground/validator to Echo's Validator hook.
package validator

import (
	"net/http"

	validatorv10 "github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type echoValidator struct {
	validate *validatorv10.Validate
}

// New creates a request validator for struct tags like `validate:"required"`.
func New() echo.Validator {
	return &echoValidator{validate: validatorv10.New()}
}

// Validate implements echo.Validator.
func (v *echoValidator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return nil
}
