package api

import (
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"storefront.GO/service/checkout"
)

// Validator plugs go-playground/validator into echo's c.Validate.
type Validator struct {
	v *validator.Validate
}

// NewValidator shares the checkout rules so request bodies and orders agree.
func NewValidator() *Validator {
	return &Validator{v: checkout.NewValidator()}
}

func (cv *Validator) Validate(i interface{}) error {
	return cv.v.Struct(i)
}

// Bind decodes the request body into dst and validates it.
func Bind(c echo.Context, dst interface{}) error {
	if err := c.Bind(dst); err != nil {
		return err
	}
	return c.Validate(dst)
}
