package config

import (
	"github.com/go-playground/validator/v10"
)

func NewValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("sort_direction", validateSortDirection)
	return v
}

func validateSortDirection(fl validator.FieldLevel) bool {
	direction := fl.Field().String()
	return direction == "asc" || direction == "desc"
}
