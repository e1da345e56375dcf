// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// cepRegex matches Brazilian postal codes with or without the dash.
var cepRegex = regexp.MustCompile(`^\d{5}-?\d{3}$`)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("brand", validateBrand)
		_ = v.RegisterValidation("access_type", validateAccessType)
		_ = v.RegisterValidation("change_source", validateChangeSource)
		_ = v.RegisterValidation("cep", validateCEP)
	}
}

func validateBrand(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "Vivo", "Claro":
		return true
	}
	return false
}

func validateAccessType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "admin", "user":
		return true
	}
	return false
}

func validateChangeSource(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "system", "upload", "all", "":
		return true
	}
	return false
}

func validateCEP(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return cepRegex.MatchString(value)
}
