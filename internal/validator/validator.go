// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"farmbook/internal/models"
)

// phoneRegex accepts Vietnamese phone numbers with a leading 0 or +84.
var phoneRegex = regexp.MustCompile(`^(0|\+84)[0-9]{9,10}$`)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("rolecode", validateRoleCode)
		_ = v.RegisterValidation("phone", validatePhone)
		_ = v.RegisterValidation("season_status", validateSeasonStatus)
	}
}

func validateRoleCode(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case models.RoleAdmin, models.RoleFarmer, models.RoleBuyer:
		return true
	}
	return false
}

func validatePhone(fl validator.FieldLevel) bool {
	return phoneRegex.MatchString(fl.Field().String())
}

func validateSeasonStatus(fl validator.FieldLevel) bool {
	for _, status := range models.AllSeasonStatuses() {
		if fl.Field().String() == string(status) {
			return true
		}
	}
	return false
}
