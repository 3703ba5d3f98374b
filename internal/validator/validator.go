// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("money_amount", validateMoneyAmount)
	}
}

// validateMoneyAmount accepts decimal amount strings with at most two
// fractional digits and either a dot or a comma separator, e.g.
// "150.50", "150,5", "3". Signs are not allowed; amounts are unsigned
// at the wire level and range rules (positive, non-negative) belong to
// the services.
func validateMoneyAmount(fl validator.FieldLevel) bool {
	s := strings.TrimSpace(fl.Field().String())
	if s == "" {
		return false
	}
	s = strings.ReplaceAll(s, ",", ".")
	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return false
	}
	if len(parts) == 2 && len(parts[1]) > 2 {
		return false
	}
	if parts[0] == "" && (len(parts) == 1 || parts[1] == "") {
		return false
	}
	for _, part := range parts {
		for _, r := range part {
			// ASCII digits only, matching the money parser.
			if r < '0' || r > '9' {
				return false
			}
		}
	}
	return true
}
