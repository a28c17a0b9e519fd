package validator

import (
	"github.com/go-playground/validator/v10"
)

// registerCustomRules регистрирует доменные правила валидации.
func registerCustomRules(v *validator.Validate) {
	// currency: трехбуквенный код в верхнем регистре ("PHP", "USD")
	v.RegisterValidation("currency", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		if len(s) != 3 {
			return false
		}
		for _, r := range s {
			if r < 'A' || r > 'Z' {
				return false
			}
		}
		return true
	})
}
