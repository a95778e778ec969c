package handlers

import (
	"log/slog"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// registerValidators adds the binding tags used by the request DTOs.
func registerValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		slog.Warn("Gin validator engine is not go-playground/validator; custom tags disabled")
		return
	}
	if err := v.RegisterValidation("currency_code", isCurrencyCode); err != nil {
		slog.Error("Failed to register currency_code validator", slog.String("error", err.Error()))
	}
}

// isCurrencyCode accepts three ASCII letters in either case.
func isCurrencyCode(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if len(s) != 3 {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i] | 0x20
		if c < 'a' || c > 'z' {
			return false
		}
	}
	return true
}
