package handlers

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsCurrencyCode(t *testing.T) {
	v := validator.New()
	require.NoError(t, v.RegisterValidation("currency_code", isCurrencyCode))

	for code, want := range map[string]bool{
		"USD":  true,
		"eur":  true,
		"Pln":  true,
		"US":   false,
		"USDT": false,
		"U5D":  false,
		"U$D":  false,
		"":     false,
	} {
		err := v.Var(code, "currency_code")
		assert.Equal(t, want, err == nil, "code %q", code)
	}
}
