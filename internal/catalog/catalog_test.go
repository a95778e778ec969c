package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	c := Default()

	usd, ok := c.Lookup("usd")
	require.True(t, ok)
	assert.Equal(t, "USD", usd.Code)
	assert.True(t, c.IsMajor("USD"))
	assert.True(t, c.IsMajor("CHF"))
	assert.False(t, c.IsMajor("CZK"))
	assert.True(t, c.IsPopular("CZK"))
	assert.Equal(t, "USD", c.Codes()[0])
}

func TestAliases(t *testing.T) {
	aliases := Default().Aliases()

	assert.Equal(t, "USD", aliases["$"])
	assert.Equal(t, "EUR", aliases["€"])
	assert.Equal(t, "PLN", aliases["zł"])
	assert.Equal(t, "GBP", aliases["£"])
}

func TestNamesFallback(t *testing.T) {
	name, nameUK := Default().Names("XXX")
	assert.Equal(t, "XXX", name)
	assert.Equal(t, "XXX", nameUK)
	assert.Equal(t, "🏳️", Default().Flag("XXX"))
}

func TestParseRejectsDuplicates(t *testing.T) {
	_, err := Parse([]byte("currencies:\n  - {code: USD}\n  - {code: usd}\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate")

	_, err = Parse([]byte("currencies:\n  - {code: DOLLAR}\n"))
	require.Error(t, err)
}
