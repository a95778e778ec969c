package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "UAH", cfg.LocalCurrency)
	assert.Equal(t, 1000, cfg.DefaultWholesaleThreshold)
	assert.Equal(t, 60*time.Minute, cfg.ReservationTTL)
	assert.Equal(t, int64(10<<20), cfg.MaxUploadBytes)
	assert.Equal(t, "50.4501", cfg.DefaultBranchLat.String())
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("LOCAL_CURRENCY", "pln")
	t.Setenv("RESERVATION_TTL", "15m")
	t.Setenv("PRIMARY_BRANCH_ID", "7")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "PLN", cfg.LocalCurrency)
	assert.Equal(t, 15*time.Minute, cfg.ReservationTTL)
	assert.Equal(t, int64(7), cfg.PrimaryBranchID)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
}

func TestLoadConfig_InvalidTTLFallsBack(t *testing.T) {
	t.Setenv("RESERVATION_TTL", "soon")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 60*time.Minute, cfg.ReservationTTL)
}
