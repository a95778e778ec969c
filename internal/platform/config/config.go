package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool
	JWTSecret     string

	// Rates
	LocalCurrency             string
	PrimaryBranchID           int64
	DefaultWholesaleThreshold int
	ReservationTTL            time.Duration
	MaxUploadBytes            int64

	// New branches created from an upload with no known location.
	DefaultBranchLat   decimal.Decimal
	DefaultBranchLng   decimal.Decimal
	DefaultBranchHours string

	ReservationRateLimit string
	CORSAllowedOrigins   []string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("LOCAL_CURRENCY", "UAH")
	viper.SetDefault("PRIMARY_BRANCH_ID", 1)
	viper.SetDefault("DEFAULT_WHOLESALE_THRESHOLD", 1000)
	viper.SetDefault("RESERVATION_TTL", "60m")
	viper.SetDefault("MAX_UPLOAD_MB", 10)
	viper.SetDefault("DEFAULT_BRANCH_LAT", "50.4501")
	viper.SetDefault("DEFAULT_BRANCH_LNG", "30.5234")
	viper.SetDefault("DEFAULT_BRANCH_HOURS", "щодня: 8:00-20:00")
	viper.SetDefault("RESERVATION_RATE_LIMIT", "20-M")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "*")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "a-very-secret-key-should-be-longer-and-random" // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	ttlStr := viper.GetString("RESERVATION_TTL")
	ttl, err := time.ParseDuration(ttlStr)
	if err != nil || ttl <= 0 {
		ttl = 60 * time.Minute
		log.Printf("Warning: Invalid value for RESERVATION_TTL ('%s'). Defaulting to %s.\n", ttlStr, ttl.String())
	}

	cfg.LocalCurrency = strings.ToUpper(strings.TrimSpace(viper.GetString("LOCAL_CURRENCY")))
	if len(cfg.LocalCurrency) != 3 {
		log.Printf("Warning: Invalid LOCAL_CURRENCY ('%s'). Defaulting to UAH.\n", cfg.LocalCurrency)
		cfg.LocalCurrency = "UAH"
	}

	cfg.PrimaryBranchID = viper.GetInt64("PRIMARY_BRANCH_ID")
	cfg.DefaultWholesaleThreshold = viper.GetInt("DEFAULT_WHOLESALE_THRESHOLD")
	if cfg.DefaultWholesaleThreshold <= 0 {
		cfg.DefaultWholesaleThreshold = 1000
	}
	cfg.ReservationTTL = ttl

	maxUploadMB := viper.GetInt64("MAX_UPLOAD_MB")
	if maxUploadMB <= 0 {
		maxUploadMB = 10
	}
	cfg.MaxUploadBytes = maxUploadMB << 20

	cfg.DefaultBranchLat = parseDecimalOr(viper.GetString("DEFAULT_BRANCH_LAT"), "50.4501", "DEFAULT_BRANCH_LAT")
	cfg.DefaultBranchLng = parseDecimalOr(viper.GetString("DEFAULT_BRANCH_LNG"), "30.5234", "DEFAULT_BRANCH_LNG")
	cfg.DefaultBranchHours = viper.GetString("DEFAULT_BRANCH_HOURS")

	cfg.ReservationRateLimit = viper.GetString("RESERVATION_RATE_LIMIT")
	for _, origin := range strings.Split(viper.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if o := strings.TrimSpace(origin); o != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, o)
		}
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")

	return cfg, nil
}

func parseDecimalOr(value, fallback, key string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil {
		log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, value, fallback)
		return decimal.RequireFromString(fallback)
	}
	return d
}
