package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL  string
	Port         string
	IsProduction bool

	// TallyURL is the base address of the Tally Prime HTTP-XML gateway.
	TallyURL string
	// TallyHealthTimeout bounds the connectivity probe; imports use the
	// client's normal timeout.
	TallyHealthTimeout time.Duration
	TallyTimeout       time.Duration

	// HomeStateCode is the 2-digit GST jurisdiction prefix of the books'
	// owner, used when a document carries no usable own-side GSTIN.
	HomeStateCode string
	// NarrationTag, when set, is appended to every generated narration.
	NarrationTag string
	// BulkBatchSize bounds how many vouchers travel in one import request.
	BulkBatchSize int

	// RateLimit is the limiter format string, e.g. "60-M".
	RateLimit string
}

// LoadConfig loads configuration from environment variables and .env file if
// present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("TALLY_URL", "http://localhost:9000")
	viper.SetDefault("TALLY_HEALTH_TIMEOUT", "2s")
	viper.SetDefault("TALLY_TIMEOUT", "30s")
	viper.SetDefault("HOME_STATE_CODE", "27")
	viper.SetDefault("NARRATION_TAG", "")
	viper.SetDefault("BULK_BATCH_SIZE", 50)
	viper.SetDefault("RATE_LIMIT", "60-M")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set. Import logging disabled.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.TallyURL = viper.GetString("TALLY_URL")

	healthTimeoutStr := viper.GetString("TALLY_HEALTH_TIMEOUT")
	healthTimeout, err := time.ParseDuration(healthTimeoutStr)
	if err != nil {
		healthTimeout = 2 * time.Second
		log.Printf("Warning: Invalid value for TALLY_HEALTH_TIMEOUT ('%s'). Defaulting to %s.\n", healthTimeoutStr, healthTimeout)
	}
	cfg.TallyHealthTimeout = healthTimeout

	timeoutStr := viper.GetString("TALLY_TIMEOUT")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		timeout = 30 * time.Second
		log.Printf("Warning: Invalid value for TALLY_TIMEOUT ('%s'). Defaulting to %s.\n", timeoutStr, timeout)
	}
	cfg.TallyTimeout = timeout

	cfg.HomeStateCode = viper.GetString("HOME_STATE_CODE")
	cfg.NarrationTag = viper.GetString("NARRATION_TAG")

	cfg.BulkBatchSize = viper.GetInt("BULK_BATCH_SIZE")
	if cfg.BulkBatchSize <= 0 {
		cfg.BulkBatchSize = 50
		log.Println("Warning: Invalid value for BULK_BATCH_SIZE. Defaulting to 50.")
	}

	cfg.RateLimit = viper.GetString("RATE_LIMIT")

	return cfg, nil
}
