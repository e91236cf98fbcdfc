package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
// All environment variables are read here and nowhere else.
type Config struct {
	Env string // development, staging, production

	// Default data source for CLI commands: yahoo or flatfile
	DataSource string

	// Directory holding watchlists.yaml, screener.yaml, indicators.yaml
	ConfigDir string

	Screener ScreenerConfig
	Data     DataConfig
	Alerts   AlertConfig
	Cache    CacheConfig
	Database DatabaseConfig

	// API server
	Port string

	// Logging
	LogLevel  string
	LogFormat string

	// Market session timezone (US equities trade in Eastern Time)
	Timezone *time.Location
}

// ScreenerConfig holds default screener thresholds.
// Presets in config/screener.yaml override these per preset name.
type ScreenerConfig struct {
	MinGapPct    float64
	MinPreVolume int64
	MinPrice     float64
	MaxPrice     float64
	MinAvgVolume int64
	MaxResults   int
}

// DataConfig holds provider configuration.
type DataConfig struct {
	YahooTTL     time.Duration // quote/history cache TTL
	FinvizTTL    time.Duration // screener result cache TTL
	FlatFileRoot string        // root directory of day-aggregate CSV.gz files
}

// AlertConfig holds notification configuration.
type AlertConfig struct {
	SlackWebhookURL string
	ScoreThreshold  float64
}

// CacheConfig holds Redis cache configuration.
type CacheConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	Enabled  bool
}

// DatabaseConfig holds PostgreSQL configuration for the scan history store.
// The store is optional: commands run without it when URL is empty.
type DatabaseConfig struct {
	URL             string
	MaxConns        int
	MinConns        int
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
}

// Load reads configuration from environment variables.
// This is the only function that calls os.Getenv().
func Load() (*Config, error) {
	loadEnvFile()

	tz, err := time.LoadLocation(getEnv("MARKET_TIMEZONE", "America/New_York"))
	if err != nil {
		return nil, fmt.Errorf("load market timezone: %w", err)
	}

	cfg := &Config{
		Env:        getEnv("ENV", "development"),
		DataSource: getEnv("DATA_SOURCE", "yahoo"),
		ConfigDir:  getEnv("CONFIG_DIR", "config"),

		Screener: ScreenerConfig{
			MinGapPct:    getEnvAsFloat("SCREENER_MIN_GAP_PCT", 2.0),
			MinPreVolume: getEnvAsInt64("SCREENER_MIN_PREMARKET_VOLUME", 200_000),
			MinPrice:     getEnvAsFloat("SCREENER_MIN_PRICE", 2.0),
			MaxPrice:     getEnvAsFloat("SCREENER_MAX_PRICE", 200.0),
			MinAvgVolume: getEnvAsInt64("SCREENER_MIN_AVG_VOLUME", 500_000),
			MaxResults:   getEnvAsInt("SCREENER_MAX_RESULTS", 20),
		},

		Data: DataConfig{
			YahooTTL:     getEnvAsDuration("YAHOO_CACHE_TTL", "5m"),
			FinvizTTL:    getEnvAsDuration("FINVIZ_CACHE_TTL", "10m"),
			FlatFileRoot: getEnv("FLATFILE_ROOT", ""),
		},

		Alerts: AlertConfig{
			SlackWebhookURL: getEnv("SLACK_WEBHOOK_URL", ""),
			ScoreThreshold:  getEnvAsFloat("ALERT_SCORE_THRESHOLD", 75),
		},

		Cache: CacheConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			Enabled:  getEnvAsBool("REDIS_ENABLED", false),
		},

		Database: DatabaseConfig{
			URL:             getEnv("DATABASE_URL", ""),
			MaxConns:        getEnvAsInt("DB_MAX_CONNS", 10),
			MinConns:        getEnvAsInt("DB_MIN_CONNS", 2),
			MaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", "1h"),
			MaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", "30m"),
		},

		Port: getEnv("PORT", "8097"),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "console"),

		Timezone: tz,
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Now returns the current time in the market timezone.
func (c *Config) Now() time.Time {
	return time.Now().In(c.Timezone)
}

// validate checks if required configuration values are set
func (c *Config) validate() error {
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}

	if c.DataSource != "yahoo" && c.DataSource != "flatfile" {
		return fmt.Errorf("DATA_SOURCE must be one of: yahoo, flatfile")
	}

	if c.Screener.MinPrice > c.Screener.MaxPrice {
		return fmt.Errorf("SCREENER_MIN_PRICE must not exceed SCREENER_MAX_PRICE")
	}

	return nil
}

// loadEnvFile tries to load .env from multiple locations
func loadEnvFile() {
	paths := []string{
		".env",
	}

	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, ".env"),
			filepath.Join(exeDir, "..", ".env"),
		)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseInt(valueStr, 10, 64)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		valueStr = defaultValue
	}

	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		duration, _ = time.ParseDuration(defaultValue)
	}

	return duration
}
