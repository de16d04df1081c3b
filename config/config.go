package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	"backendjobs/database"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Database configuration
	DatabaseURL  string
	DatabaseName string

	// HTTP trigger configuration
	HTTPAddr      string
	CronAuthToken string

	// Hasura configuration, used by notification templates that carry a query
	HasuraBaseURL     string
	HasuraAdminSecret string

	// Discord webhook that mirrors operational alerts (optional)
	AlertWebhookID    string
	AlertWebhookToken string

	// In-process scheduler configuration
	SchedulerEnabled bool
	SchedulerHour    int // Hour in UTC when due executions are dispatched (0-23)

	// Accrual and lifecycle constants
	Accrual AccrualConfig

	// Logging
	LogLevel string

	// Environment
	Environment string // "development", "production" or "test"
}

var (
	instance *Config
	once     sync.Once
	mu       sync.Mutex // Protects instance for test setup
)

// Get returns the global configuration instance
func Get() *Config {
	mu.Lock()
	defer mu.Unlock()

	if instance != nil {
		return instance
	}

	once.Do(func() {
		var err error
		instance, err = load()
		if err != nil {
			if os.Getenv("ENVIRONMENT") == "test" {
				instance = NewTestConfig()
			} else {
				panic(fmt.Sprintf("failed to load config: %v", err))
			}
		}
	})
	return instance
}

// GetDatabaseURL constructs the full database URL by combining base URL and database name
func (c *Config) GetDatabaseURL() string {
	return database.ConstructDatabaseURL(c.DatabaseURL, c.DatabaseName)
}

// DiscordAlertsEnabled reports whether alerts should be mirrored to Discord
func (c *Config) DiscordAlertsEnabled() bool {
	return c.AlertWebhookID != "" && c.AlertWebhookToken != ""
}

// load loads configuration from environment variables
func load() (*Config, error) {
	// A missing .env file is normal outside local development
	_ = godotenv.Load()

	config := &Config{
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		DatabaseName: os.Getenv("DATABASE_NAME"),

		HTTPAddr:      getEnvWithDefault("HTTP_ADDR", ":8000"),
		CronAuthToken: os.Getenv("CRON_AUTH_TOKEN"),

		HasuraBaseURL:     os.Getenv("HASURA_BASE_URL"),
		HasuraAdminSecret: os.Getenv("HASURA_ADMIN_SECRET"),

		AlertWebhookID:    os.Getenv("ALERT_WEBHOOK_ID"),
		AlertWebhookToken: os.Getenv("ALERT_WEBHOOK_TOKEN"),

		SchedulerEnabled: os.Getenv("SCHEDULER_ENABLED") == "true",
		SchedulerHour:    2,

		Accrual: DefaultAccrualConfig(),

		LogLevel:    getEnvWithDefault("LOG_LEVEL", "info"),
		Environment: os.Getenv("ENVIRONMENT"),
	}

	if hour := os.Getenv("SCHEDULER_HOUR"); hour != "" {
		parsedHour, err := strconv.Atoi(hour)
		if err != nil || parsedHour < 0 || parsedHour > 23 {
			return nil, fmt.Errorf("SCHEDULER_HOUR must be an hour between 0 and 23, got %q", hour)
		}
		config.SchedulerHour = parsedHour
	}
	if rateType := os.Getenv("FLOATING_COUPON_RATE_TYPE"); rateType != "" {
		config.Accrual.FloatingCouponRateType = rateType
	}

	// Set default environment if not specified
	if config.Environment == "" {
		config.Environment = "development"
	}

	if config.Environment != "test" {
		if config.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required")
		}
		if config.CronAuthToken == "" {
			return nil, fmt.Errorf("CRON_AUTH_TOKEN is required")
		}
		if config.DatabaseName != "" && strings.TrimSpace(config.DatabaseName) == "" {
			return nil, fmt.Errorf("DATABASE_NAME cannot be empty when provided")
		}
	}

	return config, nil
}

// getEnvWithDefault returns the environment variable value or a default if not set
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// Test helpers - only use in tests

// SetTestConfig overrides the global config instance for testing
func SetTestConfig(testConfig *Config) {
	mu.Lock()
	defer mu.Unlock()
	instance = testConfig
}

// ResetConfig resets the global config instance and sync.Once for testing
func ResetConfig() {
	mu.Lock()
	defer mu.Unlock()
	instance = nil
	once = sync.Once{}
}

// NewTestConfig creates a minimal config suitable for unit tests
func NewTestConfig() *Config {
	return &Config{
		HTTPAddr:      ":0",
		CronAuthToken: "test-cron-token",
		SchedulerHour: 2,
		Accrual:       DefaultAccrualConfig(),
		LogLevel:      "debug",
		Environment:   "test",
	}
}
