package config

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"liga/database"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	// Database configuration
	DatabaseURL  string
	DatabaseName string

	// HTTP configuration
	HTTPAddr   string
	AdminToken string // Shared bearer token for /admin routes, empty disables the check

	// NATS configuration
	NATSServers string // NATS server addresses (comma-separated), empty disables publishing

	// Logging and tracing
	LogLevel        string
	TracingExporter string // "stdout" prints spans, empty disables tracing

	// Settlement configuration
	SettlementSweepInterval time.Duration // Zero disables the background sweeper
	SettlementSweepLimit    int

	// Payout defaults applied when no active payout configuration is stored
	DefaultPayoutMode      string
	DefaultPointsForResult int
	DefaultPointsForExact  int
	DefaultFeePercent      float64

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

	// If instance is already set (e.g., by tests), return it
	if instance != nil {
		return instance
	}

	once.Do(func() {
		var err error
		instance, err = load()
		if err != nil {
			// In test environment, use a default test config instead of panicking
			if os.Getenv("GO_TEST") == "1" || os.Getenv("ENVIRONMENT") == "test" {
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

// IsProduction reports whether the service runs in production
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// load loads configuration from an optional .env file, an optional YAML file and the environment
func load() (*Config, error) {
	// A missing .env is normal outside local development
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if file := os.Getenv("CONFIG_FILE"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", file, err)
		}
	}

	return fromViper(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("HTTP_ADDR", ":8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("SETTLEMENT_SWEEP_INTERVAL", "0s")
	v.SetDefault("SETTLEMENT_SWEEP_LIMIT", 50)
	v.SetDefault("DEFAULT_PAYOUT_MODE", "pool")
	v.SetDefault("DEFAULT_POINTS_FOR_RESULT", 3)
	v.SetDefault("DEFAULT_POINTS_FOR_EXACT", 5)
	v.SetDefault("DEFAULT_FEE_PERCENT", 10.0)
}

func fromViper(v *viper.Viper) (*Config, error) {
	config := &Config{
		// Database
		DatabaseURL:  v.GetString("DATABASE_URL"),
		DatabaseName: v.GetString("DATABASE_NAME"),

		// HTTP
		HTTPAddr:   v.GetString("HTTP_ADDR"),
		AdminToken: v.GetString("ADMIN_TOKEN"),

		// NATS
		NATSServers: v.GetString("NATS_SERVERS"),

		LogLevel:        strings.ToLower(v.GetString("LOG_LEVEL")),
		TracingExporter: strings.ToLower(v.GetString("TRACING_EXPORTER")),

		// Settlement
		SettlementSweepInterval: v.GetDuration("SETTLEMENT_SWEEP_INTERVAL"),
		SettlementSweepLimit:    v.GetInt("SETTLEMENT_SWEEP_LIMIT"),

		// Payout defaults
		DefaultPayoutMode:      strings.ToLower(v.GetString("DEFAULT_PAYOUT_MODE")),
		DefaultPointsForResult: v.GetInt("DEFAULT_POINTS_FOR_RESULT"),
		DefaultPointsForExact:  v.GetInt("DEFAULT_POINTS_FOR_EXACT"),
		DefaultFeePercent:      v.GetFloat64("DEFAULT_FEE_PERCENT"),

		Environment: v.GetString("ENVIRONMENT"),
	}

	if config.DefaultPayoutMode != "pool" && config.DefaultPayoutMode != "points" {
		return nil, fmt.Errorf("DEFAULT_PAYOUT_MODE must be pool or points, got %q", config.DefaultPayoutMode)
	}
	if config.DefaultFeePercent < 0 {
		return nil, fmt.Errorf("DEFAULT_FEE_PERCENT cannot be negative")
	}
	if config.TracingExporter != "" && config.TracingExporter != "stdout" {
		return nil, fmt.Errorf("TRACING_EXPORTER must be empty or stdout, got %q", config.TracingExporter)
	}
	if config.SettlementSweepInterval < 0 {
		return nil, fmt.Errorf("SETTLEMENT_SWEEP_INTERVAL cannot be negative")
	}

	if config.Environment != "test" {
		// Validate required configuration
		if config.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required")
		}
		// If DatabaseName is provided, ensure it's not empty
		if config.DatabaseName != "" && strings.TrimSpace(config.DatabaseName) == "" {
			return nil, fmt.Errorf("DATABASE_NAME cannot be empty when provided")
		}
	}

	return config, nil
}

// Test helpers - only use in tests

// SetTestConfig overrides the global config instance for testing
// This should only be called from test files
func SetTestConfig(testConfig *Config) {
	mu.Lock()
	defer mu.Unlock()
	instance = testConfig
}

// ResetConfig resets the global config instance and sync.Once for testing
// This should only be called from test files
func ResetConfig() {
	mu.Lock()
	defer mu.Unlock()
	instance = nil
	once = sync.Once{}
}

// NewTestConfig creates a minimal config suitable for unit tests
func NewTestConfig() *Config {
	return &Config{
		Environment:            "test",
		HTTPAddr:               ":0",
		LogLevel:               "debug",
		SettlementSweepLimit:   50,
		DefaultPayoutMode:      "pool",
		DefaultPointsForResult: 3,
		DefaultPointsForExact:  5,
		DefaultFeePercent:      10,
	}
}
