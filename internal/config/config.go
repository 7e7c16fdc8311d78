package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	CORS      CORSConfig
	Log       LogConfig
	Tracker   TrackerConfig
	Analytics AnalyticsConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string
	Host string
	Addr string // Combined host:port for convenience
}

// DatabaseConfig holds database-specific configuration
type DatabaseConfig struct {
	Path string
}

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string
	Pretty bool // Human-readable console output instead of JSON
}

// TrackerConfig holds the inputs and schedule of tracker runs
type TrackerConfig struct {
	HoldingsPath string
	Schedule     string // Cron expression; empty disables scheduled runs
}

// AnalyticsConfig holds the options of a single analytics run.
type AnalyticsConfig struct {
	// UseHistoricalTracking enables snapshot persistence and day-over-day diffs.
	UseHistoricalTracking bool
	// BenchmarkSymbol is the market proxy beta is measured against.
	BenchmarkSymbol string
	// LookbackWindowDays is the default trend window.
	LookbackWindowDays int
}

// DefaultAnalyticsConfig returns the analytics options used when nothing is configured.
func DefaultAnalyticsConfig() AnalyticsConfig {
	return AnalyticsConfig{
		UseHistoricalTracking: true,
		BenchmarkSymbol:       "SPY",
		LookbackWindowDays:    90,
	}
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	defaults := DefaultAnalyticsConfig()

	historical, err := getEnvBool("USE_HISTORICAL_TRACKING", defaults.UseHistoricalTracking)
	if err != nil {
		return nil, err
	}
	lookback, err := getEnvInt("LOOKBACK_WINDOW_DAYS", defaults.LookbackWindowDays)
	if err != nil {
		return nil, err
	}
	if lookback <= 0 {
		return nil, fmt.Errorf("LOOKBACK_WINDOW_DAYS must be positive, got %d", lookback)
	}
	pretty, err := getEnvBool("LOG_PRETTY", false)
	if err != nil {
		return nil, err
	}

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "5001"),
			Host: getEnv("SERVER_HOST", "localhost"),
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "./data/portfolio_tracker.db"),
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS", []string{
				"http://localhost:3000",
				"http://localhost",
			}),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Pretty: pretty,
		},
		Tracker: TrackerConfig{
			HoldingsPath: getEnv("HOLDINGS_PATH", "./data/holdings.csv"),
			Schedule:     os.Getenv("TRACKER_SCHEDULE"),
		},
		Analytics: AnalyticsConfig{
			UseHistoricalTracking: historical,
			BenchmarkSymbol:       strings.ToUpper(getEnv("BENCHMARK_SYMBOL", defaults.BenchmarkSymbol)),
			LookbackWindowDays:    lookback,
		},
	}

	// Combine host and port
	config.Server.Addr = fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port)

	return config, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return b, nil
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return n, nil
}

// getEnvList splits a comma-separated variable, dropping empty entries.
func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
