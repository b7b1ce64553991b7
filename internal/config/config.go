// Package config loads runtime configuration from the environment.
package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Config holds every tunable the binaries read at startup.
type Config struct {
	// HTTP server
	Port string

	// Logging
	LogLevel slog.Level

	// Storage
	DataDir      string
	DataBackend  string
	SQLiteDBPath string

	// Auth
	JWTSecret  string
	SessionTTL time.Duration

	// AMQP quote pipeline
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	// Quote worker
	QuoteRefreshInterval time.Duration

	// Optional Google Sheets report export
	GoogleSpreadsheetID   string
	GoogleSheetName       string
	GoogleCredentialsFile string
	GoogleCredentialsJSON string
}

// Load reads the environment and fills in defaults. Call Validate before
// using the result.
func Load() *Config {
	return &Config{
		Port: getEnv("PORT", "8080"),

		LogLevel: parseLevel(getEnv("LOG_LEVEL", "info")),

		DataDir:      getEnv("DATA_DIR", "./data"),
		DataBackend:  getEnv("DATA_BACKEND", "json"),
		SQLiteDBPath: getEnv("SQLITE_DB_PATH", "./data/fintrack.db"),

		JWTSecret:  getEnv("JWT_SECRET", ""),
		SessionTTL: getEnvDuration("SESSION_TTL", 24*time.Hour),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "fintrack"),
		AMQPQueue:    getEnv("AMQP_QUEUE", "quote_refresh"),

		QuoteRefreshInterval: getEnvDuration("QUOTE_REFRESH_INTERVAL", 15*time.Minute),

		GoogleSpreadsheetID:   getEnv("GOOGLE_SPREADSHEET_ID", ""),
		GoogleSheetName:       getEnv("GOOGLE_SHEET_NAME", ""),
		GoogleCredentialsFile: getEnv("GOOGLE_CREDENTIALS_FILE", ""),
		GoogleCredentialsJSON: getEnv("GOOGLE_CREDENTIALS_JSON", ""),
	}
}

// Validate checks the configuration and reports every problem at once.
func (c *Config) Validate() error {
	var problems []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		problems = append(problems, fmt.Sprintf("invalid port %q: must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	switch c.DataBackend {
	case "json", "sqlite", "memory":
	default:
		problems = append(problems, fmt.Sprintf("invalid data backend %q: must be one of [json sqlite memory]", c.DataBackend))
	}

	if c.DataBackend == "json" && c.DataDir == "" {
		problems = append(problems, "data directory cannot be empty when using the json backend")
	}

	if c.DataBackend == "sqlite" {
		if c.SQLiteDBPath == "" {
			problems = append(problems, "sqlite database path cannot be empty when using the sqlite backend")
		} else if dir := filepath.Dir(c.SQLiteDBPath); dir != "." && dir != "" {
			if _, err := os.Stat(dir); os.IsNotExist(err) {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					problems = append(problems, fmt.Sprintf("cannot create sqlite directory %q: %v", dir, err))
				}
			}
		}
	}

	if c.JWTSecret == "" {
		problems = append(problems, "JWT_SECRET must be set")
	} else if len(c.JWTSecret) < 16 {
		problems = append(problems, "JWT_SECRET must be at least 16 bytes")
	}

	if c.SessionTTL < time.Minute || c.SessionTTL > 30*24*time.Hour {
		problems = append(problems, fmt.Sprintf("invalid session ttl %v: must be between 1 minute and 30 days", c.SessionTTL))
	}

	if c.AMQPURL != "" {
		if u, err := url.Parse(c.AMQPURL); err != nil {
			problems = append(problems, fmt.Sprintf("invalid AMQP URL %q: %v", c.AMQPURL, err))
		} else if u.Scheme != "amqp" && u.Scheme != "amqps" {
			problems = append(problems, fmt.Sprintf("invalid AMQP URL scheme %q: must be amqp or amqps", u.Scheme))
		}
		if c.AMQPExchange == "" {
			problems = append(problems, "AMQP exchange name cannot be empty when AMQP URL is set")
		}
		if c.AMQPQueue == "" {
			problems = append(problems, "AMQP queue name cannot be empty when AMQP URL is set")
		}
	}

	if c.QuoteRefreshInterval < time.Second || c.QuoteRefreshInterval > 24*time.Hour {
		problems = append(problems, fmt.Sprintf("invalid quote refresh interval %v: must be between 1 second and 24 hours", c.QuoteRefreshInterval))
	}

	if c.SheetsExportEnabled() {
		if c.GoogleSheetName == "" {
			problems = append(problems, "GOOGLE_SHEET_NAME is required when sheets export is configured")
		}
		if c.GoogleCredentialsFile == "" && c.GoogleCredentialsJSON == "" {
			problems = append(problems, "either GOOGLE_CREDENTIALS_FILE or GOOGLE_CREDENTIALS_JSON must be set when sheets export is configured")
		}
		if c.GoogleCredentialsFile != "" {
			if _, err := os.Stat(c.GoogleCredentialsFile); os.IsNotExist(err) {
				problems = append(problems, fmt.Sprintf("Google credentials file does not exist: %s", c.GoogleCredentialsFile))
			}
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(problems, "\n- "))
	}
	return nil
}

// SheetsExportEnabled reports whether the optional report export is
// configured at all.
func (c *Config) SheetsExportEnabled() bool {
	return c.GoogleSpreadsheetID != ""
}

// QuotePipelineEnabled reports whether the AMQP quote refresh pipeline is
// configured.
func (c *Config) QuotePipelineEnabled() bool {
	return c.AMQPURL != ""
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
