package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"booklib/internal/asset"
)

// Storage backends
const (
	BackendFile       = "file"
	BackendClickHouse = "clickhouse"
	BackendMemory     = "memory"
)

// Config holds the application configuration
type Config struct {
	// Storage configuration
	StorageBackend string // file, clickhouse or memory
	LibraryFile    string // JSON file used by the file backend

	// ClickHouse configuration
	ClickHouseHost     string
	ClickHousePort     int
	ClickHouseDatabase string
	ClickHouseUser     string
	ClickHousePassword string
	ClickHouseUseTLS   bool

	// HTTP server configuration
	Port string

	// Telegram bot configuration (bot is disabled when TelegramToken is empty)
	TelegramToken  string
	AllowedUserIDs []int64
	WebhookMode    bool   // If true, use webhook mode; if false, use polling mode
	WebhookURL     string // URL for webhook (required if WebhookMode is true)

	// Cosmetic pause after each added book
	AddDelay time.Duration

	// Decorative animation
	AnimationURL     string
	AnimationTimeout time.Duration

	// Logging
	LogLevel  string
	LogFormat string // json or console

	// EnvFile is the dotenv file that was loaded, empty when none was found
	EnvFile string
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() (*Config, error) {
	config := &Config{}

	config.StorageBackend = strings.ToLower(getEnv("STORAGE_BACKEND", BackendFile))
	switch config.StorageBackend {
	case BackendFile:
		config.LibraryFile = getEnv("LIBRARY_FILE", "library.json")
	case BackendMemory:
	case BackendClickHouse:
		config.ClickHouseHost = os.Getenv("CLICKHOUSE_HOST")
		if config.ClickHouseHost == "" {
			return nil, fmt.Errorf("CLICKHOUSE_HOST is required when STORAGE_BACKEND is clickhouse")
		}

		portStr := os.Getenv("CLICKHOUSE_PORT")
		if portStr == "" {
			config.ClickHousePort = 9000 // Default ClickHouse native port
		} else {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return nil, fmt.Errorf("invalid CLICKHOUSE_PORT: %w", err)
			}
			config.ClickHousePort = port
		}

		config.ClickHouseDatabase = getEnv("CLICKHOUSE_DATABASE", "default")
		config.ClickHouseUser = getEnv("CLICKHOUSE_USER", "default")
		config.ClickHousePassword = os.Getenv("CLICKHOUSE_PASSWORD")
		config.ClickHouseUseTLS = os.Getenv("CLICKHOUSE_USE_TLS") == "true"
	default:
		return nil, fmt.Errorf("invalid STORAGE_BACKEND %q (want file, clickhouse or memory)", config.StorageBackend)
	}

	config.Port = getEnv("PORT", "8080")

	// Telegram bot is optional
	config.TelegramToken = os.Getenv("TELEGRAM_BOT_TOKEN")
	if config.TelegramToken != "" {
		allowedIDsStr := os.Getenv("ALLOWED_USER_IDS")
		if allowedIDsStr == "" {
			return nil, fmt.Errorf("ALLOWED_USER_IDS is required when TELEGRAM_BOT_TOKEN is set (comma-separated list of Telegram user IDs)")
		}

		idStrs := strings.Split(allowedIDsStr, ",")
		for _, idStr := range idStrs {
			id, err := strconv.ParseInt(strings.TrimSpace(idStr), 10, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid user ID in ALLOWED_USER_IDS: %s", idStr)
			}
			config.AllowedUserIDs = append(config.AllowedUserIDs, id)
		}

		config.WebhookMode = os.Getenv("WEBHOOK_MODE") == "true"
		if config.WebhookMode {
			config.WebhookURL = os.Getenv("WEBHOOK_URL")
			if config.WebhookURL == "" {
				return nil, fmt.Errorf("WEBHOOK_URL is required when WEBHOOK_MODE is true")
			}
		}
	}

	var err error
	if config.AddDelay, err = getDuration("ADD_DELAY", 0); err != nil {
		return nil, err
	}

	config.AnimationURL = getEnv("ANIMATION_URL", asset.DefaultAnimationURL)
	if config.AnimationTimeout, err = getDuration("ANIMATION_TIMEOUT", 5*time.Second); err != nil {
		return nil, err
	}

	config.LogLevel = getEnv("LOG_LEVEL", "info")
	config.LogFormat = getEnv("LOG_FORMAT", "json")

	return config, nil
}

// BotEnabled reports whether the Telegram bot should run
func (c *Config) BotEnabled() bool {
	return c.TelegramToken != ""
}

// getEnv retrieves environment variable or returns default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid %s: must not be negative", key)
	}
	return d, nil
}
