// internal/config/config.go

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration
type Config struct {
	Environment string
	Server      ServerConfig
	Sources     SourcesConfig
	Events      EventsConfig
	Log         LogConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	CorsOrigins     []string
	LiveInterval    time.Duration
}

// SourcesConfig holds upstream provider configuration. Upstream HTTP calls
// deliberately carry no timeout: a hung provider hangs its request.
type SourcesConfig struct {
	SocialURL       string
	SocialUserAgent string
	SocialMaxTopics int
	NewsURL         string
	NewsFanOut      int
	CryptoURL       string
	CryptoMaxNFTs   int
}

// EventsConfig holds NATS event publishing configuration. Publishing is
// optional; the API runs without a broker when disabled.
type EventsConfig struct {
	Enabled        bool
	URL            string
	Subject        string
	MaxReconnects  int
	ReconnectWait  time.Duration
	ConnectTimeout time.Duration
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string
	Format string
}

// Load loads configuration from environment variables
func Load() (Config, error) {
	config := Config{
		Environment: getEnv("APP_ENV", "development"),
		Server: ServerConfig{
			Host:            getEnv("SERVER_HOST", "0.0.0.0"),
			Port:            getEnvAsInt("SERVER_PORT", 8080),
			ReadTimeout:     getEnvAsDuration("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout:    getEnvAsDuration("SERVER_WRITE_TIMEOUT", 0),
			ShutdownTimeout: getEnvAsDuration("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second),
			CorsOrigins:     getEnvAsSlice("SERVER_CORS_ORIGINS", []string{"*"}),
			LiveInterval:    getEnvAsDuration("SERVER_LIVE_INTERVAL", time.Minute),
		},
		Sources: SourcesConfig{
			SocialURL:       getEnv("SOURCE_SOCIAL_URL", "https://trends24.in"),
			SocialUserAgent: getEnv("SOURCE_SOCIAL_USER_AGENT", "Mozilla/5.0 (compatible; trendpulse/1.0)"),
			SocialMaxTopics: getEnvAsInt("SOURCE_SOCIAL_MAX_TOPICS", 20),
			NewsURL:         getEnv("SOURCE_NEWS_URL", "https://hacker-news.firebaseio.com/v0"),
			NewsFanOut:      getEnvAsInt("SOURCE_NEWS_FAN_OUT", 0),
			CryptoURL:       getEnv("SOURCE_CRYPTO_URL", "https://api.coingecko.com/api/v3"),
			CryptoMaxNFTs:   getEnvAsInt("SOURCE_CRYPTO_MAX_NFTS", 5),
		},
		Events: EventsConfig{
			Enabled:        getEnvAsBool("EVENTS_ENABLED", false),
			URL:            getEnv("EVENTS_NATS_URL", "nats://localhost:4222"),
			Subject:        getEnv("EVENTS_SUBJECT", "trends.keywords"),
			MaxReconnects:  getEnvAsInt("EVENTS_MAX_RECONNECTS", 10),
			ReconnectWait:  getEnvAsDuration("EVENTS_RECONNECT_WAIT", 1*time.Second),
			ConnectTimeout: getEnvAsDuration("EVENTS_CONNECT_TIMEOUT", 2*time.Second),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "console"),
		},
	}

	return config, validate(config)
}

// validate checks if config is valid
func validate(config Config) error {
	if config.Server.Port < 1 || config.Server.Port > 65535 {
		return fmt.Errorf("server port %d out of range", config.Server.Port)
	}
	if config.Sources.SocialMaxTopics < 1 {
		return fmt.Errorf("social max topics must be positive")
	}
	if config.Events.Enabled && config.Events.Subject == "" {
		return fmt.Errorf("events subject must be set when publishing is enabled")
	}
	return nil
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	return strings.Split(valueStr, ",")
}
