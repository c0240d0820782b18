// Package config handles configuration loading and management
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/damacus/newsdesk/internal/models"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Storage backends
const (
	BackendFS    = "fs"
	BackendMinio = "minio"
)

// SessionKeySize is the required length of NEWSDESK_SESSION_KEY
const SessionKeySize = 32

// Config holds the console configuration
type Config struct {
	ListenAddr     string
	StorageBackend string
	ReportsDir     string
	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	SessionKey     []byte
	Locale         string
	Timezone       string
	Location       *time.Location
	ToastDelay     time.Duration
	LogLevel       logrus.Level
	LogFormat      string
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		// It's okay if the file doesn't exist
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}
	return FromEnv()
}

// FromEnv builds and validates a Config from the process environment
func FromEnv() (*Config, error) {
	cfg := &Config{
		ListenAddr:     getEnv("LISTEN_ADDR", ":8080"),
		StorageBackend: strings.ToLower(getEnv("STORAGE_BACKEND", BackendFS)),
		ReportsDir:     getEnv("REPORTS_DIR", "news_reports"),
		MinioEndpoint:  getEnv("MINIO_ENDPOINT", ""),
		MinioAccessKey: getEnv("MINIO_ACCESS_KEY", ""),
		MinioSecretKey: getEnv("MINIO_SECRET_KEY", ""),
		MinioBucket:    getEnv("MINIO_BUCKET", "news-reports"),
		Locale:         getEnv("UI_LOCALE", "zh-CN"),
		Timezone:       getEnv("UI_TIMEZONE", "Local"),
		LogFormat:      strings.ToLower(getEnv("LOG_FORMAT", "text")),
	}

	switch cfg.StorageBackend {
	case BackendFS:
	case BackendMinio:
		if cfg.MinioEndpoint == "" || cfg.MinioAccessKey == "" || cfg.MinioSecretKey == "" {
			return nil, errors.New("minio backend requires MINIO_ENDPOINT, MINIO_ACCESS_KEY and MINIO_SECRET_KEY")
		}
	default:
		return nil, fmt.Errorf("invalid STORAGE_BACKEND %q: must be %q or %q", cfg.StorageBackend, BackendFS, BackendMinio)
	}

	if key := os.Getenv("NEWSDESK_SESSION_KEY"); key != "" {
		if len(key) != SessionKeySize {
			return nil, fmt.Errorf("invalid NEWSDESK_SESSION_KEY: must be %d bytes, got %d", SessionKeySize, len(key))
		}
		cfg.SessionKey = []byte(key)
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid UI_TIMEZONE: %w", err)
	}
	cfg.Location = loc

	delay, err := time.ParseDuration(getEnv("TOAST_DELAY", "3s"))
	if err != nil {
		return nil, fmt.Errorf("invalid TOAST_DELAY: %w", err)
	}
	if delay <= 0 {
		return nil, fmt.Errorf("invalid TOAST_DELAY: must be positive, got %s", delay)
	}
	cfg.ToastDelay = delay

	level, err := logrus.ParseLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	cfg.LogLevel = level

	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, fmt.Errorf("invalid LOG_FORMAT %q: must be text or json", cfg.LogFormat)
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// NewLogger builds the process logger
func (c *Config) NewLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(c.LogLevel)
	if c.LogFormat == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return log
}

// Settings is the subset shown on the settings page
func (c *Config) Settings() models.ConsoleSettings {
	return models.ConsoleSettings{
		Backend:    c.StorageBackend,
		ReportsDir: c.ReportsDir,
		Endpoint:   c.MinioEndpoint,
		Bucket:     c.MinioBucket,
		Locale:     c.Locale,
		Timezone:   c.Location.String(),
		ToastDelay: c.ToastDelay,
		LogLevel:   c.LogLevel.String(),
	}
}

func (c *Config) String() string {
	secretDisplay := "(not set)"
	if c.MinioSecretKey != "" {
		secretDisplay = "********"
	}

	sessionKeyDisplay := "(ephemeral)"
	if len(c.SessionKey) > 0 {
		sessionKeyDisplay = "********"
	}

	return fmt.Sprintf(`Current Configuration:
======================
Listen Address:   %s
Storage Backend:  %s
Reports Dir:      %s
MinIO Endpoint:   %s
MinIO Access Key: %s
MinIO Secret Key: %s
MinIO Bucket:     %s
Session Key:      %s
Locale:           %s
Time Zone:        %s
Toast Delay:      %s
Log Level:        %s
Log Format:       %s`,
		c.ListenAddr,
		c.StorageBackend,
		c.ReportsDir,
		c.MinioEndpoint,
		c.MinioAccessKey,
		secretDisplay,
		c.MinioBucket,
		sessionKeyDisplay,
		c.Locale,
		c.Timezone,
		c.ToastDelay,
		c.LogLevel,
		c.LogFormat,
	)
}
