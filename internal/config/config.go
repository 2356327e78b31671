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
	Database    DatabaseConfig
	NATS        NATSConfig
	Sentiment   SentimentConfig
	Forecast    ForecastConfig
	Alerting    AlertingConfig
	Ingest      IngestConfig
	SMTP        SMTPConfig
	Webhook     WebhookConfig
	Twitter     TwitterConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	CorsOrigins     []string
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Database     string
	MaxOpenConns int
	MaxIdleConns int
	MaxLifetime  time.Duration
	SSLMode      string
}

// NATSConfig holds NATS configuration
type NATSConfig struct {
	URL            string
	MaxReconnects  int
	ReconnectWait  time.Duration
	ConnectTimeout time.Duration
	AlertsSubject  string
}

// SentimentConfig holds sentiment classifier configuration
type SentimentConfig struct {
	ModelPath        string
	MinRetrainPosts  int
	RetrainBatchSize int
}

// ForecastConfig holds trend prediction configuration
type ForecastConfig struct {
	Window       time.Duration
	MinPosts     int
	DefaultHours int
}

// AlertingConfig holds alert evaluation configuration
type AlertingConfig struct {
	Window time.Duration
}

// IngestConfig holds ingestion engine configuration
type IngestConfig struct {
	Interval         time.Duration
	MaxPostsPerCycle int
}

// SMTPConfig holds email notification configuration
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromEmail string
	Enabled   bool
}

// WebhookConfig holds webhook notification configuration
type WebhookConfig struct {
	URL     string
	Timeout time.Duration
}

// TwitterConfig holds the Twitter source configuration
type TwitterConfig struct {
	BearerToken string
	Query       string
}

// Load loads configuration from environment variables
func Load() (Config, error) {
	config := Config{
		Environment: getEnv("APP_ENV", "development"),
		Server: ServerConfig{
			Host:            getEnv("SERVER_HOST", "0.0.0.0"),
			Port:            getEnvAsInt("SERVER_PORT", 8080),
			ReadTimeout:     getEnvAsDuration("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout:    getEnvAsDuration("SERVER_WRITE_TIMEOUT", 10*time.Second),
			ShutdownTimeout: getEnvAsDuration("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second),
			CorsOrigins:     getEnvAsSlice("SERVER_CORS_ORIGINS", []string{"*"}),
		},
		Database: DatabaseConfig{
			Host:         getEnv("DB_HOST", "localhost"),
			Port:         getEnvAsInt("DB_PORT", 5432),
			User:         getEnv("DB_USER", "postgres"),
			Password:     getEnv("DB_PASSWORD", "postgres"),
			Database:     getEnv("DB_NAME", "mediawatch"),
			MaxOpenConns: getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns: getEnvAsInt("DB_MAX_IDLE_CONNS", 25),
			MaxLifetime:  getEnvAsDuration("DB_MAX_LIFETIME", 5*time.Minute),
			SSLMode:      getEnv("DB_SSL_MODE", "disable"),
		},
		NATS: NATSConfig{
			URL:            getEnv("NATS_URL", "nats://localhost:4222"),
			MaxReconnects:  getEnvAsInt("NATS_MAX_RECONNECTS", 10),
			ReconnectWait:  getEnvAsDuration("NATS_RECONNECT_WAIT", 1*time.Second),
			ConnectTimeout: getEnvAsDuration("NATS_CONNECT_TIMEOUT", 2*time.Second),
			AlertsSubject:  getEnv("NATS_ALERTS_SUBJECT", "alerts.events"),
		},
		Sentiment: SentimentConfig{
			ModelPath:        getEnv("SENTIMENT_MODEL_PATH", "data/sentiment_model.json"),
			MinRetrainPosts:  getEnvAsInt("SENTIMENT_MIN_RETRAIN_POSTS", 10),
			RetrainBatchSize: getEnvAsInt("SENTIMENT_RETRAIN_BATCH_SIZE", 1000),
		},
		Forecast: ForecastConfig{
			Window:       getEnvAsDuration("FORECAST_WINDOW", 7*24*time.Hour),
			MinPosts:     getEnvAsInt("FORECAST_MIN_POSTS", 10),
			DefaultHours: getEnvAsInt("FORECAST_DEFAULT_HOURS", 24),
		},
		Alerting: AlertingConfig{
			Window: getEnvAsDuration("ALERTING_WINDOW", 5*time.Minute),
		},
		Ingest: IngestConfig{
			Interval:         getEnvAsDuration("INGEST_INTERVAL", 2*time.Minute),
			MaxPostsPerCycle: getEnvAsInt("INGEST_MAX_POSTS_PER_CYCLE", 10),
		},
		SMTP: SMTPConfig{
			Host:      getEnv("SMTP_HOST", "smtp.gmail.com"),
			Port:      getEnvAsInt("SMTP_PORT", 587),
			Username:  getEnv("SMTP_USERNAME", ""),
			Password:  getEnv("SMTP_PASSWORD", ""),
			FromEmail: getEnv("SMTP_FROM_EMAIL", ""),
			Enabled:   getEnvAsBool("SMTP_ENABLED", false),
		},
		Webhook: WebhookConfig{
			URL:     getEnv("WEBHOOK_URL", ""),
			Timeout: getEnvAsDuration("WEBHOOK_TIMEOUT", 10*time.Second),
		},
		Twitter: TwitterConfig{
			BearerToken: getEnv("TWITTER_BEARER_TOKEN", ""),
			Query:       getEnv("TWITTER_QUERY", ""),
		},
	}

	return config, validate(config)
}

// validate checks if config is valid
func validate(config Config) error {
	if config.SMTP.Enabled && config.SMTP.FromEmail == "" {
		return fmt.Errorf("SMTP_FROM_EMAIL must be set when SMTP is enabled")
	}
	if config.Ingest.MaxPostsPerCycle <= 0 {
		return fmt.Errorf("INGEST_MAX_POSTS_PER_CYCLE must be positive")
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
