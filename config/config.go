package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Env      string
	Server   ServerConfig
	Database DatabaseConfig
	Pipeline PipelineConfig
	Logging  LoggingConfig
	Metrics  MetricsConfig
	Auth     AuthConfig
	Admin    AdminConfig
	Redis    RedisConfig
	Notify   NotifyConfig
	Alerts   AlertsConfig
	Kafka    KafkaConfig
	CORS     CORSConfig
}

type ServerConfig struct {
	Host                    string
	Port                    int
	ReadTimeout             time.Duration
	WriteTimeout            time.Duration
	IdleTimeout             time.Duration
	GracefulShutdownTimeout time.Duration
}

type DatabaseConfig struct {
	URL             string
	MaxConns        int
	MinConns        int
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
	AutoMigrate     bool
}

// PipelineConfig bounds the alert fan-out.
type PipelineConfig struct {
	WorkerCount int
	SendTimeout time.Duration // per send, on top of the dispatcher's own bound
}

type LoggingConfig struct {
	Level  string
	Format string // json or text
}

type MetricsConfig struct {
	Enabled bool
	Port    int
	Path    string
}

type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
	Issuer    string
}

type RedisConfig struct {
	URL      string
	Password string
	DB       int
}

type AdminConfig struct {
	AdminSecret     string
	AdminSecretHash string // bcrypt hash, preferred over the plain secret when set
}

// NotifyConfig configures the email and SMS channels.
type NotifyConfig struct {
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	EmailFrom    string

	TwilioAccountSID string
	TwilioAuthToken  string
	TwilioFromNumber string

	SendTimeout time.Duration
	RateLimit   float64 // sends per second across both channels
	RateBurst   int
}

type AlertsConfig struct {
	RiskTable       string // city or ward
	TopN            int
	AppURL          string
	CityCooldown    time.Duration
	DirectPerMinute int
}

type KafkaConfig struct {
	Brokers []string
	Topic   string
}

type CORSConfig struct {
	AllowedOrigins []string
}

// Load loads configuration from environment variables with sensible defaults.
// A .env file in the working directory is read first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Env: getEnv("APP_ENV", "dev"),
		Server: ServerConfig{
			Host:                    getEnv("SERVER_HOST", "0.0.0.0"),
			Port:                    getEnvInt("SERVER_PORT", 8080),
			ReadTimeout:             getEnvDuration("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout:            getEnvDuration("SERVER_WRITE_TIMEOUT", 60*time.Second),
			IdleTimeout:             getEnvDuration("SERVER_IDLE_TIMEOUT", 120*time.Second),
			GracefulShutdownTimeout: getEnvDuration("SERVER_GRACEFUL_SHUTDOWN_TIMEOUT", 30*time.Second),
		},
		Database: DatabaseConfig{
			URL:             getEnv("DATABASE_URL", ""),
			MaxConns:        getEnvInt("DB_MAX_CONNS", 10),
			MinConns:        getEnvInt("DB_MIN_CONNS", 2),
			MaxConnLifetime: getEnvDuration("DB_MAX_CONN_LIFETIME", 1*time.Hour),
			MaxConnIdleTime: getEnvDuration("DB_MAX_CONN_IDLE_TIME", 30*time.Minute),
			AutoMigrate:     getEnvBool("DB_AUTO_MIGRATE", true),
		},
		Pipeline: PipelineConfig{
			WorkerCount: getEnvInt("PIPELINE_WORKER_COUNT", 8),
			SendTimeout: getEnvDuration("PIPELINE_SEND_TIMEOUT", 10*time.Second),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Metrics: MetricsConfig{
			Enabled: getEnvBool("METRICS_ENABLED", true),
			Port:    getEnvInt("METRICS_PORT", 9090),
			Path:    getEnv("METRICS_PATH", "/metrics"),
		},
		Auth: AuthConfig{
			JWTSecret: getEnv("JWT_SECRET", ""),
			TokenTTL:  getEnvDuration("JWT_TTL", 1*time.Hour),
			Issuer:    getEnv("JWT_ISSUER", "floodalert"),
		},
		Redis: RedisConfig{
			URL:      getEnv("REDIS_URL", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Admin: AdminConfig{
			AdminSecret:     getEnv("ADMIN_SECRET", ""),
			AdminSecretHash: getEnv("ADMIN_SECRET_HASH", ""),
		},
		Notify: NotifyConfig{
			SMTPHost:         getEnv("SMTP_HOST", ""),
			SMTPPort:         getEnvInt("SMTP_PORT", 587),
			SMTPUsername:     getEnv("EMAIL_USER", ""),
			SMTPPassword:     getEnv("EMAIL_PASS", ""),
			EmailFrom:        getEnv("EMAIL_FROM", getEnv("EMAIL_USER", "")),
			TwilioAccountSID: getEnv("TWILIO_ACCOUNT_SID", ""),
			TwilioAuthToken:  getEnv("TWILIO_AUTH_TOKEN", ""),
			TwilioFromNumber: getEnv("TWILIO_PHONE_NUMBER", ""),
			SendTimeout:      getEnvDuration("NOTIFY_SEND_TIMEOUT", 5*time.Second),
			RateLimit:        getEnvFloat("NOTIFY_RATE_LIMIT", 10.0),
			RateBurst:        getEnvInt("NOTIFY_RATE_BURST", 10),
		},
		Alerts: AlertsConfig{
			RiskTable:       strings.ToLower(getEnv("ALERT_RISK_TABLE", "city")),
			TopN:            getEnvInt("ALERT_SAFE_PLACES_TOP_N", 3),
			AppURL:          getEnv("ALERT_APP_URL", "https://akashkeote.github.io/flood/"),
			CityCooldown:    getEnvDuration("ALERT_CITY_COOLDOWN", 2*time.Minute),
			DirectPerMinute: getEnvInt("ALERT_DIRECT_PER_MINUTE", 5),
		},
		Kafka: KafkaConfig{
			Brokers: splitList(getEnv("KAFKA_BROKERS", "")),
			Topic:   getEnv("KAFKA_DISPATCH_TOPIC", "flood-alert-dispatches"),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		},
	}

	if cfg.Auth.JWTSecret == "" && cfg.IsDev() {
		cfg.Auth.JWTSecret = "dev-insecure-secret"
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// IsDev reports whether the process runs in a development environment.
func (c *Config) IsDev() bool {
	return c.Env == "dev" || c.Env == "development" || c.Env == "test"
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Database.MaxConns < 1 {
		return fmt.Errorf("database max connections must be at least 1")
	}
	if c.Pipeline.WorkerCount < 1 {
		return fmt.Errorf("pipeline worker count must be at least 1")
	}
	if c.Pipeline.SendTimeout <= 0 {
		return fmt.Errorf("pipeline send timeout must be positive")
	}
	if c.Alerts.RiskTable != "city" && c.Alerts.RiskTable != "ward" {
		return fmt.Errorf("unknown risk table %q (want city or ward)", c.Alerts.RiskTable)
	}
	if c.Alerts.TopN < 1 {
		return fmt.Errorf("safe places top N must be at least 1")
	}
	if c.Notify.SendTimeout <= 0 {
		return fmt.Errorf("notify send timeout must be positive")
	}
	if c.Notify.RateLimit <= 0 {
		return fmt.Errorf("notify rate limit must be positive")
	}
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required outside dev")
	}
	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("jwt ttl must be positive")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
