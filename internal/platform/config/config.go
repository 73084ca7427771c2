package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr              string
	DatabaseURL       string
	DBMaxConns        int
	DBMinConns        int
	Environment       string
	SessionTTL        time.Duration
	LoginTicketSecret string
	LoginTicketTTL    time.Duration
	RedisAddr         string
	RedisPassword     string
	RedisDB           int
	TelegramBotToken  string
	TelegramChatID    string
	SheetsWebhookURL  string
	StorageDir        string
	StorageBaseURL    string
	RunMigrations     bool
	MaxBodyBytes      int64
	RequestTimeout    time.Duration
	SinkQueueSize     int
	MetricsEnabled    bool
	SeedAdminEmail    string
	SeedAdminPassword string
}

func Load() Config {
	// Local development convenience; missing .env is not an error.
	_ = godotenv.Load()

	return Config{
		Addr:              getEnv("APP_ADDR", ":8080"),
		DatabaseURL:       getEnv("DATABASE_URL", ""),
		DBMaxConns:        getEnvInt("DB_MAX_CONNS", 10),
		DBMinConns:        getEnvInt("DB_MIN_CONNS", 2),
		Environment:       getEnv("APP_ENV", "development"),
		SessionTTL:        getEnvDuration("SESSION_TTL", 7*24*time.Hour),
		LoginTicketSecret: getEnv("LOGIN_TICKET_SECRET", ""),
		LoginTicketTTL:    getEnvDuration("LOGIN_TICKET_TTL", 5*time.Minute),
		RedisAddr:         getEnv("REDIS_ADDR", ""),
		RedisPassword:     getEnv("REDIS_PASSWORD", ""),
		RedisDB:           getEnvInt("REDIS_DB", 0),
		TelegramBotToken:  getEnv("TELEGRAM_BOT_TOKEN", ""),
		TelegramChatID:    getEnv("TELEGRAM_CHAT_ID", ""),
		SheetsWebhookURL:  getEnv("SHEETS_WEBHOOK_URL", ""),
		StorageDir:        getEnv("STORAGE_DIR", ""),
		StorageBaseURL:    getEnv("STORAGE_BASE_URL", ""),
		RunMigrations:     getEnvBool("RUN_MIGRATIONS", true),
		MaxBodyBytes:      int64(getEnvInt("MAX_BODY_BYTES", 10485760)),
		RequestTimeout:    getEnvDuration("REQUEST_TIMEOUT", 30*time.Second),
		SinkQueueSize:     getEnvInt("SINK_QUEUE_SIZE", 256),
		MetricsEnabled:    getEnvBool("METRICS_ENABLED", true),
		SeedAdminEmail:    getEnv("SEED_ADMIN_EMAIL", ""),
		SeedAdminPassword: getEnv("SEED_ADMIN_PASSWORD", ""),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.DatabaseURL) == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.Environment == "production" {
		if strings.TrimSpace(c.LoginTicketSecret) == "" {
			return fmt.Errorf("LOGIN_TICKET_SECRET must be set to a strong value in production")
		}
		if strings.TrimSpace(c.TelegramBotToken) == "" {
			return fmt.Errorf("TELEGRAM_BOT_TOKEN must be set in production: admin logins require the channel")
		}
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive")
	}
	if c.DBMaxConns <= 0 || c.DBMinConns < 0 || c.DBMinConns > c.DBMaxConns {
		return fmt.Errorf("DB_MAX_CONNS/DB_MIN_CONNS must satisfy 0 <= min <= max, max > 0")
	}
	if c.MaxBodyBytes < 1024 {
		return fmt.Errorf("MAX_BODY_BYTES must be at least 1024")
	}
	if c.SinkQueueSize <= 0 {
		return fmt.Errorf("SINK_QUEUE_SIZE must be positive")
	}
	return nil
}
