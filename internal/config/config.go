package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
)

const (
	BackendGoogle   = "google"
	BackendPostgres = "postgres"
)

type Config struct {
	App      AppConfig
	Google   GoogleConfig
	Sheets   SheetsConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Notifier NotifierConfig
	Pushover PushoverConfig
	Telegram TelegramConfig
	Reminder ReminderConfig
}

// AppConfig holds application configuration
type AppConfig struct {
	Port        int
	Env         string
	Timezone    string
	FrontendURL string
}

type GoogleConfig struct {
	// CredentialsB64 is a base64-encoded service account JSON key.
	CredentialsB64 string
}

type SheetsConfig struct {
	Backend       string
	ConfigSheetID string
	ConfigRange   string
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

type NotifierConfig struct {
	Kind string
}

type PushoverConfig struct {
	Token      string
	AdminToken string
	User       string
}

type TelegramConfig struct {
	BotToken string
	ChatID   string
}

type ReminderConfig struct {
	Interval time.Duration
	Hour     int
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file loaded, using process environment", "error", err)
	}

	config := &Config{}

	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:        appPort,
		Env:         getEnv("APP_ENV", "development"),
		Timezone:    getEnv("APP_TIMEZONE", "Asia/Bangkok"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:3000"),
	}

	config.Google = GoogleConfig{
		CredentialsB64: getEnv("GOOGLE_CREDENTIALS_B64", ""),
	}

	config.Sheets = SheetsConfig{
		Backend:       getEnv("SHEET_BACKEND", BackendGoogle),
		ConfigSheetID: getEnv("CONFIG_SHEET_ID", ""),
		ConfigRange:   getEnv("CONFIG_RANGE", "config!A:C"),
	}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "liff_attendance"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "24h"),
	}

	config.Notifier = NotifierConfig{
		Kind: strings.ToLower(getEnv("NOTIFIER", "pushover")),
	}

	config.Pushover = PushoverConfig{
		Token:      getEnv("PUSHOVER_TOKEN", ""),
		AdminToken: getEnv("PUSHOVER_TOKEN_ADMIN", ""),
		User:       getEnv("PUSHOVER_USER", ""),
	}

	config.Telegram = TelegramConfig{
		BotToken: getEnv("TELEGRAM_BOT_TOKEN", ""),
		ChatID:   getEnv("TELEGRAM_CHAT_ID", ""),
	}

	reminderInterval, err := time.ParseDuration(getEnv("REMINDER_INTERVAL", "1h"))
	if err != nil {
		return nil, fmt.Errorf("invalid REMINDER_INTERVAL: %w", err)
	}
	reminderHour, err := strconv.Atoi(getEnv("REMINDER_HOUR", "20"))
	if err != nil {
		return nil, fmt.Errorf("invalid REMINDER_HOUR: %w", err)
	}
	config.Reminder = ReminderConfig{
		Interval: reminderInterval,
		Hour:     reminderHour,
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if _, err := time.ParseDuration(c.JWT.AccessExpiration); err != nil {
		return fmt.Errorf("invalid JWT_ACCESS_EXPIRATION_TIME: %w", err)
	}
	if _, err := time.LoadLocation(c.App.Timezone); err != nil {
		return fmt.Errorf("invalid APP_TIMEZONE: %w", err)
	}
	if c.Sheets.ConfigSheetID == "" {
		return fmt.Errorf("CONFIG_SHEET_ID is required")
	}

	switch c.Sheets.Backend {
	case BackendGoogle:
		if c.Google.CredentialsB64 == "" {
			return fmt.Errorf("GOOGLE_CREDENTIALS_B64 is required")
		}
	case BackendPostgres:
		if c.Database.Password == "" {
			return fmt.Errorf("DB_PASSWORD is required")
		}
	default:
		return fmt.Errorf("unsupported SHEET_BACKEND: %s", c.Sheets.Backend)
	}

	switch c.Notifier.Kind {
	case "pushover":
		if c.Pushover.Token == "" || c.Pushover.User == "" {
			return fmt.Errorf("PUSHOVER_TOKEN and PUSHOVER_USER are required")
		}
	case "telegram":
		if c.Telegram.BotToken == "" || c.Telegram.ChatID == "" {
			return fmt.Errorf("TELEGRAM_BOT_TOKEN and TELEGRAM_CHAT_ID are required")
		}
	case "none", "":
	default:
		return fmt.Errorf("unsupported NOTIFIER: %s", c.Notifier.Kind)
	}

	if c.Reminder.Hour < 0 || c.Reminder.Hour > 23 {
		return fmt.Errorf("REMINDER_HOUR must be between 0 and 23")
	}
	return nil
}

// Location returns the zone that decides what "today" is.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.App.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
