package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	ServerPort     string
	DatabaseType   string // sqlite, postgres or mysql
	DatabaseURL    string // for postgres/mysql
	DatabasePath   string // for sqlite
	MigrationsPath string

	// Public base URL used in invitation links
	AppBaseURL string

	// Secret for signing bearer tokens and sign-in links
	AuthTokenSecret string

	// Lifetime of bearer tokens issued on sign-in
	AuthTokenTTL time.Duration

	// How long an invitation stays consumable
	InvitationTTL time.Duration

	// Amazon SES settings; email sending is disabled when FromEmail is empty
	AWSRegion    string
	SESFromEmail string
	SESFromName  string

	// How often the mail dispatcher drains the queue
	MailPollInterval time.Duration

	Debug bool
}

// Load reads configuration from environment variables with sensible
// defaults. A local .env file is applied first when present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		ServerPort:       getEnv("PORT", "8080"),
		DatabaseType:     getEnv("DB_TYPE", "sqlite"),
		DatabaseURL:      getEnv("DB_URL", ""),
		DatabasePath:     getEnv("DB_PATH", "./healthyfamilies.db"),
		MigrationsPath:   getEnv("MIGRATIONS_PATH", "./migrations"),
		AppBaseURL:       getEnv("APP_BASE_URL", "http://localhost:8080"),
		AuthTokenSecret:  getEnv("AUTH_TOKEN_SECRET", ""),
		AuthTokenTTL:     getEnvDuration("AUTH_TOKEN_TTL", 24*time.Hour),
		InvitationTTL:    getEnvDuration("INVITATION_TTL", 7*24*time.Hour),
		AWSRegion:        getEnv("AWS_REGION", "us-east-1"),
		SESFromEmail:     getEnv("SES_FROM_EMAIL", ""),
		SESFromName:      getEnv("SES_FROM_NAME", "Healthy Families"),
		MailPollInterval: getEnvDuration("MAIL_POLL_INTERVAL", 30*time.Second),
		Debug:            getEnvBool("DEBUG", false),
	}
}

// getEnv reads an environment variable or returns a default value
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

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
