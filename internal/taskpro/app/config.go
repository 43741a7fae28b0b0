package app

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Issuer     string        // Issuer claim for tokens (default: taskpro)
	KeyFile    string        // Path to the Ed25519 signing key PEM (default: ./signing.pem)
	AccessTTL  time.Duration // Access token lifetime (default: 1h)
	RefreshTTL time.Duration // Refresh token lifetime (default: 168h)

	DatabaseFile string // Path to SQLite database file (default: ./taskpro.db)
	PepperFile   string // Path to the password hashing pepper file (default: ./pepper)
	AvatarDir    string // Directory for uploaded avatars (default: ./uploads/avatars)

	GoogleClientID     string // Optional: enables Google sign-in when set
	GoogleClientSecret string
	GoogleRedirectURL  string

	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 8080)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Session sweep interval (default: 1h)
}

// LoadConfig reads configuration from the environment, after loading a .env
// file if one is present. Real environment variables win over .env entries.
func LoadConfig() Config {
	_ = godotenv.Load()

	return Config{
		Issuer:     getEnvOrDefault("TASKPRO_ISSUER", "taskpro"),
		KeyFile:    getEnvOrDefault("TASKPRO_KEY_FILE", "signing.pem"),
		AccessTTL:  getEnvDurationOrDefault("TASKPRO_ACCESS_TTL", 1*time.Hour),
		RefreshTTL: getEnvDurationOrDefault("TASKPRO_REFRESH_TTL", 7*24*time.Hour),

		DatabaseFile: getEnvOrDefault("TASKPRO_DATABASE_FILE", "taskpro.db"),
		PepperFile:   getEnvOrDefault("TASKPRO_PEPPER_FILE", "pepper"),
		AvatarDir:    getEnvOrDefault("TASKPRO_AVATAR_DIR", "uploads/avatars"),

		GoogleClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		GoogleClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
		GoogleRedirectURL:  os.Getenv("GOOGLE_REDIRECT_URL"),

		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 1*time.Hour),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	return defaultValue
}
