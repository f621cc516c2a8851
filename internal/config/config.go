package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	ServerPort     string
	DatabaseURL    string
	SQLitePath     string
	SessionSecret  string
	AdminUsername  string
	AdminPassword  string
	AdminForceSync bool
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists (for development)
	_ = godotenv.Load()

	forceSync, _ := strconv.ParseBool(getEnv("ADMIN_FORCE_SYNC", "false"))

	return &Config{
		ServerPort:     getEnv("SERVER_PORT", "8080"),
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		SQLitePath:     getEnv("SQLITE_PATH", "laboratorio.db"),
		SessionSecret:  getEnv("SESSION_SECRET", "change-me-in-production"),
		AdminUsername:  getEnv("ADMIN_USERNAME", "admin"),
		AdminPassword:  getEnv("ADMIN_PASSWORD", ""),
		AdminForceSync: forceSync,
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
