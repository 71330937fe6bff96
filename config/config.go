package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// LoadEnv loads environment variables from a .env file if one is present.
// Missing files are not fatal: deployment environments inject variables
// directly.
func LoadEnv() {
	possiblePaths := []string{
		".env",
		"../.env",
		os.Getenv("CHUNAV_ENV"),
	}

	for _, path := range possiblePaths {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err != nil {
				log.Printf("Warning: failed to load %s: %v", path, err)
				return
			}
			log.Printf("Loaded environment variables from %s", path)
			return
		}
	}
}

func getPostgresConnString() string {
	host := getEnvWithDefault("DB_HOST", "localhost")
	port := getEnvWithDefault("DB_PORT", "5432")
	user := getEnvWithDefault("DB_USER", "postgres")
	password := getEnvWithDefault("DB_PASSWORD", "1234")
	dbname := getEnvWithDefault("DB_NAME", "chunavmantra")
	sslmode := getEnvWithDefault("DB_SSL_MODE", "disable")

	return "host=" + host + " port=" + port + " user=" + user +
		" password=" + password + " dbname=" + dbname + " sslmode=" + sslmode
}

// Helper functions
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
