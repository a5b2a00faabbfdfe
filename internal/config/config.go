package config

import (
	"os"
	"strconv"
)

// Config collects the service's environment-driven settings.
type Config struct {
	Port      string
	DBPath    string
	RedisAddr string
	ModelDir  string
}

// Load reads configuration from environment variables with sensible defaults.
// RedisAddr empty means "run with the in-memory cache only".
func Load() *Config {
	return &Config{
		Port:      getEnvString("PORT", "8080"),
		DBPath:    getEnvString("DB_PATH", "data/statvalue.db"),
		RedisAddr: getEnvString("REDIS_ADDR", ""),
		ModelDir:  getEnvString("MODEL_DIR", "models"),
	}
}

func getEnvString(key, defaultValue string) string {
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

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
