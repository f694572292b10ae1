package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config конфигурация вспомогательных подсистем.
// Сам прогноз настраивается только путем к CSV.
type Config struct {
	LogLevel      string
	LogFile       string
	MetricsFile   string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	ResultTTL     time.Duration
}

// Load загружает .env (если есть) и читает конфигурацию из environment
func Load() Config {
	// отсутствие .env не ошибка
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv читает конфигурацию из environment variables
func FromEnv() Config {
	return Config{
		LogLevel:      getEnv("FORECAST_LOG_LEVEL", ""),
		LogFile:       getEnv("FORECAST_LOG_FILE", ""),
		MetricsFile:   getEnv("FORECAST_METRICS_FILE", ""),
		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvAsInt("REDIS_DB", 0),
		ResultTTL:     time.Duration(getEnvAsInt("FORECAST_RESULT_TTL_HOURS", 24)) * time.Hour,
	}
}

// getEnv получает environment variable или возвращает default
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvAsInt получает environment variable как int
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	var value int
	if _, err := fmt.Sscanf(valueStr, "%d", &value); err != nil {
		return defaultValue
	}
	return value
}
