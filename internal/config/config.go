package config

import (
	"os"
	"strconv"
)

type Config struct {
	ThumbSize      int
	ThumbFill      bool
	ThumbAntialias bool
	CacheType      string
	CacheDir       string
	WarmupWorkers  int
	LogLevel       string
}

func Load() *Config {
	cfg := &Config{
		ThumbSize:      getEnvInt("THUMB_SIZE", 240),
		ThumbFill:      getEnvBool("THUMB_FILL", false),
		ThumbAntialias: getEnvBool("THUMB_ANTIALIAS", true),
		CacheType:      getEnv("THUMB_CACHE", "file"),
		CacheDir:       getEnv("THUMB_CACHE_DIR", ""),
		WarmupWorkers:  getEnvInt("WARMUP_WORKERS", 1),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
	}

	return cfg
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
