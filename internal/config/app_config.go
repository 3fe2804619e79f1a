package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	APIBaseURL string
	WSBaseURL  string
	APIToken   string

	HTTPTimeoutSeconds int

	WSDialMaxRetries  int
	WSDialBaseDelayMS int
}

func LoadAppConfig() *AppConfig {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, reading from system environment variables")
	}

	return &AppConfig{
		APIBaseURL: strings.TrimRight(mustGetEnv("PRAXIS_API_URL"), "/"),
		WSBaseURL:  strings.TrimRight(mustGetEnv("PRAXIS_WS_URL"), "/"),
		APIToken:   mustGetEnv("PRAXIS_API_TOKEN"),

		HTTPTimeoutSeconds: getEnvAsInt("PRAXIS_HTTP_TIMEOUT_SECONDS", 30),

		WSDialMaxRetries:  getEnvAsInt("PRAXIS_WS_DIAL_MAX_RETRIES", 5),
		WSDialBaseDelayMS: getEnvAsInt("PRAXIS_WS_DIAL_BASE_DELAY_MS", 500),
	}
}

func mustGetEnv(key string) string {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		slog.Error("Environment variable is required but not set", "key", key)
		os.Exit(1)
	}
	return value
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	valStr, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	val, err := strconv.Atoi(valStr)
	if err != nil {
		slog.Warn("Environment variable must be an integer, using fallback", "key", key, "value", valStr, "fallback", fallback)
		return fallback
	}
	return val
}
