package config

import (
	"fmt"
	"os"
)

type Config struct {
	DatabasePath  string
	SessionSecret string
	OpenAIAPIKey  string
	OpenAIModel   string
	LogLevel      string
	Port          string
}

func Load() (Config, error) {
	config := Config{
		DatabasePath:  envOrDefault("DATABASE_PATH", "./data/lifeos.db"),
		SessionSecret: os.Getenv("SESSION_SECRET"),
		OpenAIAPIKey:  os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:   envOrDefault("OPENAI_MODEL", "gpt-4o-mini"),
		LogLevel:      envOrDefault("LOG_LEVEL", "info"),
		Port:          envOrDefault("PORT", "8080"),
	}

	if config.SessionSecret == "" {
		return Config{}, fmt.Errorf("SESSION_SECRET is required")
	}

	return config, nil
}

func envOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
