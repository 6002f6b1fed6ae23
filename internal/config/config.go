package config

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port         string
	APIBaseURL   string
	DataDir      string
	TemplatePath string
	StaticPath   string
	AppEnv       string
}

func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	apiBaseURL, exists := os.LookupEnv("API_BASE_URL")
	if !exists || apiBaseURL == "" {
		return nil, fmt.Errorf("API_BASE_URL is required")
	}

	return &Config{
		Port:         getEnv("PORT", "8080"),
		APIBaseURL:   strings.TrimRight(apiBaseURL, "/"),
		DataDir:      getEnv("DATA_DIR", "./data"),
		TemplatePath: getEnv("TEMPLATE_PATH", "./web/templates"),
		StaticPath:   getEnv("STATIC_PATH", "./web/static"),
		AppEnv:       normalizeEnv(getEnv("APP_ENV", "production")),
	}, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func normalizeEnv(value string) string {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "dev", "develop", "development", "local":
		return "development"
	case "prod", "production":
		return "production"
	case "test", "testing":
		return "test"
	default:
		return strings.ToLower(strings.TrimSpace(value))
	}
}
