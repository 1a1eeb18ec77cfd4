package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port string
	Env  string

	// Database
	DatabaseURL string

	// Redis
	RedisURL string

	// Sessions
	JWTSecret       string
	SessionTTLHours int

	// AI provider: "openai" or "gemini"
	AIProvider   string
	OpenAIAPIKey string
	OpenAIModel  string
	GeminiAPIKey string

	// Web assets (templates + static files)
	WebDir string

	// Uploads
	MaxUploadMB int
}

func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	cfg := &Config{
		Port:        getEnvOrDefault("PORT", "8080"),
		Env:         getEnvOrDefault("ENV", "development"),
		DatabaseURL: mustGetEnv("DATABASE_URL"),
		RedisURL:    mustGetEnv("REDIS_URL"),
		JWTSecret:   mustGetEnv("JWT_SECRET"),

		SessionTTLHours: getEnvAsIntOrDefault("SESSION_TTL_HOURS", 168),

		AIProvider:   getEnvOrDefault("AI_PROVIDER", "openai"),
		OpenAIAPIKey: getEnvOrDefault("OPENAI_API_KEY", ""),
		OpenAIModel:  getEnvOrDefault("OPENAI_MODEL", "gpt-4o-mini"),
		GeminiAPIKey: getEnvOrDefault("GEMINI_API_KEY", ""),

		WebDir:      getEnvOrDefault("WEB_DIR", "web"),
		MaxUploadMB: getEnvAsIntOrDefault("MAX_UPLOAD_MB", 16),
	}

	return cfg
}

func mustGetEnv(key string) string {
	val := os.Getenv(key)
	if val == "" {
		panic(fmt.Sprintf("required environment variable %s is not set", key))
	}
	return val
}

func getEnvOrDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func getEnvAsIntOrDefault(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}
