package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Draft    DraftConfig
	Scribo   ScriboConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	ClientURL          string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
	TracingEnabled     bool
}

type DatabaseConfig struct {
	Connection string

	// Timeout bounds entity store calls made from room sessions (seed, commit)
	// so a stalled database cannot pin a room mutex forever.
	Timeout time.Duration
}

// DraftConfig governs the draft cache lifecycle. TTL expiry is equivalent to
// an implicit clear; the next join re-seeds from the entity store.
type DraftConfig struct {
	TTL           time.Duration
	PurgeInterval time.Duration
}

type ScriboConfig struct {
	BaseURL string
	Timeout time.Duration

	// PageTopic is the in-process queue topic for page generation jobs.
	PageTopic string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			ClientURL:          getEnv("CLIENT_URL", "http://localhost:5173"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
			TracingEnabled:     getEnv("TRACING_ENABLED", "false") == "true",
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
			Timeout:    getEnvAsDuration("DB_TIMEOUT", 10*time.Second),
		},
		Draft: DraftConfig{
			TTL:           getEnvAsDuration("DRAFT_TTL", 1*time.Hour),
			PurgeInterval: getEnvAsDuration("DRAFT_PURGE_INTERVAL", 10*time.Minute),
		},
		Scribo: ScriboConfig{
			BaseURL:   getEnv("SCRIBO_BASE_URL", "http://localhost:8000"),
			Timeout:   getEnvAsDuration("SCRIBO_TIMEOUT", 60*time.Second),
			PageTopic: getEnv("PAGE_GEN_TOPIC", "generate_page"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return fallback
}
