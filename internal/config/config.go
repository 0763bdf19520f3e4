package config

import (
	"os"
	"strconv"

	"mining_webapp/internal/logger"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort     string
	StoreKind   string // "memory" or "postgres"
	DatabaseURL string

	DemoUsername string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Rate limits (requests per window)
	APIRateLimit  int
	APIRateWindow int

	LogLevel string
	LogJSON  bool
}

// Load reads configuration from the environment, .env included.
func Load() *Config {
	_ = godotenv.Load()

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	storeKind := os.Getenv("STORE")
	if storeKind == "" {
		storeKind = "memory"
	}
	if storeKind != "memory" && storeKind != "postgres" {
		logger.Fatal("STORE must be 'memory' or 'postgres'", "store", storeKind)
	}

	dbURL := os.Getenv("DATABASE_URL")
	if storeKind == "postgres" && dbURL == "" {
		logger.Fatal("DATABASE_URL is required when STORE=postgres")
	}

	demoUsername := os.Getenv("DEMO_USERNAME")
	if demoUsername == "" {
		demoUsername = "FlameUser"
	}

	redisDB := 0
	if v := os.Getenv("REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			redisDB = n
		}
	}

	apiRateLimit := 120
	if v := os.Getenv("API_RATE_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			apiRateLimit = n
		}
	}

	apiRateWindow := 60
	if v := os.Getenv("API_RATE_WINDOW"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			apiRateWindow = n
		}
	}

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}

	return &Config{
		AppPort:       port,
		StoreKind:     storeKind,
		DatabaseURL:   dbURL,
		DemoUsername:  demoUsername,
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       redisDB,
		APIRateLimit:  apiRateLimit,
		APIRateWindow: apiRateWindow,
		LogLevel:      logLevel,
		LogJSON:       os.Getenv("LOG_JSON") == "true",
	}
}
