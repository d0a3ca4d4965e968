package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	BackendFirestore = "firestore"
	BackendRedis     = "redis"
	BackendMemory    = "memory"
)

type Config struct {
	ServerPort  string
	Environment string
	ServiceName string

	LogLevel  string
	LogFormat string

	StoreBackend string

	FirebaseProject            string
	FirebaseServiceAccountJSON string
	FirebaseServiceAccountPath string
	StorageBucket              string

	RedisAddr string

	CartMaxRetries     int
	RateLimitPerMinute int

	OTLPEndpoint string
}

func Load() (*Config, error) {
	// A missing .env is fine; the environment may already be populated.
	_ = godotenv.Load()

	config := &Config{
		ServerPort:  getEnv("SERVER_PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),
		ServiceName: getEnv("SERVICE_NAME", "storefront"),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "text"),

		StoreBackend: strings.ToLower(getEnv("STORE_BACKEND", BackendFirestore)),

		FirebaseProject:            getEnv("FIREBASE_PROJECT_ID", ""),
		FirebaseServiceAccountJSON: getEnv("FIREBASE_SERVICE_ACCOUNT_JSON", ""),
		FirebaseServiceAccountPath: getEnv("FIREBASE_SERVICE_ACCOUNT_PATH", ""),
		StorageBucket:              getEnv("STORAGE_BUCKET", ""),

		RedisAddr: getEnv("REDIS_ADDR", ""),

		OTLPEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
	}

	var err error
	if config.CartMaxRetries, err = getEnvAsInt("CART_MAX_RETRIES", 5); err != nil {
		return nil, err
	}
	if config.RateLimitPerMinute, err = getEnvAsInt("RATE_LIMIT_PER_MINUTE", 120); err != nil {
		return nil, err
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// LoadFirebase reads only the Firebase settings, for tools that never touch
// the cart stores.
func LoadFirebase() (*Config, error) {
	_ = godotenv.Load()

	config := &Config{
		FirebaseProject:            getEnv("FIREBASE_PROJECT_ID", ""),
		FirebaseServiceAccountJSON: getEnv("FIREBASE_SERVICE_ACCOUNT_JSON", ""),
		FirebaseServiceAccountPath: getEnv("FIREBASE_SERVICE_ACCOUNT_PATH", ""),
	}
	if config.FirebaseProject == "" {
		return nil, fmt.Errorf("FIREBASE_PROJECT_ID is not set")
	}
	return config, nil
}

func (c *Config) validate() error {
	switch c.StoreBackend {
	case BackendFirestore:
		if c.FirebaseProject == "" {
			return fmt.Errorf("FIREBASE_PROJECT_ID is required for the %s backend", BackendFirestore)
		}
	case BackendRedis:
		if c.RedisAddr == "" {
			return fmt.Errorf("REDIS_ADDR is required for the %s backend", BackendRedis)
		}
	case BackendMemory:
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.StoreBackend)
	}

	if c.CartMaxRetries < 1 {
		return fmt.Errorf("CART_MAX_RETRIES must be at least 1, got %d", c.CartMaxRetries)
	}
	if c.RateLimitPerMinute < 1 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must be at least 1, got %d", c.RateLimitPerMinute)
	}
	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) (int, error) {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return defaultValue, nil
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return intValue, nil
}
