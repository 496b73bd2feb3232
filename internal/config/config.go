package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Credential store backends selectable via CRED_STORE.
const (
	CredStoreFile   = "file"
	CredStoreRedis  = "redis"
	CredStoreMemory = "memory"
)

// Config aggregates runtime configuration for the portal.
type Config struct {
	App         AppConfig
	Backend     BackendConfig
	Credentials CredentialsConfig
	Redis       RedisConfig
	Logger      LoggerConfig
}

// AppConfig controls the local HTTP listener.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
}

// BackendConfig points at the marketplace REST API.
type BackendConfig struct {
	BaseURL        string
	TimeoutSeconds int
}

// CredentialsConfig selects where the bearer token slot lives.
type CredentialsConfig struct {
	Backend  string
	FilePath string
}

// RedisConfig holds Redis connection values for the redis credential store.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	credFile := os.Getenv("CRED_FILE")
	if credFile == "" {
		credFile = defaultCredFile()
	}

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "egresados-portal"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "127.0.0.1"),
			Port:                  getEnv("APP_PORT", "3000"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Backend: BackendConfig{
			BaseURL:        getEnv("BACKEND_BASE_URL", "http://localhost:8000"),
			TimeoutSeconds: getEnvAsInt("BACKEND_TIMEOUT_SECONDS", 15),
		},
		Credentials: CredentialsConfig{
			Backend:  getEnv("CRED_STORE", CredStoreFile),
			FilePath: credFile,
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	switch cfg.Credentials.Backend {
	case CredStoreFile, CredStoreRedis, CredStoreMemory:
	default:
		return nil, fmt.Errorf("invalid CRED_STORE: %q", cfg.Credentials.Backend)
	}

	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// Timeout returns the outbound HTTP timeout for backend calls.
func (b BackendConfig) Timeout() time.Duration {
	if b.TimeoutSeconds <= 0 {
		return 15 * time.Second
	}
	return time.Duration(b.TimeoutSeconds) * time.Second
}

// defaultCredFile is the browser-profile analog: a per-user durable slot.
func defaultCredFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "egresados-portal", "authToken")
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}
