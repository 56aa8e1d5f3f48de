package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
)

const defaultDatabaseURL = "sqlite:///tmp/test.db"

type Config struct {
	Port        string
	Environment string

	DatabaseURL string

	// RedisURL is optional; favorite events are not published without it.
	RedisURL string

	OTelServiceName string
	OTelEndpoint    string
	OTelDisabled    bool

	redisOpt asynq.RedisConnOpt
}

// Load reads configuration from the environment. A .env file in the working
// directory is applied first when present; existing variables win.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:            getEnv("PORT", "3000"),
		Environment:     getEnv("ENVIRONMENT", "development"),
		DatabaseURL:     getEnv("DATABASE_URL", defaultDatabaseURL),
		RedisURL:        getEnv("REDIS_URL", ""),
		OTelServiceName: getEnv("OTEL_SERVICE_NAME", "go-echo-starwars-api"),
		OTelEndpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "http://localhost:4318"),
	}

	disabled, err := strconv.ParseBool(getEnv("OTEL_SDK_DISABLED", "false"))
	if err != nil {
		return nil, fmt.Errorf("invalid OTEL_SDK_DISABLED: %w", err)
	}
	cfg.OTelDisabled = disabled

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	if cfg.RedisURL != "" {
		uri := cfg.RedisURL
		if !strings.Contains(uri, "://") {
			uri = "redis://" + uri
		}
		opt, err := asynq.ParseRedisURI(uri)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
		}
		cfg.redisOpt = opt
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT must not be empty")
	}
	switch {
	case strings.HasPrefix(c.DatabaseURL, "postgres://"),
		strings.HasPrefix(c.DatabaseURL, "postgresql://"),
		strings.HasPrefix(c.DatabaseURL, "sqlite://"):
	default:
		return fmt.Errorf("DATABASE_URL must use postgres://, postgresql:// or sqlite://")
	}
	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// RedisOpt is the parsed REDIS_URL, keeping password, DB index and TLS.
// It is nil when REDIS_URL is unset.
func (c *Config) RedisOpt() asynq.RedisConnOpt {
	return c.redisOpt
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
