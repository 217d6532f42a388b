// Package config loads client configuration from the environment, with an
// optional .env file for local development.
package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the full client configuration.
type Config struct {
	AppName   string
	LogLevel  string
	LogPretty bool

	APIBaseURL     string
	RequestTimeout time.Duration
	MaxRetries     int
	RetryBaseDelay time.Duration

	PollInterval    time.Duration
	PollMaxFailures int

	MaxUploadBytes int64

	StateBackend      string // "file" or "redis"
	TenantOverlayPath string

	RedisHost     string
	RedisPort     int
	RedisPassword string
	RedisDB       int

	DebugErrorsURL string

	TracingEnabled bool
	OTLPEndpoint   string
	OTLPProtocol   string
	OTLPInsecure   bool
}

// Load reads configuration from the environment. Variables are prefixed
// with HOMESCREEN_ (e.g. HOMESCREEN_API_BASE_URL). A .env file in the
// working directory is loaded first, best effort.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("HOMESCREEN")
	v.AutomaticEnv()

	v.SetDefault("APP_NAME", "homescreen")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_PRETTY", true)
	v.SetDefault("API_BASE_URL", "http://127.0.0.1:8000/api")
	v.SetDefault("REQUEST_TIMEOUT", "30s")
	v.SetDefault("MAX_RETRIES", 3)
	v.SetDefault("RETRY_BASE_DELAY", "1s")
	v.SetDefault("POLL_INTERVAL", "3s")
	v.SetDefault("POLL_MAX_FAILURES", 3)
	v.SetDefault("MAX_UPLOAD_BYTES", 10*1024*1024)
	v.SetDefault("STATE_BACKEND", "file")
	v.SetDefault("TENANT_OVERLAY_PATH", "")
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("DEBUG_ERRORS_URL", "")
	v.SetDefault("TRACING_ENABLED", false)
	v.SetDefault("OTLP_ENDPOINT", "localhost:4317")
	v.SetDefault("OTLP_PROTOCOL", "grpc")
	v.SetDefault("OTLP_INSECURE", true)

	cfg := &Config{
		AppName:           v.GetString("APP_NAME"),
		LogLevel:          v.GetString("LOG_LEVEL"),
		LogPretty:         v.GetBool("LOG_PRETTY"),
		APIBaseURL:        v.GetString("API_BASE_URL"),
		RequestTimeout:    v.GetDuration("REQUEST_TIMEOUT"),
		MaxRetries:        v.GetInt("MAX_RETRIES"),
		RetryBaseDelay:    v.GetDuration("RETRY_BASE_DELAY"),
		PollInterval:      v.GetDuration("POLL_INTERVAL"),
		PollMaxFailures:   v.GetInt("POLL_MAX_FAILURES"),
		MaxUploadBytes:    v.GetInt64("MAX_UPLOAD_BYTES"),
		StateBackend:      v.GetString("STATE_BACKEND"),
		TenantOverlayPath: v.GetString("TENANT_OVERLAY_PATH"),
		RedisHost:         v.GetString("REDIS_HOST"),
		RedisPort:         v.GetInt("REDIS_PORT"),
		RedisPassword:     v.GetString("REDIS_PASSWORD"),
		RedisDB:           v.GetInt("REDIS_DB"),
		DebugErrorsURL:    v.GetString("DEBUG_ERRORS_URL"),
		TracingEnabled:    v.GetBool("TRACING_ENABLED"),
		OTLPEndpoint:      v.GetString("OTLP_ENDPOINT"),
		OTLPProtocol:      v.GetString("OTLP_PROTOCOL"),
		OTLPInsecure:      v.GetBool("OTLP_INSECURE"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.APIBaseURL == "" {
		return fmt.Errorf("API base URL is required")
	}
	if c.StateBackend != "file" && c.StateBackend != "redis" {
		return fmt.Errorf("unsupported state backend %q (use file or redis)", c.StateBackend)
	}
	if c.PollInterval <= 0 {
		return fmt.Errorf("poll interval must be positive")
	}
	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("max upload size must be positive")
	}
	return nil
}
