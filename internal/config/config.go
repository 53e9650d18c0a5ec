package config

import (
	"os"
	"strconv"
	"time"
)

// Service identifies which of the two binaries is being configured.
type Service struct {
	Name        string
	DefaultPort int
}

var (
	// AutoTrading is the placeholder service for future auto-trading work.
	AutoTrading = Service{Name: "autotrading", DefaultPort: 3001}
	// Starter is the generic starter template service.
	Starter = Service{Name: "starter", DefaultPort: 3000}
)

// ServerConfig holds listener and request handling settings.
type ServerConfig struct {
	Port            int
	BodyLimit       int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// LogConfig controls the zap logger.
type LogConfig struct {
	Env   string
	Level string
}

// AppConfig is the centralized configuration struct for a service.
// It is populated from environment variables only.
type AppConfig struct {
	Service        Service
	Server         ServerConfig
	Log            LogConfig
	MetricsEnabled bool
	TracingEnabled bool
}

// Load reads configuration for svc from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// Load never fails; malformed values fall back to defaults.
func Load(svc Service) *AppConfig {
	return &AppConfig{
		Service: svc,
		Server: ServerConfig{
			Port:            getEnvPort("PORT", svc.DefaultPort),
			BodyLimit:       getEnvInt("BODY_LIMIT", 100*1024),
			ReadTimeout:     getEnvDuration("READ_TIMEOUT", 0),
			WriteTimeout:    getEnvDuration("WRITE_TIMEOUT", 0),
			ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Log: LogConfig{
			Env:   getEnv("APP_ENV", "development"),
			Level: getEnv("LOG_LEVEL", "info"),
		},
		MetricsEnabled: getEnvBool("METRICS_ENABLED", true),
		TracingEnabled: !getEnvBool("OTEL_SDK_DISABLED", true),
	}
}

// Addr returns the listen address for the configured port on all interfaces.
func (c *AppConfig) Addr() string {
	return ":" + strconv.Itoa(c.Server.Port)
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}

// getEnvPort accepts only TCP ports in 1..65535.
func getEnvPort(key string, def int) int {
	p := getEnvInt(key, def)
	if p < 1 || p > 65535 {
		return def
	}
	return p
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
