package api

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/marcus/devsetup/internal/config"
)

// Environment variables read only by the server.
const (
	EnvShutdownTimeout    = "DEVSETUP_SHUTDOWN_TIMEOUT"
	EnvRateLimitLogin     = "DEVSETUP_RATE_LIMIT_LOGIN"
	EnvCORSAllowedOrigins = "DEVSETUP_CORS_ALLOWED_ORIGINS"
)

// Config holds the server configuration, loaded from environment variables.
type Config struct {
	ListenAddr      string
	ShutdownTimeout time.Duration
	LogFormat       string // "text" (default) or "json"
	LogLevel        string // "debug", "info" (default), "warn", "error"
	MaxBodyBytes    int64

	RateLimitLogin int // /v1/auth/* per IP per minute (default: 30)

	CORSAllowedOrigins []string // empty = disabled
}

// LoadConfig reads configuration from environment variables with sensible defaults.
func LoadConfig() Config {
	cfg := Config{
		ListenAddr:      config.ListenAddr(),
		ShutdownTimeout: 10 * time.Second,
		LogFormat:       "text",
		LogLevel:        "info",
		MaxBodyBytes:    1 << 20,
		RateLimitLogin:  30,
	}

	if v := os.Getenv(EnvShutdownTimeout); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.ShutdownTimeout = d
		}
	}
	if v := os.Getenv(config.EnvLogFormat); v != "" {
		cfg.LogFormat = v
	}
	if v := os.Getenv(config.EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv(EnvRateLimitLogin); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.RateLimitLogin = n
		}
	}

	if v := os.Getenv(EnvCORSAllowedOrigins); v != "" {
		for _, o := range strings.Split(v, ",") {
			o = strings.TrimSpace(o)
			if o != "" {
				cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, o)
			}
		}
	}

	return cfg
}
