package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"
)

// DefaultTimeout bounds every upstream HTTP call unless KIMAI_TIMEOUT
// overrides it.
const DefaultTimeout = 30 * time.Second

// Config holds environment-driven configuration. It is built once at
// startup and treated as immutable afterwards; components receive it
// explicitly rather than reading the environment themselves.
type Config struct {
	Kimai struct {
		BaseURL  string        // e.g., https://kimai.example.com (no /api suffix)
		APIToken string        // bearer token for API authentication
		Timeout  time.Duration // per-request HTTP timeout
	}
}

// Load reads configuration from environment variables.
func Load() (Config, error) {
	var cfg Config

	cfg.Kimai.BaseURL = strings.TrimRight(os.Getenv("KIMAI_BASE_URL"), "/")
	if cfg.Kimai.BaseURL == "" {
		return cfg, errors.New("KIMAI_BASE_URL is required")
	}
	u, err := url.Parse(cfg.Kimai.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return cfg, fmt.Errorf("KIMAI_BASE_URL must be an absolute URL, got %q", cfg.Kimai.BaseURL)
	}

	cfg.Kimai.APIToken = os.Getenv("KIMAI_API_TOKEN")
	if cfg.Kimai.APIToken == "" {
		return cfg, errors.New("KIMAI_API_TOKEN is required")
	}

	cfg.Kimai.Timeout = DefaultTimeout
	if raw := os.Getenv("KIMAI_TIMEOUT"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d <= 0 {
			return cfg, fmt.Errorf("KIMAI_TIMEOUT must be a positive duration, got %q", raw)
		}
		cfg.Kimai.Timeout = d
	}

	return cfg, nil
}
