package insights

import (
	"errors"
	"os"
	"strings"
	"time"
)

// ErrMissingAPIKey is returned by Validate when no Gemini key is configured.
var ErrMissingAPIKey = errors.New("insights: GEMINI_API_KEY is not set")

// DefaultEndpoint is the Gemini REST base URL.
const DefaultEndpoint = "https://generativelanguage.googleapis.com/v1beta"

// DefaultModel is used when GEMINI_MODEL is not set.
const DefaultModel = "gemini-2.0-flash"

// DefaultCacheTTL bounds how long a generated digest is served from cache.
const DefaultCacheTTL = 10 * time.Minute

// Config holds configuration for the summarization endpoint.
type Config struct {
	APIKey   string
	Endpoint string
	Model    string
	CacheTTL time.Duration
}

// LoadFromEnv loads summarization configuration from environment variables.
//
// Environment variables:
//   - GEMINI_API_KEY: API key (required for digest generation)
//   - GEMINI_ENDPOINT: REST base URL (default: DefaultEndpoint)
//   - GEMINI_MODEL: model name (default: DefaultModel)
//   - INSIGHTS_CACHE_TTL: digest cache lifetime, e.g. "10m" (default: 10m)
func LoadFromEnv() Config {
	cfg := Config{
		APIKey:   strings.TrimSpace(os.Getenv("GEMINI_API_KEY")),
		Endpoint: strings.TrimSpace(os.Getenv("GEMINI_ENDPOINT")),
		Model:    strings.TrimSpace(os.Getenv("GEMINI_MODEL")),
		CacheTTL: DefaultCacheTTL,
	}
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if ttl := os.Getenv("INSIGHTS_CACHE_TTL"); ttl != "" {
		if d, err := time.ParseDuration(ttl); err == nil && d > 0 {
			cfg.CacheTTL = d
		}
	}
	return cfg
}

// Validate checks that the configuration can reach the model.
func (c Config) Validate() error {
	if c.APIKey == "" {
		return ErrMissingAPIKey
	}
	return nil
}
