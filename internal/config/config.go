// Package config loads and validates application configuration from environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Store names the destination backend selected by the configuration.
type Store string

const (
	StoreMongo    Store = "mongodb"
	StorePostgres Store = "postgres"
)

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on.
	Port string `env:"PORT" envDefault:"5002"`

	// Environment is "development", "production" or anything else the
	// deployment uses. Only "production" changes behaviour.
	Environment string `env:"APP_ENV" envDefault:"development"`

	// LogLevel controls the minimum log level.
	// Valid values: debug, info, warn, error.
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// CORSOrigins is the list of allowed cross-origin request origins.
	CORSOrigins []string `env:"CLIENT_URL" envDefault:"http://localhost:3000" envSeparator:","`

	// MongoURI selects the MongoDB store when set. It wins over DatabaseURL.
	MongoURI      string `env:"MONGODB_URI"`
	MongoDatabase string `env:"MONGODB_DATABASE" envDefault:"travel"`

	// DatabaseURL is the Postgres connection string, used when MongoURI is empty.
	DatabaseURL string `env:"DATABASE_URL"`

	Amadeus AmadeusConfig
	Places  PlacesConfig

	StripeSecretKey string `env:"STRIPE_SECRET_KEY"`

	BookingAffiliateID string `env:"BOOKING_AFFILIATE_ID"`
	ExpediaAffiliateID string `env:"EXPEDIA_AFFILIATE_ID"`

	// UpstreamTimeout bounds every outbound provider request.
	UpstreamTimeout time.Duration `env:"UPSTREAM_TIMEOUT" envDefault:"30s"`

	// ExternalRateLimit is the sustained requests/second allowed per client IP
	// on the /api/external proxies. ExternalRateBurst is the bucket size.
	ExternalRateLimit float64 `env:"EXTERNAL_RATE_LIMIT" envDefault:"5"`
	ExternalRateBurst int     `env:"EXTERNAL_RATE_BURST" envDefault:"10"`

	// MaxBodyBytes caps request bodies.
	MaxBodyBytes int64 `env:"MAX_BODY_BYTES" envDefault:"1048576"`

	// TrustProxyHeaders takes the client address from X-Forwarded-For and
	// X-Real-IP. Enable it only behind a proxy that overwrites those headers;
	// otherwise clients could pick their own rate-limit key.
	TrustProxyHeaders bool `env:"TRUST_PROXY_HEADERS" envDefault:"false"`
}

// AmadeusConfig holds the client-credentials pair and API host.
type AmadeusConfig struct {
	APIKey    string `env:"AMADEUS_API_KEY"`
	APISecret string `env:"AMADEUS_API_SECRET"`
	BaseURL   string `env:"AMADEUS_BASE_URL" envDefault:"https://test.api.amadeus.com"`
}

// Enabled reports whether both credentials are present.
func (a AmadeusConfig) Enabled() bool {
	return a.APIKey != "" && a.APISecret != ""
}

// PlacesConfig holds the Google Places key and API root.
type PlacesConfig struct {
	APIKey  string `env:"GOOGLE_PLACES_API_KEY"`
	BaseURL string `env:"GOOGLE_PLACES_BASE_URL" envDefault:"https://maps.googleapis.com/maps/api/place"`
}

// Load reads configuration from environment variables and returns a Config.
// Returns an error listing every problem found, not just the first.
func Load() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("parsing environment: %w", err)
	}

	cfg.CORSOrigins = trimAll(cfg.CORSOrigins)
	cfg.Amadeus.BaseURL = normalizeAmadeusBase(cfg.Amadeus.BaseURL)
	cfg.Places.BaseURL = strings.TrimRight(cfg.Places.BaseURL, "/")

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// validate aggregates every configuration problem into a single error.
func (c Config) validate() error {
	var problems []string

	if c.MongoURI == "" && c.DatabaseURL == "" {
		problems = append(problems, "one of MONGODB_URI or DATABASE_URL must be set")
	}
	if (c.Amadeus.APIKey == "") != (c.Amadeus.APISecret == "") {
		problems = append(problems, "AMADEUS_API_KEY and AMADEUS_API_SECRET must be set together")
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		problems = append(problems, fmt.Sprintf("LOG_LEVEL %q is not one of debug, info, warn, error", c.LogLevel))
	}
	if c.UpstreamTimeout <= 0 {
		problems = append(problems, "UPSTREAM_TIMEOUT must be positive")
	}
	if c.ExternalRateLimit <= 0 || c.ExternalRateBurst < 1 {
		problems = append(problems, "EXTERNAL_RATE_LIMIT and EXTERNAL_RATE_BURST must be positive")
	}
	if c.MaxBodyBytes <= 0 {
		problems = append(problems, "MAX_BODY_BYTES must be positive")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

// IsProduction reports whether error detail and debug routes must be hidden.
func (c Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}

// Store returns the destination backend to use. MongoDB wins when both are set.
func (c Config) Store() Store {
	if c.MongoURI != "" {
		return StoreMongo
	}
	return StorePostgres
}

// LoadDotEnv loads variables from every existing file among paths into the
// process environment. Variables that are already set are never overridden,
// so earlier files win over later ones.
// With no paths it looks for .env in the working directory and its parent.
// Missing files are not an error.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env", "../.env"}
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return fmt.Errorf("config.LoadDotEnv: %w", err)
		}
		if err := godotenv.Load(p); err != nil {
			return fmt.Errorf("config.LoadDotEnv: %s: %w", p, err)
		}
	}
	return nil
}

// normalizeAmadeusBase strips trailing slashes and a trailing /v1 so that
// versioned paths can be joined onto it.
func normalizeAmadeusBase(s string) string {
	s = strings.TrimRight(s, "/")
	s = strings.TrimSuffix(s, "/v1")
	return strings.TrimRight(s, "/")
}

// trimAll trims each entry and drops empty ones.
func trimAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, part := range in {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
