package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/alexjbarnes/plex-signin/internal/plex"
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds all environment-based configuration for plex-signin.
type Config struct {
	// ClientIdentifier identifies this installation to plex.tv. When empty
	// a UUID is generated on first run and kept in the state database.
	ClientIdentifier string `env:"PLEX_CLIENT_IDENTIFIER"`

	// Product is the application name shown on the approval page.
	Product string `env:"PLEX_PRODUCT" envDefault:"plex-signin"`

	// BundleID is passed as clientID in the approval URL.
	BundleID string `env:"PLEX_BUNDLE_ID" envDefault:"com.alexjbarnes.plex-signin"`

	APIURL string `env:"PLEX_API_URL" envDefault:"https://plex.tv"`
	AppURL string `env:"PLEX_APP_URL" envDefault:"https://app.plex.tv"`

	// PollInterval is the fixed delay between pin checks.
	PollInterval time.Duration `env:"PLEX_POLL_INTERVAL" envDefault:"1s"`

	// SecretBackend selects where the token lives: "keyring" (OS keychain)
	// or "state" (the state database, for headless hosts).
	SecretBackend  string `env:"SECRET_BACKEND" envDefault:"keyring"`
	KeyringService string `env:"KEYRING_SERVICE" envDefault:"plex-signin"`

	// StatePath overrides ~/.plex-signin/state.db.
	StatePath string `env:"STATE_PATH"`

	// Environment controls log format
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL"`
}

// warnInsecureEnvFile checks whether the .env file (if present) has
// overly permissive permissions. On Unix systems, group or world
// readable files risk exposing credentials to other users.
func warnInsecureEnvFile() {
	if runtime.GOOS == "windows" {
		return
	}

	info, err := os.Stat(".env")
	if err != nil {
		return // file does not exist, nothing to check
	}

	mode := info.Mode().Perm()
	if mode&0o077 != 0 {
		log.Printf("WARNING: .env file has insecure permissions %04o; recommended 0600", mode)
	}
}

// Load reads configuration from environment variables.
// It first attempts to load a .env file if present, then parses env vars.
func Load() (*Config, error) {
	_ = godotenv.Load()

	warnInsecureEnvFile()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	if cfg.StatePath != "" {
		abs, err := filepath.Abs(cfg.StatePath)
		if err != nil {
			return nil, fmt.Errorf("resolving state path to absolute path: %w", err)
		}

		cfg.StatePath = abs
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Product == "" {
		return fmt.Errorf("PLEX_PRODUCT must not be empty")
	}

	if err := validateURL(c.APIURL); err != nil {
		return fmt.Errorf("PLEX_API_URL: %w", err)
	}

	if err := validateURL(c.AppURL); err != nil {
		return fmt.Errorf("PLEX_APP_URL: %w", err)
	}

	if c.PollInterval <= 0 {
		return fmt.Errorf("PLEX_POLL_INTERVAL must be positive, got %s", c.PollInterval)
	}

	switch c.SecretBackend {
	case "keyring", "state":
	default:
		return fmt.Errorf("SECRET_BACKEND must be keyring or state, got %q", c.SecretBackend)
	}

	return nil
}

func validateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("scheme must be http or https, got %q", u.Scheme)
	}

	if u.Host == "" {
		return fmt.Errorf("URL must include a host")
	}

	return nil
}

// Identity returns the application identity for API requests. The client
// identifier is the configured one, or fallback when none is configured.
func (c *Config) Identity(fallback string) plex.Identity {
	id := c.ClientIdentifier
	if id == "" {
		id = fallback
	}

	return plex.Identity{
		ClientIdentifier: id,
		Product:          c.Product,
		BundleID:         c.BundleID,
	}
}

// IsProduction returns true when the environment is set to production.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
