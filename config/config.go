// Package config defines the application configuration structures.
//
// Settings are stored in ~/.propchat/config.json. API keys and a few
// overrides can also come from environment variables (a .env file is
// honored via godotenv). Separated from cmd so that other packages
// (chat, store, server, tui) can depend on config without importing
// Cobra.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Storage backend names.
const (
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
)

// Config holds all application settings.
type Config struct {
	API      APIConfig      `json:"api"`
	Chat     ChatConfig     `json:"chat"`
	Database DatabaseConfig `json:"database"`

	// Models maps a short key ("qwen") to a model definition.
	Models map[string]Model `json:"models"`

	// DefaultModel is the key of the model used when none is selected.
	DefaultModel string `json:"default_model"`

	// Tenants maps a short key ("casagrand") to a tenant definition.
	Tenants map[string]Tenant `json:"tenants"`

	// DefaultTenant is the key of the tenant bound at startup.
	DefaultTenant string `json:"default_tenant"`
}

// APIConfig holds the completion endpoint settings.
type APIConfig struct {
	URL            string `json:"url"`
	Key            string `json:"key,omitempty"`
	TimeoutSeconds int    `json:"timeout_seconds"`
}

// Timeout returns the request timeout as a duration.
func (a APIConfig) Timeout() time.Duration {
	if a.TimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(a.TimeoutSeconds) * time.Second
}

// ChatConfig bounds the pipeline.
type ChatConfig struct {
	// MaxRetries is the SQL correction budget per turn.
	MaxRetries int `json:"max_retries"`

	// MaxHistory caps the conversation log (oldest turns dropped first).
	MaxHistory int `json:"max_history"`

	// RouterWindow is how many trailing turns the router sees.
	RouterWindow int `json:"router_window"`
}

// DatabaseConfig selects and configures the storage backend.
type DatabaseConfig struct {
	Backend string `json:"backend"` // "sqlite" or "postgres"

	// SQLite settings.
	Path string `json:"path,omitempty"` // defaults to ~/.propchat/real_estate.db

	// Postgres settings.
	Host     string    `json:"host,omitempty"`
	Port     int       `json:"port,omitempty"`
	User     string    `json:"user,omitempty"`
	Password string    `json:"password,omitempty"`
	Name     string    `json:"name,omitempty"`
	SSLMode  string    `json:"ssl_mode,omitempty"`
	SSH      SSHConfig `json:"ssh,omitempty"`
}

// SSHConfig holds SSH tunnel settings for remote Postgres servers.
type SSHConfig struct {
	Enabled       bool   `json:"enabled,omitempty"`
	Host          string `json:"host,omitempty"`
	Port          int    `json:"port,omitempty"`
	User          string `json:"user,omitempty"`
	KeyPath       string `json:"key_path,omitempty"`
	KeyPassphrase string `json:"key_passphrase,omitempty"`
}

// DSN builds a pgx-compatible connection string. When the SSH tunnel is
// active the caller overrides Host/Port with the local tunnel endpoint.
func (d DatabaseConfig) DSN() string {
	return "host=" + d.Host +
		" port=" + strconv.Itoa(d.Port) +
		" user=" + d.User +
		" password=" + d.Password +
		" dbname=" + d.Name +
		" sslmode=" + d.SSLMode
}

// Dir returns the per-user configuration directory (~/.propchat),
// creating it if needed.
func Dir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(homeDir, ".propchat")
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", err
	}
	return dir, nil
}

// Load reads ~/.propchat/config.json, applies environment overrides and
// returns defaults if the file does not exist.
func Load() (*Config, error) {
	// .env is optional; ignore a missing file.
	_ = godotenv.Load()

	cfg := Default()

	if dir, err := Dir(); err == nil {
		path := filepath.Join(dir, "config.json")
		data, err := os.ReadFile(path)
		if err == nil {
			if err := json.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, err
		}
	}

	// Env vars override file config.
	if key := os.Getenv("OPENROUTER_API_KEY"); key != "" {
		cfg.API.Key = key
	}
	if url := os.Getenv("OPENROUTER_API_URL"); url != "" {
		cfg.API.URL = url
	}
	if path := os.Getenv("PROPCHAT_DB"); path != "" {
		cfg.Database.Path = path
	}
	if model := os.Getenv("PROPCHAT_MODEL"); model != "" {
		cfg.DefaultModel = model
	}

	if cfg.Database.Path == "" {
		if dir, err := Dir(); err == nil {
			cfg.Database.Path = filepath.Join(dir, "real_estate.db")
		} else {
			cfg.Database.Path = "real_estate.db"
		}
	}

	return cfg, nil
}

// Save writes the config to ~/.propchat/config.json.
func Save(cfg *Config) error {
	dir, err := Dir()
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, "config.json"), data, 0600)
}

// Validate checks that the settings required for serving traffic are set.
func (c *Config) Validate() error {
	if c.API.Key == "" {
		return fmt.Errorf("API key not set. Set OPENROUTER_API_KEY or add it to ~/.propchat/config.json")
	}
	if _, err := c.Model(c.DefaultModel); err != nil {
		return err
	}
	if _, err := c.Tenant(c.DefaultTenant); err != nil {
		return err
	}
	return nil
}
