// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type BackendConfig struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// Timeout returns the per-call backend timeout.
func (b BackendConfig) Timeout() time.Duration {
	if b.TimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(b.TimeoutSeconds) * time.Second
}

type AdminConfig struct {
	Username     string `yaml:"username"`
	PasswordHash string `yaml:"-"` // Loaded from environment, bcrypt
	SessionHours int    `yaml:"session_hours"`
}

// SessionTTL returns how long an admin login stays valid.
func (a AdminConfig) SessionTTL() time.Duration {
	if a.SessionHours <= 0 {
		return 8 * time.Hour
	}
	return time.Duration(a.SessionHours) * time.Hour
}

type StatsConfig struct {
	RefreshSeconds int `yaml:"refresh_seconds"`
}

// RefreshInterval returns the dashboard stats refresh cadence.
func (s StatsConfig) RefreshInterval() time.Duration {
	if s.RefreshSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(s.RefreshSeconds) * time.Second
}

type Config struct {
	App struct {
		Name        string `yaml:"name"`
		Environment string `yaml:"environment"`
		Port        int    `yaml:"port"`
		BaseURL     string `yaml:"base_url"`
		SecretKey   string `yaml:"-"` // Loaded from environment
	} `yaml:"app"`

	Backend BackendConfig `yaml:"backend"`
	Admin   AdminConfig   `yaml:"admin"`
	Stats   StatsConfig   `yaml:"stats"`

	Features struct {
		EnableMetrics bool `yaml:"enable_metrics"`
		EnableDebug   bool `yaml:"enable_debug"`
	} `yaml:"features"`
}

// Load loads both .env and yaml configuration
func Load(configPath string) (*Config, error) {
	// Load .env file if it exists
	envPath := filepath.Join(filepath.Dir(configPath), ".env")
	if err := godotenv.Load(envPath); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	// Read and parse YAML config
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	// Load sensitive values from environment
	cfg.App.SecretKey = os.Getenv("APP_SECRET_KEY")
	cfg.Admin.PasswordHash = os.Getenv("ADMIN_PASSWORD_HASH")

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.App.Name == "" {
		return fmt.Errorf("app name is required")
	}
	if c.App.Port == 0 {
		return fmt.Errorf("app port is required")
	}
	if c.Backend.BaseURL == "" {
		return fmt.Errorf("backend base_url is required")
	}
	if c.Admin.Username == "" {
		return fmt.Errorf("admin username is required")
	}
	if c.Admin.PasswordHash == "" {
		return fmt.Errorf("ADMIN_PASSWORD_HASH must be set in the environment")
	}
	return nil
}
