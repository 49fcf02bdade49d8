// Package config loads the application configuration from YAML and the environment.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultPath is used when no -config flag is given.
const DefaultPath = "configs/config.yaml"

// Config structure represents the application configuration
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	Feed     FeedConfig     `yaml:"feed"`
	Media    MediaConfig    `yaml:"media"`
	Logging  LoggingConfig  `yaml:"logging"`
}

type ServerConfig struct {
	Port string `yaml:"port" env:"SERVER_PORT"`
	// Mode is the gin mode: debug, release or test.
	Mode string `yaml:"mode" env:"SERVER_MODE"`
	// AllowedOrigins is a comma separated CORS allow list. Empty disables CORS headers.
	AllowedOrigins  string        `yaml:"allowed_origins" env:"SERVER_ALLOWED_ORIGINS"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env:"SERVER_READ_TIMEOUT"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"SERVER_WRITE_TIMEOUT"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" env:"SERVER_IDLE_TIMEOUT"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT"`
}

type DatabaseConfig struct {
	// Driver is sqlite or postgres.
	Driver string `yaml:"driver" env:"DB_DRIVER"`
	// DSN is a file path for sqlite or a connection URL for postgres.
	DSN string `yaml:"dsn" env:"DB_DSN"`
}

type AuthConfig struct {
	Secret       string        `yaml:"secret" env:"AUTH_SECRET"`
	TokenTTL     time.Duration `yaml:"token_ttl" env:"AUTH_TOKEN_TTL"`
	CookieName   string        `yaml:"cookie_name" env:"AUTH_COOKIE_NAME"`
	SecureCookie bool          `yaml:"secure_cookie" env:"AUTH_SECURE_COOKIE"`
}

type FeedConfig struct {
	PageSize int `yaml:"page_size" env:"FEED_PAGE_SIZE"`
}

type MediaConfig struct {
	Root      string `yaml:"root" env:"MEDIA_ROOT"`
	URLPrefix string `yaml:"url_prefix" env:"MEDIA_URL_PREFIX"`
}

type LoggingConfig struct {
	Level string `yaml:"level" env:"LOG_LEVEL"`
}

// Load loads configuration from a file and environment variables.
// A missing file is not an error; defaults and the environment still apply.
func Load(configPath string) (*Config, error) {
	config := Default()

	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	// Override with environment variables
	if err := processStructFields(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// Default returns the configuration used before the file and environment are applied.
func Default() *Config {
	config := &Config{}

	config.Server.Port = "8080"
	config.Server.Mode = "debug"
	config.Server.ReadTimeout = 10 * time.Second
	config.Server.WriteTimeout = 10 * time.Second
	config.Server.IdleTimeout = 120 * time.Second
	config.Server.ShutdownTimeout = 10 * time.Second

	config.Database.Driver = "sqlite"
	config.Database.DSN = "data/yatube.db"

	config.Auth.TokenTTL = 14 * 24 * time.Hour
	config.Auth.CookieName = "session"

	config.Feed.PageSize = 10

	config.Media.Root = "media"
	config.Media.URLPrefix = "/media"

	config.Logging.Level = "info"

	return config
}

// Validate ensures that the configuration is usable.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("database driver must be sqlite or postgres, got %q", c.Database.Driver)
	}

	if c.Database.DSN == "" {
		return fmt.Errorf("database dsn is required")
	}

	if c.Auth.Secret == "" {
		return fmt.Errorf("auth secret is required")
	}

	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("auth token ttl must be positive")
	}

	if c.Auth.CookieName == "" {
		return fmt.Errorf("auth cookie name is required")
	}

	if c.Feed.PageSize < 1 {
		return fmt.Errorf("feed page size must be at least 1, got %d", c.Feed.PageSize)
	}

	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("server mode must be debug, release or test, got %q", c.Server.Mode)
	}

	return nil
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Server.Port
}

// Origins splits the CORS allow list.
func (c *ServerConfig) Origins() []string {
	var origins []string
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
