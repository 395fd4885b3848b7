// Package config loads and validates the storefront configuration from
// a YAML file and STOREFRONT_* environment variables.
package config

import (
	"fmt"
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/pkrstore/storefront-backend/pkg/logging"
)

// Config represents the application configuration
type Config struct {
	Server  ServerConfig   `yaml:"server" envconfig:"SERVER"`
	Storage StorageConfig  `yaml:"storage" envconfig:"STORAGE"`
	Logging logging.Config `yaml:"logging" envconfig:"LOGGING"`
	JWT     JWTConfig      `yaml:"jwt" envconfig:"JWT"`
	Admin   AdminConfig    `yaml:"admin" envconfig:"ADMIN"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host string `yaml:"host" envconfig:"HOST"`
	Port int    `yaml:"port" envconfig:"PORT"`
	// ServeHTTP controls whether the process binds a listener itself.
	// Disabled when an external host drives the router.
	ServeHTTP *bool `yaml:"serve_http" envconfig:"SERVE_HTTP"`
	// WebRoot is the directory holding the single-page frontend asset
	// served by the catch-all route.
	WebRoot string `yaml:"web_root" envconfig:"WEB_ROOT"`
}

// StorageConfig contains storage configuration
type StorageConfig struct {
	Type     string        `yaml:"type" envconfig:"TYPE"`           // memory, mongodb
	SeedDemo *bool         `yaml:"seed_demo" envconfig:"SEED_DEMO"` // pre-seed demo products
	MongoDB  MongoDBConfig `yaml:"mongodb" envconfig:"MONGODB"`
}

// MongoDBConfig contains MongoDB-specific configuration
type MongoDBConfig struct {
	URI       string `yaml:"uri" envconfig:"URI"`
	Database  string `yaml:"database" envconfig:"DATABASE"`
	Timeout   int    `yaml:"timeout" envconfig:"TIMEOUT"`       // connect timeout, seconds
	OpTimeout int    `yaml:"op_timeout" envconfig:"OP_TIMEOUT"` // per-operation timeout, seconds
}

// JWTConfig contains admin token configuration. Secret has no default:
// startup fails when it is unset.
type JWTConfig struct {
	Secret      string `yaml:"secret" envconfig:"SECRET"`
	ExpiryHours int    `yaml:"expiry_hours" envconfig:"EXPIRY_HOURS"`
	Issuer      string `yaml:"issuer" envconfig:"ISSUER"`
}

// AdminConfig contains the admin credentials. There is no user table;
// this is the only identity that can pass the admin gate. Multiple
// accepted passwords are allowed.
type AdminConfig struct {
	Email     string   `yaml:"email" envconfig:"EMAIL"`
	Passwords []string `yaml:"passwords" envconfig:"PASSWORDS"`
}

// Load loads configuration from file and environment variables
func Load(configFile string) (*Config, error) {
	cfg := defaultConfig()

	// Load from YAML file if provided (overrides defaults)
	if configFile != "" {
		data, err := os.ReadFile(configFile)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
			// File doesn't exist, that's ok - defaults and env vars apply
		} else {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config file: %w", err)
			}
		}
	}

	// Override with environment variables (highest priority)
	if err := envconfig.Process("STOREFRONT", cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// defaultConfig returns a Config with sensible default values.
// Credentials and the signing secret deliberately have none.
func defaultConfig() *Config {
	serveHTTP := true
	seedDemo := true
	return &Config{
		Server: ServerConfig{
			Host:      "0.0.0.0",
			Port:      5000,
			ServeHTTP: &serveHTTP,
			WebRoot:   "web",
		},
		Storage: StorageConfig{
			Type:     "memory",
			SeedDemo: &seedDemo,
			MongoDB: MongoDBConfig{
				URI:       "mongodb://localhost:27017",
				Database:  "storefront",
				Timeout:   10,
				OpTimeout: 5,
			},
		},
		Logging: logging.DefaultConfig(),
		JWT: JWTConfig{
			ExpiryHours: 24,
			Issuer:      "storefront-backend",
		},
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Storage.Type != "memory" && c.Storage.Type != "mongodb" {
		return fmt.Errorf("invalid storage type: %s (must be memory or mongodb)", c.Storage.Type)
	}

	if c.Storage.Type == "mongodb" && c.Storage.MongoDB.URI == "" {
		return fmt.Errorf("mongodb uri is required when using mongodb storage")
	}

	if c.JWT.Secret == "" {
		return fmt.Errorf("jwt secret is required")
	}

	if c.JWT.ExpiryHours < 1 {
		return fmt.Errorf("jwt expiry_hours must be at least 1")
	}

	if c.Admin.Email == "" {
		return fmt.Errorf("admin email is required")
	}

	if len(c.Admin.Passwords) == 0 {
		return fmt.Errorf("at least one admin password is required")
	}

	return nil
}

// DurableConfigured reports whether a durable store is configured.
func (c *Config) DurableConfigured() bool {
	return c.Storage.Type == "mongodb"
}

// SeedDemoEnabled reports whether demo products should be seeded.
func (c *StorageConfig) SeedDemoEnabled() bool {
	return c.SeedDemo == nil || *c.SeedDemo
}

// Address returns the server address
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Serve reports whether the process should bind its own listener.
func (c *ServerConfig) Serve() bool {
	return c.ServeHTTP == nil || *c.ServeHTTP
}
