package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config is the on-disk CLI configuration. All fields are optional;
// flags override config values, which override built-in defaults.
type Config struct {
	Cache  CacheConfig  `toml:"cache"`
	Server ServerConfig `toml:"server"`
	Render RenderConfig `toml:"render"`
}

// CacheConfig configures the artifact cache.
type CacheConfig struct {
	// Dir overrides the XDG cache directory for the file cache.
	Dir string `toml:"dir"`

	// RedisAddr switches the serve command to a redis cache when set
	// (host:port).
	RedisAddr string `toml:"redis_addr"`

	// RedisPassword authenticates against redis when required.
	RedisPassword string `toml:"redis_password"`

	// RedisDB selects the redis database number.
	RedisDB int `toml:"redis_db"`
}

// ServerConfig configures the serve command.
type ServerConfig struct {
	// Addr is the listen address (default ":8080").
	Addr string `toml:"addr"`

	// MongoURI switches the serve command to MongoDB persistence when
	// set; otherwise records live in memory.
	MongoURI string `toml:"mongo_uri"`

	// MongoDB is the database name (default "ism").
	MongoDB string `toml:"mongo_db"`
}

// RenderConfig configures default rendering behavior.
type RenderConfig struct {
	// Formats is the default format list for the render command.
	Formats []string `toml:"formats"`

	// Detailed includes descriptions and powers in diagram labels.
	Detailed bool `toml:"detailed"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:    ":8080",
			MongoDB: appName,
		},
		Render: RenderConfig{
			Formats: []string{"svg"},
		},
	}
}

// ConfigPath returns the config file location, honoring XDG_CONFIG_HOME
// (default ~/.config/ism/config.toml).
func ConfigPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// LoadConfig reads a TOML config file, layering it over the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadConfigOrDefault loads the config file if present and falls back
// to defaults when it is missing or unreadable.
func LoadConfigOrDefault() *Config {
	path, err := ConfigPath()
	if err != nil {
		return DefaultConfig()
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		return DefaultConfig()
	}
	return cfg
}
