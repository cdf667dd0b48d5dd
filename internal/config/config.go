package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/builtwith/builtwith-mcp/internal/common"
)

// Config represents the application configuration.
type Config struct {
	Server    ServerConfig         `toml:"server"`
	BuiltWith BuiltWithConfig      `toml:"builtwith"`
	Logging   common.LoggingConfig `toml:"logging"`
}

// ServerConfig contains transport and HTTP listener settings.
type ServerConfig struct {
	Name           string   `toml:"name"`
	Transport      string   `toml:"transport"` // "stdio" (default) or "http"
	Host           string   `toml:"host"`
	Port           int      `toml:"port"`
	AllowedOrigins []string `toml:"allowed_origins"`
}

// BuiltWithConfig contains upstream BuiltWith API settings.
type BuiltWithConfig struct {
	APIKey string `toml:"api_key"` // fallback key; HTTP requests may carry their own
	Host   string `toml:"host"`
}

// Addr returns the listen address for the HTTP transport.
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Load loads configuration with priority: defaults -> file -> env.
// A missing config file is not an error; defaults and env still apply.
func Load(path string) (*Config, error) {
	config := NewDefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
			}
		} else if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies BUILTWITH_* environment variable overrides to config.
func applyEnvOverrides(config *Config) {
	if key := os.Getenv("BUILTWITH_API_KEY"); key != "" {
		config.BuiltWith.APIKey = key
	}
	if host := os.Getenv("BUILTWITH_API_HOST"); host != "" {
		config.BuiltWith.Host = host
	}
	if transport := os.Getenv("BUILTWITH_TRANSPORT"); transport != "" {
		config.Server.Transport = transport
	}
	if host := os.Getenv("BUILTWITH_HOST"); host != "" {
		config.Server.Host = host
	}
	if port := os.Getenv("BUILTWITH_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if origins := os.Getenv("BUILTWITH_ALLOWED_ORIGINS"); origins != "" {
		config.Server.AllowedOrigins = SplitOrigins(origins)
	}
	if level := os.Getenv("BUILTWITH_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
}

// ApplyFlagOverrides applies command-line flag overrides to config.
func ApplyFlagOverrides(config *Config, transport string, port int) {
	if transport != "" {
		config.Server.Transport = transport
	}
	if port > 0 {
		config.Server.Port = port
	}
}

// SplitOrigins parses a comma-separated origin allowlist, trimming
// whitespace and dropping empty entries.
func SplitOrigins(s string) []string {
	var origins []string
	for _, o := range strings.Split(s, ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
