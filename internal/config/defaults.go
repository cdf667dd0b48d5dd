package config

import "github.com/builtwith/builtwith-mcp/internal/common"

// NewDefaultConfig creates a configuration with default values.
// The HTTP transport binds to loopback only; exposing the listener
// beyond localhost is an explicit operator decision.
func NewDefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Name:           "builtwith-mcp",
			Transport:      "stdio",
			Host:           "127.0.0.1",
			Port:           8787,
			AllowedOrigins: []string{},
		},
		BuiltWith: BuiltWithConfig{
			Host: "api.builtwith.com",
		},
		Logging: common.LoggingConfig{
			Level:      "info",
			Outputs:    []string{"console", "file"},
			FilePath:   "logs/builtwith-mcp.log",
			MaxSizeMB:  100,
			MaxBackups: 3,
		},
	}
}
