// builtwith-mcp exposes the BuiltWith technology-intelligence API as MCP
// tools and prompts over a stdio session or a streamable HTTP listener.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/builtwith/builtwith-mcp/internal/app"
	"github.com/builtwith/builtwith-mcp/internal/common"
	"github.com/builtwith/builtwith-mcp/internal/config"
)

func main() {
	configFile := flag.String("config", "builtwith-mcp.toml", "Path to config file")
	transport := flag.String("transport", "", "Transport mode: stdio or http (overrides config)")
	port := flag.Int("port", 0, "HTTP listen port (overrides config)")
	showVersion := flag.Bool("version", false, "Print version information")
	flag.Parse()

	if *showVersion {
		fmt.Printf("builtwith-mcp %s\n", config.GetFullVersion())
		os.Exit(0)
	}

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}
	config.ApplyFlagOverrides(cfg, *transport, *port)

	// On stdio, stdout belongs to the protocol; the logger writes to
	// stderr and the log file only.
	logger := common.NewLoggerFromConfig(cfg.Logging)

	application := app.New(cfg, logger)
	if err := application.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}
