// Package main implements the Dataverse MCP server.
//
// The server exposes Dataverse Web API and Power Automate Flow API
// operations as tools over stdio JSON-RPC (Model Context Protocol).
// All diagnostics go to stderr; stdout carries the protocol stream.
package main

import (
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/mark3labs/mcp-go/server"

	"dataverse-mcp/internal/config"
	"dataverse-mcp/internal/mcpserver"
)

func run() int {
	errLogger := log.New(os.Stderr, "[dataverse-mcp] ", log.LstdFlags)
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	configPath := flag.String("config", "", "directory containing config.yaml (default: ~/.config/dataverse-mcp)")
	flag.Parse()

	path := *configPath
	if path == "" {
		var err error
		path, err = config.DefaultConfigPath()
		if err != nil {
			errLogger.Printf("Failed to resolve config path: %v", err)
			return 1
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		errLogger.Printf("Failed to load configuration: %v", err)
		return 1
	}
	slog.Info("configuration loaded",
		"orgUrl", cfg.OrgURL,
		"flowEnvironment", cfg.FlowEnvironmentID != "")

	srv, err := mcpserver.NewServer(cfg)
	if err != nil {
		errLogger.Printf("Failed to create MCP server: %v", err)
		return 1
	}

	if err := server.ServeStdio(srv, server.WithErrorLogger(errLogger)); err != nil {
		errLogger.Printf("Server error: %v", err)
		return 1
	}

	return 0
}

func main() {
	os.Exit(run())
}
