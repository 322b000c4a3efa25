package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	mcpadapter "wordbrowse/internal/adapters/mcp"
	"wordbrowse/internal/app"
	"wordbrowse/internal/config"
)

func main() {
	configPath := flag.String("config", "", "path to the config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("wordbrowse-mcp: %v", err)
	}

	// stdout carries the protocol
	logger := app.NewLogger(cfg.Log, os.Stderr)
	svc := app.NewServices(cfg, logger)
	defer svc.Close()

	mcpServer := server.NewMCPServer(
		"wordbrowse-mcp",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(
		mcp.NewTool("ping",
			mcp.WithDescription("Health check, returns pong"),
		),
		func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("pong"), nil
		},
	)

	mcpadapter.RegisterTools(mcpServer, svc.Provider, svc.Cache)

	logger.Info("serving on stdio", "cache", svc.Cache.Path())
	if err := server.ServeStdio(mcpServer); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
