package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/arreyder/forms-mcp/internal/config"
	"github.com/arreyder/forms-mcp/internal/forms"
	"github.com/arreyder/forms-mcp/internal/formtools"
	"github.com/arreyder/forms-mcp/internal/logging"
	"github.com/arreyder/forms-mcp/internal/mcpserver"
)

const (
	serverName    = "google-forms-mcp"
	serverVersion = "0.1.0"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "forms-mcp-server: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}
	// stdout carries the MCP stream.
	logger := logging.New(os.Stderr, level, cfg.Log.Format)

	client, err := forms.Dial(ctx, cfg.ClientSettings())
	if err != nil {
		return err
	}
	dispatcher, err := formtools.NewDispatcher(client, logger)
	if err != nil {
		return err
	}

	server := mcpserver.New(serverName, serverVersion, dispatcher, logger)
	if err := server.ServeStdio(ctx); err != nil && ctx.Err() == nil {
		return fmt.Errorf("serving MCP: %w", err)
	}
	logger.Info("forms MCP server stopped")
	return nil
}
