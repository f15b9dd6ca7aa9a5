package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mj1618/windows-mcp/internal/config"
	"github.com/mj1618/windows-mcp/internal/logger"
	"github.com/mj1618/windows-mcp/internal/server"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start a Model Context Protocol (MCP) server exposing the desktop tools.

Supported transports:
  stdio             Standard I/O (default, for local MCP clients)
  streamable-http   Streamable HTTP at /mcp, with /healthz and /metrics

Examples:
  windows-mcp serve
  windows-mcp serve --transport streamable-http --addr 127.0.0.1:8000
  windows-mcp serve --fixture sample`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("transport", string(config.TransportStdio), "Transport: stdio, streamable-http")
	serveCmd.Flags().String("addr", "127.0.0.1:8000", "Listen address for streamable-http")
	_ = v.BindPFlag("server.transport", serveCmd.Flags().Lookup("transport"))
	_ = v.BindPFlag("server.addr", serveCmd.Flags().Lookup("addr"))
}

func runServe(cmd *cobra.Command, _ []string) error {
	session, err := newSession()
	if err != nil {
		return err
	}
	srv := server.New(session, server.Options{Image: cfg.ImageOptions()})

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log := logger.WithComponent("serve")
	log.Info().
		Str("transport", string(cfg.Server.Transport)).
		Dur("capture_timeout", cfg.Capture.Timeout).
		Msg("starting MCP server")

	switch cfg.Server.Transport {
	case config.TransportStdio:
		return srv.ServeStdio(ctx, os.Stdin, os.Stdout)
	case config.TransportHTTP:
		return srv.ServeHTTP(ctx, cfg.Server.Addr)
	default:
		return fmt.Errorf("unsupported transport: %s (use stdio or streamable-http)", cfg.Server.Transport)
	}
}
