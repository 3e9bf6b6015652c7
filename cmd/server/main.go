package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"agently-mcp/internal/catalog"
	"agently-mcp/internal/config"
	"agently-mcp/internal/handlers"
	"agently-mcp/internal/instrumentation"
	"agently-mcp/internal/mcp"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var transport, logLevel string

	cmd := &cobra.Command{
		Use:   "agently-mcp",
		Short: "MCP server for Agently agent discovery",
		Long: `Exposes the fetch_agents tool, which searches the public Agently catalog
by category, MIME modes, skill tags and sort order.

Configuration is read from the environment (AGENTLY_API_KEY, MCP_TRANSPORT,
LOG_LEVEL, ...); flags override it.`,
		Version:       mcp.ServerVersion,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadFromEnv()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("transport") {
				cfg.Transport = transport
			}
			if cmd.Flags().Changed("log-level") {
				cfg.LogLevel = logLevel
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}
			return run(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVar(&transport, "transport", config.TransportStdio, "transport to serve: stdio or http")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn or error")

	return cmd
}

func run(ctx context.Context, cfg *config.Config) error {
	// stdout carries the stdio protocol, so logs go to stderr
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))
	slog.SetDefault(logger)

	logger.Info("mcp_service_starting",
		"transport", cfg.Transport,
		"catalog_url", cfg.BaseURL+catalog.AgentsPath,
		"authenticated", cfg.APIKey != "",
		"metrics_port", cfg.MetricsPort,
	)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	metrics := instrumentation.NewMetrics()
	client := catalog.New(cfg.BaseURL, cfg.APIKey, logger)
	executor := mcp.NewToolExecutor(client, mcp.NewEnvelopeBuilder(nil), metrics)
	invoker, err := mcp.NewToolInvoker(executor, logger)
	if err != nil {
		return fmt.Errorf("create tool invoker: %w", err)
	}
	dispatcher := mcp.NewDispatcher(invoker)

	var servers []*http.Server
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		for _, srv := range servers {
			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Error("server_shutdown_error", "addr", srv.Addr, "error", err)
			}
		}
		logger.Info("mcp_service_stopped")
	}()

	errChan := make(chan error, 2)
	listen := func(srv *http.Server, name string) {
		servers = append(servers, srv)
		go func() {
			logger.Info("http_server_listening", "server", name, "addr", srv.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errChan <- fmt.Errorf("%s server: %w", name, err)
			}
		}()
	}

	if cfg.MetricsPort > 0 {
		listen(&http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.MetricsPort),
			Handler:           handlers.NewRouter(nil, metrics.Handler(), logger),
			ReadHeaderTimeout: 10 * time.Second,
		}, "metrics")
	}

	switch cfg.Transport {
	case config.TransportHTTP:
		mcpHandler := handlers.NewMCPInvokeHandler(dispatcher, logger)
		listen(&http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Port),
			Handler:           handlers.NewRouter(mcpHandler, nil, logger),
			ReadHeaderTimeout: 10 * time.Second,
		}, "mcp")

		select {
		case <-ctx.Done():
			logger.Info("shutdown_signal_received")
			return nil
		case err := <-errChan:
			return err
		}

	default:
		stdio := mcp.NewStdioServer(dispatcher, os.Stdin, os.Stdout, logger)
		go func() {
			errChan <- stdio.Serve(ctx)
		}()

		err := <-errChan
		if errors.Is(err, context.Canceled) {
			logger.Info("shutdown_signal_received")
			return nil
		}
		return err
	}
}
