package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	_ "time/tzdata" // birthday.timezone must resolve on hosts without zoneinfo

	"github.com/spf13/cobra"

	"github.com/jackzampolin/scrapbook/internal/config"
	"github.com/jackzampolin/scrapbook/internal/home"
	"github.com/jackzampolin/scrapbook/internal/server"
)

var (
	serveHost     string
	servePort     string
	serveLogLevel string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Scrapbook server",
	Long: `Start the Scrapbook HTTP server.

The server hosts the browser scrapbook and the JSON API behind it. The config
file is watched; edits to the birthday, chat provider or rate limit apply
without a restart.

The server provides:
  - /            - The scrapbook itself
  - /api/chat    - Chat replies from the configured provider
  - /health      - Basic server health check
  - /ready       - Readiness check (provider credential present)
  - /swagger/    - API documentation

Examples:
  scrapbook serve                    # Start on the configured port (default 8080)
  scrapbook serve --port 3000        # Start on custom port
  scrapbook serve --host 0.0.0.0     # Bind to all interfaces`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		logger, err := newLogger(serveLogLevel)
		if err != nil {
			return err
		}

		h, err := home.New(homeDir)
		if err != nil {
			return err
		}
		if err := h.EnsureExists(); err != nil {
			return err
		}

		cfgMgr, err := config.NewManager(cfgFile, h.Path())
		if err != nil {
			return err
		}
		cfgMgr.SetLogger(logger)

		cfg := cfgMgr.Get()
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}
		if f := cfgMgr.ConfigFile(); f != "" {
			logger.Info("loaded config", "file", f)
		} else {
			logger.Info("no config file found, using defaults", "hint", "scrapbook config init")
		}

		services, err := server.NewServices(cfg, server.ServicesConfig{
			Home:   h,
			Logger: logger,
		})
		if err != nil {
			return err
		}

		host, port := cfg.Server.Host, cfg.Server.Port
		if cmd.Flags().Changed("host") {
			host = serveHost
		}
		if cmd.Flags().Changed("port") {
			port = servePort
		}

		srv, err := server.New(server.Config{
			Host:          host,
			Port:          port,
			Services:      services,
			ConfigManager: cfgMgr,
			Logger:        logger,
		})
		if err != nil {
			return err
		}

		// Start server (blocks until shutdown)
		return srv.Start(ctx)
	},
}

// newLogger builds the text logger used by long-running commands.
func newLogger(level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.ToUpper(level))); err != nil {
		return nil, fmt.Errorf("invalid log level %q", level)
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: lvl,
	})), nil
}

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", "127.0.0.1", "Host to bind to (overrides server.host)")
	serveCmd.Flags().StringVar(&servePort, "port", "8080", "Port to listen on (overrides server.port)")
	serveCmd.Flags().StringVar(&serveLogLevel, "log-level", "info", "Log level: debug, info, warn or error")

	rootCmd.AddCommand(serveCmd)
}
