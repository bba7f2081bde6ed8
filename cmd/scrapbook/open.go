package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/scrapbook/internal/api"
	"github.com/jackzampolin/scrapbook/internal/chatsession"
	"github.com/jackzampolin/scrapbook/internal/config"
	"github.com/jackzampolin/scrapbook/internal/home"
	"github.com/jackzampolin/scrapbook/internal/locale"
	"github.com/jackzampolin/scrapbook/internal/server"
	"github.com/jackzampolin/scrapbook/internal/server/endpoints"
	"github.com/jackzampolin/scrapbook/internal/tui"
)

var (
	openServer  string
	openLogFile string
)

var openCmd = &cobra.Command{
	Use:   "open",
	Short: "Open the scrapbook in the terminal",
	Long: `Open the scrapbook in the terminal.

By default the chat provider is called directly using the local config.
With --server the pages, greeting and chat replies come from a running
'scrapbook serve' instead.

The transcript is saved to the home directory when you quit, if you said
anything.

Examples:
  scrapbook open
  scrapbook open --server http://localhost:8080`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		logger, closeLog, err := openLogger(openLogFile)
		if err != nil {
			return err
		}
		defer closeLog()

		h, err := home.New(homeDir)
		if err != nil {
			return err
		}

		var cfg tui.Config
		if openServer != "" {
			cfg, err = remoteTUIConfig(cmd, logger)
		} else {
			cfg, err = localTUIConfig(h, logger)
		}
		if err != nil {
			return err
		}
		cfg.Home = h
		cfg.Logger = logger

		return tui.Run(ctx, cfg)
	},
}

// localTUIConfig builds the services in-process, as the server would.
func localTUIConfig(h *home.Dir, logger *slog.Logger) (tui.Config, error) {
	cfgMgr, err := config.NewManager(cfgFile, h.Path())
	if err != nil {
		return tui.Config{}, err
	}
	cfg := cfgMgr.Get()
	if err := cfg.Validate(); err != nil {
		return tui.Config{}, fmt.Errorf("invalid config: %w", err)
	}

	services, err := server.NewServices(cfg, server.ServicesConfig{Home: h, Logger: logger})
	if err != nil {
		return tui.Config{}, err
	}

	builder := services.Birthday.Get()
	tr := builder.Localizer()
	session := chatsession.New(services.Gateway,
		chatsession.WithGreeting(builder.OpeningGreeting()),
		chatsession.WithApologies(tr.T(locale.MsgChatApology, nil), tr.T(locale.MsgChatOffline, nil)),
		chatsession.WithLogger(logger),
	)

	return tui.Config{
		Pages:     services.Pages,
		Session:   session,
		Localizer: tr,
	}, nil
}

// remoteTUIConfig fetches pages and strings from a running server and sends
// chat turns to it.
func remoteTUIConfig(cmd *cobra.Command, logger *slog.Logger) (tui.Config, error) {
	ctx := cmd.Context()
	client := api.NewClient(openServer)

	if err := client.WaitReady(ctx, 5*time.Second); err != nil {
		return tui.Config{}, fmt.Errorf("server at %s is not reachable: %w", openServer, err)
	}

	var greeting endpoints.GreetingResponse
	if err := client.Get(ctx, "/api/chat/greeting", &greeting); err != nil {
		return tui.Config{}, err
	}
	var list endpoints.ListPagesResponse
	if err := client.Get(ctx, "/api/pages", &list); err != nil {
		return tui.Config{}, err
	}

	catalog, err := locale.New(logger)
	if err != nil {
		return tui.Config{}, err
	}

	session := chatsession.New(chatsession.NewRemote(client),
		chatsession.WithGreeting(greeting.Message),
		chatsession.WithApologies(greeting.Apology, greeting.Offline),
		chatsession.WithLogger(logger),
	)

	return tui.Config{
		Pages:     list.Pages,
		Session:   session,
		Localizer: catalog.Localizer(greeting.Locale),
	}, nil
}

// openLogger writes to file when one is given. The terminal belongs to the
// UI, so logs are dropped otherwise.
func openLogger(path string) (*slog.Logger, func(), error) {
	if path == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return logger, func() { f.Close() }, nil
}

func init() {
	openCmd.Flags().StringVar(&openServer, "server", "", "Use a running server instead of calling the provider directly")
	openCmd.Flags().StringVar(&openLogFile, "log-file", "", "Write debug logs to this file")

	rootCmd.AddCommand(openCmd)
}
