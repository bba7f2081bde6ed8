package main

import (
	"github.com/spf13/cobra"

	"github.com/jackzampolin/scrapbook/internal/server/endpoints"
)

var serverURL string

var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Commands that call the running server",
	Long: `API commands call the running Scrapbook server via HTTP.

These commands require a running server (scrapbook serve).
Use --server to specify a custom server URL.

Examples:
  scrapbook api health               # Check server health
  scrapbook api chat send "halo"     # One chat turn
  scrapbook api pages list           # List the pages
  scrapbook api birthday context     # Countdown and time of day`,
}

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Chat commands",
}

var pagesCmd = &cobra.Command{
	Use:   "pages",
	Short: "Page and scene commands",
}

var birthdayCmd = &cobra.Command{
	Use:   "birthday",
	Short: "Birthday context, calendar and prompt commands",
}

// getServerURL returns the server URL at runtime (after flag parsing).
func getServerURL() string {
	return serverURL
}

func init() {
	// Persistent so all subcommands inherit it
	apiCmd.PersistentFlags().StringVar(
		&serverURL, "server", "http://localhost:8080", "Server URL",
	)

	for _, ep := range endpoints.TopLevelCommands() {
		apiCmd.AddCommand(ep.Command(getServerURL))
	}
	for _, ep := range endpoints.ChatCommands() {
		chatCmd.AddCommand(ep.Command(getServerURL))
	}
	for _, ep := range endpoints.PageCommands() {
		pagesCmd.AddCommand(ep.Command(getServerURL))
	}
	for _, ep := range endpoints.BirthdayCommands() {
		birthdayCmd.AddCommand(ep.Command(getServerURL))
	}

	apiCmd.AddCommand(chatCmd)
	apiCmd.AddCommand(pagesCmd)
	apiCmd.AddCommand(birthdayCmd)
	rootCmd.AddCommand(apiCmd)
}
