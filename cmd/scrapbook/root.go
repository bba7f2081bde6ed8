package main

import (
	"github.com/spf13/cobra"

	"github.com/jackzampolin/scrapbook/internal/api"
	"github.com/jackzampolin/scrapbook/version"
)

var (
	cfgFile      string
	homeDir      string
	outputFormat string
)

var rootCmd = &cobra.Command{
	Use:   "scrapbook",
	Short: "A birthday scrapbook with a chatbot that knows what day it is",
	Long: `Scrapbook serves an interactive birthday scrapbook: a book of pages
you can flip through and a chat with an assistant who speaks on behalf of
the person who made it.

The assistant's instructions are rebuilt on every message from the current
date and time in the configured time zone, so it always knows how many days
are left until the birthday.

Run it in a browser with 'scrapbook serve' or in the terminal with
'scrapbook open'.`,
	Version:      version.GitRelease,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./config.yaml or ~/.scrapbook/config.yaml)",
	)
	rootCmd.PersistentFlags().StringVar(
		&homeDir, "home", "", "scrapbook home directory (default: ~/.scrapbook)",
	)
	rootCmd.PersistentFlags().StringVarP(
		&outputFormat, "output", "o", "text", "output format: text, yaml or json",
	)

	// Set output format before any command runs
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		api.SetOutputFormat(outputFormat)
	}

	rootCmd.AddCommand(versionCmd)
}
