package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/scrapbook/internal/api"
	"github.com/jackzampolin/scrapbook/internal/birthday"
	"github.com/jackzampolin/scrapbook/internal/config"
	"github.com/jackzampolin/scrapbook/internal/home"
	"github.com/jackzampolin/scrapbook/internal/pages"
)

var (
	initForce   bool
	initPages   bool
	initPersona bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the scrapbook configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starting config to the home directory",
	Long: `Write config.yaml to the scrapbook home directory.

With --pages the built-in page file is written next to it as pages.yaml,
and with --persona the built-in persona template as persona.tmpl. Both are
picked up automatically when present.

Existing files are left alone unless --force is given.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := home.New(homeDir)
		if err != nil {
			return err
		}
		if err := h.EnsureExists(); err != nil {
			return err
		}

		if err := writeUnlessExists(h.ConfigPath(), config.WriteDefault); err != nil {
			return err
		}

		if initPages {
			err := writeUnlessExists(h.PagesPath(), func(path string) error {
				return os.WriteFile(path, pages.DefaultYAML(), 0o644)
			})
			if err != nil {
				return err
			}
		}

		if initPersona {
			err := writeUnlessExists(h.PersonaPath(), func(path string) error {
				data, err := birthday.PersonaTemplate(config.DefaultConfig().Birthday.Locale)
				if err != nil {
					return err
				}
				return os.WriteFile(path, data, 0o644)
			})
			if err != nil {
				return err
			}
		}
		return nil
	},
}

func writeUnlessExists(path string, write func(string) error) error {
	if _, err := os.Stat(path); err == nil && !initForce {
		fmt.Printf("Exists, skipping: %s\n", path)
		return nil
	}
	if err := write(path); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	fmt.Printf("Wrote %s\n", path)
	return nil
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := home.New(homeDir)
		if err != nil {
			return err
		}
		cfgMgr, err := config.NewManager(cfgFile, h.Path())
		if err != nil {
			return err
		}
		if !api.IsStructuredOutput() {
			return api.OutputAs(api.OutputFormatYAML, cfgMgr.Get())
		}
		return api.Output(cfgMgr.Get())
	},
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the config and page file",
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := home.New(homeDir)
		if err != nil {
			return err
		}
		cfgMgr, err := config.NewManager(cfgFile, h.Path())
		if err != nil {
			return err
		}
		cfg := cfgMgr.Get()
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}

		path := cfg.Pages.Path
		if path == "" && h.PagesExists() {
			path = h.PagesPath()
		}
		list, err := pages.Load(path)
		if err != nil {
			return err
		}

		if path == "" {
			path = "built-in"
		}
		fmt.Printf("Config OK (%s)\n", orDefault(cfgMgr.ConfigFile(), "defaults"))
		fmt.Printf("Pages OK (%s, %d pages)\n", path, len(list))
		return nil
	},
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func init() {
	configInitCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite existing files")
	configInitCmd.Flags().BoolVar(&initPages, "pages", false, "Also write the built-in pages.yaml")
	configInitCmd.Flags().BoolVar(&initPersona, "persona", false, "Also write the built-in persona.tmpl")

	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configValidateCmd)
	rootCmd.AddCommand(configCmd)
}
