// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the scriptdoc CLI.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/scriptdoc/internal/config"
	"github.com/pdiddy/scriptdoc/internal/logging"
	"github.com/pdiddy/scriptdoc/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// settings holds the configuration layers: defaults, file, environment and
// bound flags.
var settings = config.New()

// rootCmd is the base command for the scriptdoc CLI.
var rootCmd = &cobra.Command{
	Use:   "scriptdoc",
	Short: "Turn annotated scripts into Markdown guides and notebooks",
	Long: `scriptdoc converts annotated scripts into documentation. Prose comments
("// text") become Markdown paragraphs, section comments ("// # Title") start
new sections and everything else is copied into code blocks.

Each script of the input directory is written as a Markdown page, a notebook
or a slideshow notebook, depending on which destination folders the
scriptdoc.properties file configures.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file (default: ./scriptdoc.properties or ~/.config/scriptdoc/)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("input-dir", "", "directory containing the scripts (default: input.dir setting)")
	_ = settings.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = settings.BindPFlag("input.dir", rootCmd.PersistentFlags().Lookup("input-dir"))
}

// readSettings reads the config file named by --config, or the default one.
func readSettings(cmd *cobra.Command) (*viper.Viper, error) {
	cfgFile, _ := cmd.Flags().GetString("config")
	used, err := config.ReadFile(settings, cfgFile, ".")
	if err != nil {
		return nil, err
	}
	if used != "" {
		fmt.Fprintln(os.Stderr, "Using config file:", used)
	}
	return settings, nil
}

// loadConfig reads and validates the configuration. Any error is fatal for
// the command: no script is processed with an incomplete configuration.
func loadConfig(cmd *cobra.Command) (types.Config, error) {
	v, err := readSettings(cmd)
	if err != nil {
		return types.Config{}, err
	}
	return config.Load(v)
}

func newLogger(cfg types.Config) (*slog.Logger, error) {
	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	return logging.New(os.Stderr, level), nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
