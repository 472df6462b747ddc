// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/pdiddy/scriptdoc/internal/cache"
	"github.com/pdiddy/scriptdoc/internal/convert"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Convert every script into the configured output formats",
	Long: `Generate lists the scripts of the input directory, converts each into
every configured output kind (markdown, notebook, slideshow) and prints an
index listing of the written documents, one "N. [title](folder/file)" line
per document.

With a cache configured, scripts whose content and settings did not change
since the last run are skipped. Use --force to rewrite everything.`,
	RunE: runGenerate,
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}

	force, _ := cmd.Flags().GetBool("force")
	opts := []convert.PipelineOption{
		convert.WithLogger(log),
		convert.WithForce(force),
	}
	if cfg.Cache != "" {
		store, err := cache.Open(cfg.Cache)
		if err != nil {
			return err
		}
		defer store.Close()
		opts = append(opts, convert.WithCache(store))
	}

	p, err := convert.NewPipeline(afero.NewOsFs(), cfg, cmd.OutOrStdout(), opts...)
	if err != nil {
		return err
	}
	_, err = p.Run(cmd.Context())
	return err
}

func init() {
	generateCmd.Flags().Bool("force", false, "rewrite documents even when the cache says they are current")
	generateCmd.Flags().Int("jobs", 0, "number of scripts converted in parallel (default: number of CPUs)")

	_ = settings.BindPFlag("jobs", generateCmd.Flags().Lookup("jobs"))

	rootCmd.AddCommand(generateCmd)
}
