// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/pdiddy/scriptdoc/internal/config"
	"github.com/pdiddy/scriptdoc/internal/convert"
	"github.com/pdiddy/scriptdoc/internal/render"
	"github.com/pdiddy/scriptdoc/internal/transform"
)

var previewCmd = &cobra.Command{
	Use:   "preview <script>",
	Short: "Render one script as Markdown in the terminal",
	Long: `Preview converts a single script to Markdown and displays it with
terminal styling. Nothing is written to disk. Use --raw to print the
Markdown source instead.`,
	Args: cobra.ExactArgs(1),
	RunE: runPreview,
}

func runPreview(cmd *cobra.Command, args []string) error {
	v, err := readSettings(cmd)
	if err != nil {
		return err
	}
	cfg, err := config.Decode(v)
	if err != nil {
		return err
	}
	syntax, err := transform.NewSyntax(cfg.Comment.Marker, cfg.Comment.Sigil)
	if err != nil {
		return err
	}
	opts := convert.Options{Syntax: syntax, Render: convert.RenderOptions(cfg)}

	md, err := convert.ConvertFile(afero.NewOsFs(), args[0], render.KindMarkdown, opts)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if raw, _ := cmd.Flags().GetBool("raw"); raw {
		_, err := out.Write(md)
		return err
	}

	width, _ := cmd.Flags().GetInt("width")
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return fmt.Errorf("creating terminal renderer: %w", err)
	}
	styled, err := r.Render(string(md))
	if err != nil {
		return fmt.Errorf("rendering %s: %w", args[0], err)
	}
	_, err = fmt.Fprint(out, styled)
	return err
}

func init() {
	previewCmd.Flags().Bool("raw", false, "print the Markdown source without terminal styling")
	previewCmd.Flags().Int("width", 80, "word wrap width")

	rootCmd.AddCommand(previewCmd)
}
