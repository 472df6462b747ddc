// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/pdiddy/scriptdoc/internal/config"
	"github.com/pdiddy/scriptdoc/internal/convert"
	"github.com/pdiddy/scriptdoc/internal/transform"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the scripts that generate would convert",
	Long: `List prints the scripts of the input directory in conversion order,
together with the output kinds configured for them.

Use --events with a script path to print the event trace the transformer
produces for that script, one event per line. This is the sequence every
renderer receives.`,
	RunE: runList,
}

func runList(cmd *cobra.Command, args []string) error {
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
	out := cmd.OutOrStdout()

	if script, _ := cmd.Flags().GetString("events"); script != "" {
		f, err := os.Open(script)
		if err != nil {
			return fmt.Errorf("opening %s: %w", script, err)
		}
		defer f.Close()

		var rec transform.Recorder
		if err := transform.TransformReader(syntax, f, &rec); err != nil {
			return err
		}
		for _, e := range rec.Events {
			fmt.Fprintln(out, e)
		}
		return nil
	}

	inputs, err := convert.ListInputs(afero.NewOsFs(), cfg.Input.Dir, cfg.Input.Suffix)
	if err != nil {
		return err
	}
	for i, in := range inputs {
		fmt.Fprintf(out, "%d. %s\n", i, in)
	}

	outputs := cfg.Outputs()
	if len(outputs) == 0 {
		fmt.Fprintln(os.Stderr, "warning:", config.ErrNoOutputs)
		return nil
	}
	fmt.Fprintf(out, "\n%d scripts, outputs:", len(inputs))
	for _, o := range outputs {
		fmt.Fprintf(out, " %s -> %s", o.Kind, o.Dir)
	}
	fmt.Fprintln(out)
	return nil
}

func init() {
	listCmd.Flags().String("events", "", "print the transformer events of one script")

	rootCmd.AddCommand(listCmd)
}
