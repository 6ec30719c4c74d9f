package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

type exportFlags struct {
	format string
	output string
}

func newExportCmd() *cobra.Command {
	var flags exportFlags

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the family tree to a file",
		Long:  "Exports all people and relationships to JSON or YAML. The output can be imported again.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.format, "format", "f", "json", "Output format (json, yaml)")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Output file (default: stdout)")

	return cmd
}

func runExport(cmd *cobra.Command, flags exportFlags) error {
	if !contains(validExportFormats, flags.format) {
		return fmt.Errorf("invalid format %q, valid formats: %v", flags.format, validExportFormats)
	}

	return withDeps(cmd.Context(), func(d *Deps) error {
		var w io.Writer = cmd.OutOrStdout()
		if flags.output != "" {
			f, err := os.Create(flags.output)
			if err != nil {
				return fmt.Errorf("creating output file: %w", err)
			}
			defer f.Close()
			w = f
		}

		if err := d.ImportHandler.HandleExport(cmd.Context(), w, flags.format); err != nil {
			return err
		}

		if flags.output != "" {
			stats, err := d.PersonHandler.HandleStats(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d people and %d relationships to %s\n",
				stats.People, stats.Relationships, flags.output)
		}
		return nil
	})
}
