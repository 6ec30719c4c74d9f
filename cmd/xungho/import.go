package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ersonp/xungho/internal/application/handlers"
	"github.com/ersonp/xungho/internal/domain/services"
)

type importFlags struct {
	format     string
	dryRun     bool
	onConflict string
}

func newImportCmd() *cobra.Command {
	var flags importFlags

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import people and relationships from JSON, YAML or CSV",
		Long: `Imports a family tree file. People are added first, then relationships,
which may refer to people by their IDs in the file or already in the tree.
Invalid rows are reported with their line numbers and skipped.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd, args[0], flags)
		},
	}

	cmd.Flags().StringVarP(&flags.format, "format", "f", "auto", "File format (json, yaml, csv, auto)")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "Validate without saving")
	cmd.Flags().StringVar(&flags.onConflict, "on-conflict", "skip", "Handling of people whose ID exists (skip, overwrite)")

	return cmd
}

func runImport(cmd *cobra.Command, filePath string, flags importFlags) error {
	if !contains(validImportFormats, flags.format) {
		return fmt.Errorf("invalid format %q, valid formats: %v", flags.format, validImportFormats)
	}
	strategy, err := services.ParseConflictStrategy(flags.onConflict)
	if err != nil {
		return err
	}

	return withDeps(cmd.Context(), func(d *Deps) error {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Importing %s into %s...\n", filePath, d.TreeName)

		result, err := d.ImportHandler.Handle(cmd.Context(), filePath, handlers.ImportOptions{
			Format:     flags.format,
			DryRun:     flags.dryRun,
			OnConflict: strategy,
		})
		if err != nil {
			return fmt.Errorf("importing file: %w", err)
		}

		printImportResult(cmd, result, flags.dryRun)
		return nil
	})
}

func printImportResult(cmd *cobra.Command, result *services.ImportResult, dryRun bool) {
	out := cmd.OutOrStdout()

	if len(result.Errors) > 0 {
		fmt.Fprintf(out, "\nValidation errors (%d):\n", len(result.Errors))
		for _, e := range result.Errors {
			fmt.Fprintf(out, "  %s\n", e.Error())
		}
	}

	fmt.Fprintln(out)
	if dryRun {
		fmt.Fprintf(out, "Dry run: %d people and %d relationships would be imported", result.People, result.Relationships)
	} else {
		fmt.Fprintf(out, "Imported: %d people, %d relationships", result.People, result.Relationships)
	}
	if result.Skipped > 0 {
		fmt.Fprintf(out, ", %d skipped (already exist)", result.Skipped)
	}
	if len(result.Errors) > 0 {
		fmt.Fprintf(out, ", %d errors", len(result.Errors))
	}
	fmt.Fprintln(out)
}
