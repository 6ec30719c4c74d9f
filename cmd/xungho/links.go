package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newLinksCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "links PERSON",
		Short: "List the parents, children and spouses of a person",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLinks(cmd, args[0], format)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "text", "Output format (text, json)")

	return cmd
}

func runLinks(cmd *cobra.Command, ref, format string) error {
	if err := validateOutputFormat(format); err != nil {
		return err
	}

	return withDeps(cmd.Context(), func(d *Deps) error {
		result, err := d.RelationshipHandler.HandleList(cmd.Context(), ref)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if format == "json" {
			return writeJSON(out, result)
		}

		if len(result.Relationships) == 0 {
			fmt.Fprintf(out, "No relationships found for %s.\n", result.Person.Name)
			return nil
		}

		fmt.Fprintf(out, "Relationships for %s:\n", result.Person.Name)
		printRelationships(out, result.Relationships)
		return nil
	})
}
