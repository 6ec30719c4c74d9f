package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/ersonp/xungho/internal/application/handlers"
	"github.com/ersonp/xungho/internal/domain/kinship"
)

type whoFlags struct {
	region        string
	maxGeneration int
	format        string
}

func newWhoCmd() *cobra.Command {
	var flags whoFlags

	cmd := &cobra.Command{
		Use:   "who A B",
		Short: "Show how A is related to B and what they call each other",
		Long: `Finds the shortest chain of parent, child and spouse links from A to B,
classifies it and resolves the Vietnamese terms of address both ways.

A and B may be person IDs or unique names.

Examples:
  xungho who "Trần Văn An" "Lê Thị Dì"
  xungho who an di --region nam
  xungho who an ong-co --max-generation 2 -f json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWho(cmd, args[0], args[1], flags)
		},
	}

	cmd.Flags().StringVarP(&flags.region, "region", "r", "", "Region for terms (bac, trung, nam); default from config")
	cmd.Flags().IntVar(&flags.maxGeneration, "max-generation", 0, "Largest generation gap that gets a specific term")
	cmd.Flags().StringVarP(&flags.format, "format", "f", "text", "Output format (text, json)")

	return cmd
}

func runWho(cmd *cobra.Command, refA, refB string, flags whoFlags) error {
	if err := validateOutputFormat(flags.format); err != nil {
		return err
	}

	return withDeps(cmd.Context(), func(d *Deps) error {
		result, err := d.KinshipHandler.HandleWho(cmd.Context(), refA, refB, handlers.WhoOptions{
			Region:        flags.region,
			MaxGeneration: flags.maxGeneration,
		})
		if errors.Is(err, kinship.ErrInvalidQuery) {
			return errors.New("A and B are the same person")
		}
		if errors.Is(err, kinship.ErrNotFound) {
			fmt.Fprintf(cmd.OutOrStdout(), "No relationship found between %s and %s.\n", refA, refB)
			return nil
		}
		if err != nil {
			return err
		}

		if flags.format == "json" {
			return writeJSON(cmd.OutOrStdout(), result)
		}
		printWho(cmd.OutOrStdout(), result)
		return nil
	})
}

func printWho(w io.Writer, r *handlers.WhoResult) {
	c := r.Classification

	fmt.Fprintf(w, "%s → %s\n", r.A.Name, r.B.Name)
	fmt.Fprintf(w, "  Relation:  %s (%s)\n", c.Label, c.Kind)
	fmt.Fprintf(w, "  Path:      %s\n", r.Description)
	if c.Side != kinship.SideNone {
		fmt.Fprintf(w, "  Side:      %s\n", c.Side)
	}
	if c.Seniority != kinship.SeniorityUnknown {
		fmt.Fprintf(w, "  Seniority: %s\n", c.Seniority)
	}
	fmt.Fprintf(w, "  Region:    %s\n", r.Region)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %s calls %s: %s\n", r.A.Name, r.B.Name, r.Terms.AcallsB)
	fmt.Fprintf(w, "  %s calls %s: %s\n", r.B.Name, r.A.Name, r.Terms.BcallsA)
	if r.Terms.Approximate {
		fmt.Fprintln(w, "\n  (approximate: no specific term for this relation)")
	}
}
