package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ersonp/xungho/internal/application/handlers"
)

func newPersonCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "person",
		Aliases: []string{"people"},
		Short:   "Manage people in a family tree",
	}

	cmd.AddCommand(
		newPersonAddCmd(),
		newPersonListCmd(),
		newPersonShowCmd(),
		newPersonDeleteCmd(),
	)

	return cmd
}

func newPersonAddCmd() *cobra.Command {
	var in handlers.AddPersonInput

	cmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Add a person",
		Long: `Adds a person to the tree. Gender is required because kinship terms
depend on it. Birth date and birth order decide who is elder.

Examples:
  xungho person add "Trần Văn An" -g male --born 1950-03-01
  xungho person add "Trần Thị Bình" -g nữ --birth-order 2`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in.Name = args[0]
			return runPersonAdd(cmd, in)
		},
	}

	cmd.Flags().StringVarP(&in.Gender, "gender", "g", "", "Gender (male, female, nam, nữ)")
	cmd.Flags().StringVar(&in.ID, "id", "", "Person ID (generated when empty)")
	cmd.Flags().StringVar(&in.Born, "born", "", "Birth date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&in.Died, "died", "", "Death date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&in.BirthOrder, "birth-order", 0, "Position among siblings, starting at 1")
	cmd.Flags().StringVar(&in.Notes, "notes", "", "Free-form notes")
	_ = cmd.MarkFlagRequired("gender")

	return cmd
}

func runPersonAdd(cmd *cobra.Command, in handlers.AddPersonInput) error {
	return withDeps(cmd.Context(), func(d *Deps) error {
		p, err := d.PersonHandler.HandleAdd(cmd.Context(), in)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Added %s\n  ID: %s\n", personSummary(p), p.ID)
		return nil
	})
}

func newPersonListCmd() *cobra.Command {
	var (
		opts   handlers.ListPeopleOptions
		format string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List people",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPersonList(cmd, opts, format)
		},
	}

	cmd.Flags().StringVarP(&opts.Search, "search", "s", "", "Filter by name")
	cmd.Flags().IntVarP(&opts.Limit, "limit", "l", DefaultListLimit, "Maximum number of people to show")
	cmd.Flags().IntVar(&opts.Offset, "offset", 0, "Number of people to skip")
	cmd.Flags().StringVarP(&format, "format", "f", "text", "Output format (text, json)")

	return cmd
}

func runPersonList(cmd *cobra.Command, opts handlers.ListPeopleOptions, format string) error {
	if err := validateOutputFormat(format); err != nil {
		return err
	}

	return withDeps(cmd.Context(), func(d *Deps) error {
		people, err := d.PersonHandler.HandleList(cmd.Context(), opts)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if format == "json" {
			return writeJSON(out, people)
		}

		if len(people) == 0 {
			fmt.Fprintln(out, "No people found.")
			return nil
		}

		fmt.Fprintf(out, "%-36s %s\n", "ID", "PERSON")
		for i := range people {
			fmt.Fprintf(out, "%-36s %s\n", people[i].ID, personSummary(&people[i]))
		}
		stats, err := d.PersonHandler.HandleStats(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "\nShowing %d of %d people (%d relationships)\n", len(people), stats.People, stats.Relationships)
		return nil
	})
}

func newPersonShowCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "show PERSON",
		Short: "Show a person with their relationships and history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPersonShow(cmd, args[0], format)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "text", "Output format (text, json)")

	return cmd
}

func runPersonShow(cmd *cobra.Command, ref, format string) error {
	if err := validateOutputFormat(format); err != nil {
		return err
	}

	return withDeps(cmd.Context(), func(d *Deps) error {
		details, err := d.PersonHandler.HandleShow(cmd.Context(), ref)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if format == "json" {
			return writeJSON(out, details)
		}

		fmt.Fprintln(out, personSummary(&details.Person))
		fmt.Fprintf(out, "  ID: %s\n", details.Person.ID)
		if details.Person.Notes != "" {
			fmt.Fprintf(out, "  Notes: %s\n", details.Person.Notes)
		}

		if len(details.Relationships) > 0 {
			fmt.Fprintln(out, "\nRelationships:")
			printRelationships(out, details.Relationships)
		}

		if len(details.History) > 0 {
			fmt.Fprintln(out, "\nHistory:")
			for _, h := range details.History {
				fmt.Fprintf(out, "  %s  %s\n", h.CreatedAt.Format("2006-01-02 15:04"), h.Action)
			}
		}
		return nil
	})
}

func newPersonDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete PERSON",
		Short: "Delete a person and all their relationships",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(cmd.Context(), func(d *Deps) error {
				p, err := d.PersonHandler.HandleDelete(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", personSummary(p))
				return nil
			})
		},
	}
}
