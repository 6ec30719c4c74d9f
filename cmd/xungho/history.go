package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ersonp/xungho/internal/domain/entities"
)

func newHistoryCmd() *cobra.Command {
	var (
		action string
		limit  int
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent changes to the tree",
		Long: `Lists the newest audit log entries for one action.

Actions: person.added, person.deleted, relationship.added,
relationship.deleted, tree.imported`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(cmd.Context(), func(d *Deps) error {
				entries, err := d.PersonHandler.HandleActionLog(cmd.Context(), action, limit)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				if len(entries) == 0 {
					fmt.Fprintf(out, "No %s entries.\n", action)
					return nil
				}
				for _, e := range entries {
					fmt.Fprintf(out, "%s  %-20s %s %s\n", e.CreatedAt.Format("2006-01-02 15:04"), e.Action, e.PersonID, formatDetails(e.Details))
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&action, "action", "a", entities.ActionTreeImported, "Action to list")
	cmd.Flags().IntVarP(&limit, "limit", "l", 20, "Maximum number of entries")

	return cmd
}

// formatDetails renders audit details as sorted key=value pairs.
func formatDetails(details map[string]any) string {
	keys := make([]string, 0, len(details))
	for k := range details {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, details[k]))
	}
	return strings.Join(parts, " ")
}
