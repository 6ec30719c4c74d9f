package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/ersonp/xungho/internal/application/handlers"
	"github.com/ersonp/xungho/internal/domain/entities"
)

func newLinkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "link",
		Short: "Link people with parent or spouse relationships",
		Long: `Records the edges the kinship engine walks. Siblings, cousins and
in-laws follow from parent and spouse links.

Examples:
  xungho link parent "Trần Văn Cha" "Trần Văn An"
  xungho link spouse "Trần Văn Cha" "Lê Thị Mẹ"
  xungho link delete <relationship-id>`,
	}

	cmd.AddCommand(
		newLinkEdgeCmd("parent PARENT CHILD", "Record that PARENT is a parent of CHILD", entities.EdgeParentChild),
		newLinkEdgeCmd("spouse PERSON PERSON", "Record that two people are spouses", entities.EdgeSpouse),
		newLinkDeleteCmd(),
	)

	return cmd
}

func newLinkEdgeCmd(use, short string, kind entities.EdgeKind) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLink(cmd, kind, args[0], args[1])
		},
	}
}

func runLink(cmd *cobra.Command, kind entities.EdgeKind, personRef, relatedRef string) error {
	return withDeps(cmd.Context(), func(d *Deps) error {
		rel, err := d.RelationshipHandler.HandleLink(cmd.Context(), string(kind), personRef, relatedRef)
		if err != nil {
			return fmt.Errorf("linking: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Linked %s -[%s]-> %s\n  ID: %s\n", personRef, rel.Kind, relatedRef, rel.ID)
		return nil
	})
}

func newLinkDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a relationship by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(cmd.Context(), func(d *Deps) error {
				if err := d.RelationshipHandler.HandleDelete(cmd.Context(), args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted relationship %s\n", args[0])
				return nil
			})
		},
	}
}

// printRelationships writes one line per edge: the other person's role, name
// and the edge ID.
func printRelationships(w io.Writer, infos []handlers.RelationshipInfo) {
	for _, info := range infos {
		name := "?"
		if info.Other != nil {
			name = info.Other.Name
		}
		fmt.Fprintf(w, "  %-7s %-30s (%s)\n", info.Role, name, info.Relationship.ID)
	}
}
