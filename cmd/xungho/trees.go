package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ersonp/xungho/internal/application/handlers"
)

func newTreesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trees",
		Short: "Manage family trees",
		RunE:  runTreesList,
	}

	cmd.AddCommand(
		newTreesListCmd(),
		newTreesCreateCmd(),
		newTreesDeleteCmd(),
	)

	return cmd
}

func newTreesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all family trees",
		RunE:  runTreesList,
	}
}

func runTreesList(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}

	infos, err := handlers.NewTreeHandler(openSQLiteStore).HandleList(cwd)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(infos) == 0 {
		fmt.Fprintln(out, "No family trees configured.")
		fmt.Fprintln(out, "Use 'xungho trees create NAME' to create one.")
		return nil
	}

	fmt.Fprintf(out, "%-20s %-8s %s\n", "NAME", "REGION", "DESCRIPTION")
	fmt.Fprintf(out, "%-20s %-8s %s\n", "----", "------", "-----------")
	for _, info := range infos {
		region := info.Region
		if region == "" {
			region = "-"
		}
		fmt.Fprintf(out, "%-20s %-8s %s\n", info.Name, region, info.Description)
	}

	return nil
}

func newTreesCreateCmd() *cobra.Command {
	var opts handlers.CreateTreeOptions

	cmd := &cobra.Command{
		Use:   "create NAME",
		Short: "Create a new family tree",
		Long: `Creates a family tree with its own database under .xungho/trees.
The .xungho directory is initialized on first use.

Examples:
  xungho trees create ho-tran -d "Họ Trần, chi trưởng"
  xungho trees create ho-le --region nam`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTreesCreate(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Description, "description", "d", "", "Tree description")
	cmd.Flags().StringVarP(&opts.Region, "region", "r", "", "Default region for this tree (bac, trung, nam)")

	return cmd
}

func runTreesCreate(cmd *cobra.Command, name string, opts handlers.CreateTreeOptions) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}

	result, err := handlers.NewTreeHandler(openSQLiteStore).HandleCreate(cmd.Context(), cwd, name, opts)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if result.Initialized {
		fmt.Fprintf(out, "Initialized xungho in %s\n", result.ConfigPath)
	}
	fmt.Fprintf(out, "Created tree %q\n", name)
	fmt.Fprintf(out, "  Database: %s\n", result.DBPath)

	return nil
}

func newTreesDeleteCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete NAME",
		Short: "Delete a family tree and its database",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force {
				return fmt.Errorf("refusing to delete tree %q without --force", args[0])
			}
			return runTreesDelete(cmd, args[0])
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Confirm deletion")

	return cmd
}

func runTreesDelete(cmd *cobra.Command, name string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}

	if err := handlers.NewTreeHandler(openSQLiteStore).HandleDelete(cwd, name); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Deleted tree %q\n", name)
	return nil
}
