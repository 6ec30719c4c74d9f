// Package main provides the entry point for the xungho CLI application.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ersonp/xungho/internal/infrastructure/logging"
)

var (
	version       = "0.1.0-dev"
	globalTree    string
	globalVerbose bool
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "xungho",
		Short:         "Work out what Vietnamese relatives call each other",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if globalVerbose {
				logging.Setup(cmd.ErrOrStderr(), "debug")
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&globalTree, "tree", "t", "", "Family tree to operate on (optional when only one exists)")
	rootCmd.PersistentFlags().BoolVarP(&globalVerbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(
		newTreesCmd(),
		newPersonCmd(),
		newLinkCmd(),
		newLinksCmd(),
		newWhoCmd(),
		newImportCmd(),
		newExportCmd(),
		newHistoryCmd(),
	)

	return rootCmd
}
