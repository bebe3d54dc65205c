// Package main provides the entry point for the adledger CLI application.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var (
	version   = "0.1.0-dev"
	globalDir string
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
		Use:           "adledger",
		Short:         "Action ledger, approval gate, spend caps and rollback for an ads agent",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&globalDir, "dir", "d", "", "Base directory containing .adledger (default: current directory)")

	rootCmd.AddCommand(
		newInitCmd(),
		newRecordCmd(),
		newActionsCmd(),
		newRollbackCmd(),
		newApprovalCmd(),
		newCapsCmd(),
		newAlertsCmd(),
		newConfigCmd(),
	)

	return rootCmd
}
