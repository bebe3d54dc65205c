package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ersonp/adledger/internal/application/handlers"
)

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize a new action ledger",
		Long:  "Creates a .adledger directory with default configuration and an empty action log database.",
		Args:  cobra.NoArgs,
		RunE:  runInit,
	}
}

func runInit(cmd *cobra.Command, args []string) error {
	dir, err := baseDir()
	if err != nil {
		return err
	}

	result, err := handlers.NewInitHandler().Handle(cmd.Context(), dir)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Created %s\n", result.ConfigPath)
	fmt.Fprintf(out, "Created action log: %s (schema v%d)\n", result.DBPath, result.SchemaVersion)
	fmt.Fprintln(out, "adledger initialized successfully!")
	return nil
}
