package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/ersonp/adledger/internal/domain/entities"
)

func newCapsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "caps",
		Short: "Check spend against the daily cap",
	}

	cmd.AddCommand(newCapsStatusCmd())
	cmd.AddCommand(newCapsEnforceCmd())

	return cmd
}

func newCapsStatusCmd() *cobra.Command {
	var (
		spend  float64
		format string
	)

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show today's spend against the daily cap",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}

			return withDeps(func(deps *Deps) error {
				status := deps.PolicyHandler.HandleCapStatus(spend)
				if format == formatJSON {
					return writeJSON(cmd.OutOrStdout(), status)
				}
				displayCapStatus(cmd.OutOrStdout(), status)
				return nil
			})
		},
	}

	cmd.Flags().Float64Var(&spend, "spend", 0, "Spend so far today")
	cmd.Flags().StringVarP(&format, "format", "f", formatText, "Output format (text, json)")
	_ = cmd.MarkFlagRequired("spend")

	return cmd
}

func displayCapStatus(w io.Writer, s entities.CapStatus) {
	fmt.Fprintf(w, "%s: $%.2f of $%.2f (%.1f%%)\n", s.Status, s.TotalToday, s.MaxDaily, s.PctUsed)
	fmt.Fprintf(w, "  Bid increases:     %s\n", allowedLabel(s.CanIncreaseBids))
	fmt.Fprintf(w, "  Keyword additions: %s\n", allowedLabel(s.CanAddKeywords))
}

func allowedLabel(ok bool) string {
	if ok {
		return "allowed"
	}
	return "blocked"
}

func newCapsEnforceCmd() *cobra.Command {
	var (
		spend  float64
		format string
	)

	cmd := &cobra.Command{
		Use:   "enforce <action-type>",
		Short: "Check whether an action may proceed at today's spend",
		Long:  "Denials are recorded as spend_cap alerts.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}
			ctx := cmd.Context()

			return withDeps(func(deps *Deps) error {
				result := deps.PolicyHandler.HandleCapEnforce(ctx, entities.ActionType(args[0]), spend)
				if format == formatJSON {
					return writeJSON(cmd.OutOrStdout(), result)
				}

				verdict := "ALLOWED"
				if !result.Allowed {
					verdict = "BLOCKED"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", verdict, result.Reason)
				return nil
			})
		},
	}

	cmd.Flags().Float64Var(&spend, "spend", 0, "Spend so far today")
	cmd.Flags().StringVarP(&format, "format", "f", formatText, "Output format (text, json)")
	_ = cmd.MarkFlagRequired("spend")

	return cmd
}
