package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ersonp/adledger/internal/application/handlers"
	"github.com/ersonp/adledger/internal/domain/entities"
)

func newApprovalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "approval",
		Short: "Query the approval gate",
	}

	cmd.AddCommand(newApprovalCheckCmd())

	return cmd
}

func newApprovalCheckCmd() *cobra.Command {
	var (
		changePct float64
		bid       float64
		oldBid    string
		newBid    string
		format    string
	)

	cmd := &cobra.Command{
		Use:   "check <action-type>",
		Short: "Check whether a proposed action needs human approval",
		Long: `Check whether a proposed action needs human approval.

A bid adjustment can be given as --old and --new bids instead of --change-pct
and --bid; the relative change and the new bid are then derived from them.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}

			actionType := entities.ActionType(args[0])
			bidPair := cmd.Flags().Changed("old") || cmd.Flags().Changed("new")
			if bidPair && actionType != entities.ActionAdjustBid {
				return fmt.Errorf("--old and --new apply only to %s", entities.ActionAdjustBid)
			}

			return withDeps(func(deps *Deps) error {
				var result *handlers.ApprovalCheckResult
				if bidPair {
					var err error
					result, err = deps.PolicyHandler.HandleBidApprovalCheck(oldBid, newBid)
					if err != nil {
						return err
					}
				} else {
					result = deps.PolicyHandler.HandleApprovalCheck(actionType, changePct, bid)
				}
				if format == formatJSON {
					return writeJSON(cmd.OutOrStdout(), result)
				}

				verdict := "auto-approved"
				if result.NeedsApproval {
					verdict = "approval required"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s (%s): %s\n", result.ActionType, result.Severity, verdict)
				return nil
			})
		},
	}

	cmd.Flags().Float64Var(&changePct, "change-pct", 0, "Relative bid change in percent")
	cmd.Flags().Float64Var(&bid, "bid", 0, "Proposed bid amount")
	cmd.Flags().StringVar(&oldBid, "old", "", "Current bid of a bid adjustment (e.g. $1.00)")
	cmd.Flags().StringVar(&newBid, "new", "", "Proposed bid of a bid adjustment (e.g. $1.10)")
	cmd.MarkFlagsRequiredTogether("old", "new")
	cmd.MarkFlagsMutuallyExclusive("old", "change-pct")
	cmd.MarkFlagsMutuallyExclusive("new", "bid")
	cmd.Flags().StringVarP(&format, "format", "f", formatText, "Output format (text, json)")

	return cmd
}
