package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ersonp/adledger/internal/domain/entities"
)

func newRecordCmd() *cobra.Command {
	var (
		na     entities.NewAction
		format string
	)

	cmd := &cobra.Command{
		Use:   "record",
		Short: "Record an executed action",
		Long: `Appends an action to the ledger. old and new values are used to reverse the
action later, e.g. --old '$1.00' --new '$1.50' for a bid change. Bid changes are
stored in that money form; other values are stored verbatim.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRecord(cmd, &na, format)
		},
	}

	cmd.Flags().StringVarP((*string)(&na.ActionType), "type", "t", "", "Action type (e.g. adjust_bid, add_negative)")
	cmd.Flags().StringVar((*string)(&na.TargetType), "target-type", "", "Target type (keyword, ad, campaign, ad_group)")
	cmd.Flags().StringVar(&na.TargetID, "target-id", "", "Platform resource name of the target")
	cmd.Flags().StringVar(&na.TargetName, "target-name", "", "Human-readable target name")
	cmd.Flags().StringVar(&na.Campaign, "campaign", "", "Campaign name")
	cmd.Flags().StringVar(&na.AdGroup, "ad-group", "", "Ad group name")
	cmd.Flags().StringVar(&na.OldValue, "old", "", "Value before the action")
	cmd.Flags().StringVar(&na.NewValue, "new", "", "Value after the action")
	cmd.Flags().StringVar(&na.Reason, "reason", "", "Why the action was taken")
	cmd.Flags().StringVar(&na.ApprovedBy, "approved-by", entities.ApprovedByAuto, "Approver (auto or user)")
	cmd.Flags().StringVarP(&format, "format", "f", formatText, "Output format (text, json)")
	_ = cmd.MarkFlagRequired("type")
	_ = cmd.MarkFlagRequired("target-type")

	return cmd
}

func runRecord(cmd *cobra.Command, na *entities.NewAction, format string) error {
	if err := checkFormat(format); err != nil {
		return err
	}
	ctx := cmd.Context()

	return withDeps(func(deps *Deps) error {
		result, err := deps.ActionHandler.HandleRecord(ctx, na)
		if err != nil {
			return err
		}

		if format == formatJSON {
			return writeJSON(cmd.OutOrStdout(), result.Action)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Recorded action #%d (%s)\n", result.Action.ID, result.Action.ActionType)
		return nil
	})
}
