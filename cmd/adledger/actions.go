package main

import (
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/spf13/cobra"

	"github.com/ersonp/adledger/internal/application/handlers"
	"github.com/ersonp/adledger/internal/domain/entities"
	"github.com/ersonp/adledger/internal/domain/services"
)

func newActionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "actions",
		Short: "Inspect the action ledger",
	}

	cmd.AddCommand(newActionsListCmd())
	cmd.AddCommand(newActionsShowCmd())
	cmd.AddCommand(newActionsSummaryCmd())

	return cmd
}

func newActionsListCmd() *cobra.Command {
	var (
		limit  int
		format string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent actions, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}
			ctx := cmd.Context()

			return withDeps(func(deps *Deps) error {
				result, err := deps.ActionHandler.HandleList(ctx, limit)
				if err != nil {
					return fmt.Errorf("listing actions: %w", err)
				}
				if format == formatJSON {
					return writeJSON(cmd.OutOrStdout(), result)
				}
				displayActions(cmd.OutOrStdout(), result.Actions, result.Total)
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "l", handlers.DefaultListLimit, "Maximum number of actions to display")
	cmd.Flags().StringVarP(&format, "format", "f", formatText, "Output format (text, json)")

	return cmd
}

func displayActions(w io.Writer, actions []entities.Action, total int) {
	if len(actions) == 0 {
		fmt.Fprintln(w, "No actions found.")
		return
	}

	fmt.Fprintf(w, "Showing %d of %d actions:\n\n", len(actions), total)

	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tTIME\tTYPE\tTARGET\tOLD\tNEW\tBY\tSTATE")
	for i := range actions {
		a := &actions[i]
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			a.ID,
			a.Timestamp.Local().Format(time.DateTime),
			a.ActionType,
			truncate(a.TargetName, 30),
			truncate(a.OldValue, 20),
			truncate(a.NewValue, 20),
			a.ApprovedBy,
			actionState(a),
		)
	}
	tw.Flush()
}

func actionState(a *entities.Action) string {
	switch {
	case a.RolledBack:
		return "rolled back"
	case a.RollbackOf != nil:
		return fmt.Sprintf("reverses #%d", *a.RollbackOf)
	default:
		return ""
	}
}

func newActionsShowCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a single action",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			return withDeps(func(deps *Deps) error {
				action, err := deps.ActionHandler.HandleShow(ctx, id)
				if err != nil {
					return err
				}
				if format == formatJSON {
					return writeJSON(cmd.OutOrStdout(), action)
				}
				displayAction(cmd.OutOrStdout(), action)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatText, "Output format (text, json)")

	return cmd
}

func displayAction(w io.Writer, a *entities.Action) {
	fmt.Fprintf(w, "Action #%d\n", a.ID)
	fmt.Fprintf(w, "  Time:        %s\n", a.Timestamp.Local().Format(time.RFC3339))
	fmt.Fprintf(w, "  Type:        %s\n", a.ActionType)
	fmt.Fprintf(w, "  Target:      %s %s\n", a.TargetType, a.TargetName)
	if a.TargetID != "" {
		fmt.Fprintf(w, "  Resource:    %s\n", a.TargetID)
	}
	if a.Campaign != "" {
		fmt.Fprintf(w, "  Campaign:    %s\n", a.Campaign)
	}
	if a.AdGroup != "" {
		fmt.Fprintf(w, "  Ad group:    %s\n", a.AdGroup)
	}
	fmt.Fprintf(w, "  Change:      %s -> %s\n", a.OldValue, a.NewValue)
	if a.Reason != "" {
		fmt.Fprintf(w, "  Reason:      %s\n", a.Reason)
	}
	fmt.Fprintf(w, "  Approved by: %s\n", a.ApprovedBy)
	if state := actionState(a); state != "" {
		fmt.Fprintf(w, "  State:       %s\n", state)
	}
}

func newActionsSummaryCmd() *cobra.Command {
	var (
		days   int
		format string
	)

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Count actions per type over the last N days",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}
			ctx := cmd.Context()

			return withDeps(func(deps *Deps) error {
				summary, err := deps.ActionHandler.HandleSummary(ctx, days)
				if err != nil {
					return fmt.Errorf("summarizing actions: %w", err)
				}
				if format == formatJSON {
					return writeJSON(cmd.OutOrStdout(), summary)
				}
				displaySummary(cmd.OutOrStdout(), summary, days)
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&days, "days", DefaultSummaryDays, "Window size in days")
	cmd.Flags().StringVarP(&format, "format", "f", formatText, "Output format (text, json)")

	return cmd
}

func displaySummary(w io.Writer, summary *services.ActionSummary, days int) {
	fmt.Fprintf(w, "Actions in the last %d days: %d\n", days, summary.Total)
	if summary.Total == 0 {
		return
	}

	types := make([]entities.ActionType, 0, len(summary.Counts))
	for t := range summary.Counts {
		types = append(types, t)
	}
	slices.Sort(types)

	fmt.Fprintln(w)
	tw := newTable(w)
	fmt.Fprintln(tw, "TYPE\tCOUNT")
	for _, t := range types {
		fmt.Fprintf(tw, "%s\t%d\n", t, summary.Counts[t])
	}
	tw.Flush()
}
