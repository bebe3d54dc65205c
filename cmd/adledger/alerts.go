package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/ersonp/adledger/internal/application/handlers"
	"github.com/ersonp/adledger/internal/domain/entities"
)

func newAlertsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "alerts",
		Short: "List and acknowledge alerts",
	}

	cmd.AddCommand(newAlertsListCmd())
	cmd.AddCommand(newAlertsAckCmd())

	return cmd
}

func newAlertsListCmd() *cobra.Command {
	var (
		limit          int
		unacknowledged bool
		format         string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List alerts, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}
			ctx := cmd.Context()

			return withDeps(func(deps *Deps) error {
				alerts, err := deps.AlertHandler.HandleList(ctx, limit, unacknowledged)
				if err != nil {
					return fmt.Errorf("listing alerts: %w", err)
				}
				if format == formatJSON {
					return writeJSON(cmd.OutOrStdout(), alerts)
				}
				displayAlerts(cmd.OutOrStdout(), alerts)
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "l", handlers.DefaultListLimit, "Maximum number of alerts to display")
	cmd.Flags().BoolVarP(&unacknowledged, "unacknowledged", "u", false, "Only show alerts not yet acknowledged")
	cmd.Flags().StringVarP(&format, "format", "f", formatText, "Output format (text, json)")

	return cmd
}

func displayAlerts(w io.Writer, alerts []entities.Alert) {
	if len(alerts) == 0 {
		fmt.Fprintln(w, "No alerts found.")
		return
	}

	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tTIME\tLEVEL\tCATEGORY\tMESSAGE\tACK")
	for _, a := range alerts {
		ack := ""
		if a.Acknowledged {
			ack = "yes"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
			a.ID,
			a.Timestamp.Local().Format(time.DateTime),
			a.Level,
			a.Category,
			truncate(a.Message, 70),
			ack,
		)
	}
	tw.Flush()
}

func newAlertsAckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ack <id>",
		Short: "Acknowledge an alert",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			return withDeps(func(deps *Deps) error {
				if err := deps.AlertHandler.HandleAcknowledge(ctx, id); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Acknowledged alert #%d\n", id)
				return nil
			})
		},
	}
}
