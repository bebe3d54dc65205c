package main

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/ersonp/adledger/internal/domain/services"
)

func newRollbackCmd() *cobra.Command {
	var (
		since  string
		format string
	)

	cmd := &cobra.Command{
		Use:   "rollback [id]",
		Short: "Reverse an action, or every action since a point in time",
		Long: `Reverses a single action by id, or with --since every action at or after the
given time that has not been rolled back yet, newest first. --since accepts
RFC3339 timestamps or YYYY-MM-DD dates (local midnight).`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}

			switch {
			case len(args) == 1 && since != "":
				return errors.New("pass either an action id or --since, not both")
			case len(args) == 1:
				id, err := parseID(args[0])
				if err != nil {
					return err
				}
				return runRollbackOne(cmd, id, format)
			case since != "":
				t, err := parseSince(since)
				if err != nil {
					return err
				}
				return runRollbackSince(cmd, t, format)
			default:
				return errors.New("an action id or --since is required")
			}
		},
	}

	cmd.Flags().StringVar(&since, "since", "", "Roll back every action at or after this time")
	cmd.Flags().StringVarP(&format, "format", "f", formatText, "Output format (text, json)")

	return cmd
}

// parseSince accepts RFC3339 timestamps or plain dates in local time.
func parseSince(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation(time.DateOnly, s, time.Local); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid --since %q: use RFC3339 (2006-01-02T15:04:05Z07:00) or YYYY-MM-DD", s)
}

// rollbackView is the JSON form of a result; Err does not marshal.
type rollbackView struct {
	services.RollbackResult
	Reason string `json:"reason"`
}

func viewOf(r services.RollbackResult) rollbackView {
	return rollbackView{RollbackResult: r, Reason: r.Reason()}
}

func runRollbackOne(cmd *cobra.Command, id int64, format string) error {
	ctx := cmd.Context()

	return withDeps(func(deps *Deps) error {
		result := deps.RollbackHandler.HandleRollback(ctx, id)

		if format == formatJSON {
			if err := writeJSON(cmd.OutOrStdout(), viewOf(result)); err != nil {
				return err
			}
		} else if result.OK() {
			fmt.Fprintf(cmd.OutOrStdout(), "Rolled back action #%d (rollback record #%d): %s\n",
				result.ActionID, result.RollbackActionID, result.Reason())
		}

		if !result.OK() {
			return fmt.Errorf("rolling back action %d: %w", id, result.Err)
		}
		return nil
	})
}

func runRollbackSince(cmd *cobra.Command, since time.Time, format string) error {
	ctx := cmd.Context()

	return withDeps(func(deps *Deps) error {
		batch, err := deps.RollbackHandler.HandleRollbackSince(ctx, since)
		if err != nil {
			return err
		}

		if format == formatJSON {
			views := make([]rollbackView, len(batch.Results))
			for i, r := range batch.Results {
				views[i] = viewOf(r)
			}
			if err := writeJSON(cmd.OutOrStdout(), struct {
				BatchID   string         `json:"batch_id"`
				Since     time.Time      `json:"since"`
				Succeeded int            `json:"succeeded"`
				Failed    int            `json:"failed"`
				Results   []rollbackView `json:"results"`
			}{batch.BatchID, batch.Since, batch.Succeeded(), batch.Failed(), views}); err != nil {
				return err
			}
		} else {
			displayBatch(cmd.OutOrStdout(), batch)
		}

		if n := batch.Failed(); n > 0 {
			return fmt.Errorf("%d of %d rollbacks failed", n, len(batch.Results))
		}
		return nil
	})
}

func displayBatch(w io.Writer, batch *services.RollbackBatch) {
	if len(batch.Results) == 0 {
		fmt.Fprintf(w, "No actions to roll back since %s.\n", batch.Since.Format(time.RFC3339))
		return
	}

	fmt.Fprintf(w, "Rollback batch %s: %d succeeded, %d failed\n\n", batch.BatchID, batch.Succeeded(), batch.Failed())

	tw := newTable(w)
	fmt.Fprintln(tw, "ACTION\tSTATUS\tROLLBACK\tDETAIL")
	for _, r := range batch.Results {
		rollbackID := "-"
		if r.RollbackActionID != 0 {
			rollbackID = fmt.Sprintf("#%d", r.RollbackActionID)
		}
		fmt.Fprintf(tw, "#%d\t%s\t%s\t%s\n", r.ActionID, r.Status, rollbackID, r.Reason())
	}
	tw.Flush()
}
