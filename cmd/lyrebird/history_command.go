package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"lyrebird/internal/history"
)

var runTableHeaders = []string{
	"Run", "Started", "Duration", "Scanned", "Skipped",
	"Lyrics", "Covers", "Tags", "Unmatched", "Failed",
}

var runTableAligns = []columnAlignment{
	alignLeft, alignLeft, alignRight, alignRight, alignRight,
	alignRight, alignRight, alignRight, alignRight, alignRight,
}

func runTableRow(run history.Run) []string {
	id := run.RunID
	if len(id) > 8 {
		id = id[:8]
	}
	return []string{
		id,
		run.StartedAt.Local().Format("2006-01-02 15:04:05"),
		run.Duration.String(),
		strconv.Itoa(run.Scanned),
		strconv.Itoa(run.Skipped),
		strconv.Itoa(run.LyricsWritten),
		strconv.Itoa(run.CoversWritten),
		strconv.Itoa(run.TagsUpdated),
		strconv.Itoa(run.Unmatched),
		strconv.Itoa(run.Failed),
	}
}

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect past scan runs",
	}
	historyCmd.AddCommand(newHistoryListCommand(ctx))
	historyCmd.AddCommand(newHistoryFailuresCommand(ctx))
	return historyCmd
}

func newHistoryListCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show recent runs, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := history.Open(cfg)
			if err != nil {
				return fmt.Errorf("open history: %w", err)
			}
			defer store.Close()

			runs, err := store.RecentRuns(cmd.Context(), limit)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(runs) == 0 {
				fmt.Fprintln(out, "No runs recorded yet")
				return nil
			}
			rows := make([][]string, 0, len(runs))
			for _, run := range runs {
				rows = append(rows, runTableRow(run))
			}
			fmt.Fprintln(out, renderTable(runTableHeaders, rows, runTableAligns))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of runs to show")
	return cmd
}

// resolveRunID expands the truncated ids shown in tables back to a full run
// id. Exact ids pass through untouched.
func resolveRunID(cmd *cobra.Command, store *history.Store, arg string) (string, error) {
	runs, err := store.RecentRuns(cmd.Context(), 1000)
	if err != nil {
		return "", err
	}
	var matched string
	for _, run := range runs {
		if run.RunID == arg {
			return arg, nil
		}
		if strings.HasPrefix(run.RunID, arg) {
			if matched != "" {
				return "", fmt.Errorf("run id %q is ambiguous", arg)
			}
			matched = run.RunID
		}
	}
	if matched == "" {
		return "", fmt.Errorf("no run matches %q", arg)
	}
	return matched, nil
}

func newHistoryFailuresCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "failures <run-id>",
		Short: "Show per-track failures for a run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := history.Open(cfg)
			if err != nil {
				return fmt.Errorf("open history: %w", err)
			}
			defer store.Close()

			runID, err := resolveRunID(cmd, store, args[0])
			if err != nil {
				return err
			}
			failures, err := store.FailuresForRun(cmd.Context(), runID)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(failures) == 0 {
				fmt.Fprintln(out, "No failures recorded for this run")
				return nil
			}
			rows := make([][]string, 0, len(failures))
			for _, failure := range failures {
				rows = append(rows, []string{failure.TrackPath, failure.Reason})
			}
			fmt.Fprintln(out, renderTable([]string{"Track", "Reason"}, rows, nil))
			return nil
		},
	}
}
