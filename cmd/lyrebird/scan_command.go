package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"lyrebird/internal/daemon"
	"lyrebird/internal/history"
)

func newScanCommand(ctx *commandContext) *cobra.Command {
	var skipHistory bool

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Run one reconciliation pass over the library",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			engine, logger, err := ctx.buildEngine()
			if err != nil {
				return err
			}

			var store *history.Store
			if !skipHistory {
				store, err = history.Open(cfg)
				if err != nil {
					return fmt.Errorf("open history: %w", err)
				}
				defer store.Close()
			}

			// A scan is a daemon pass with the rescan interval forced off.
			single := *cfg
			single.Scan.Interval = 0
			d, err := daemon.New(&single, engine, store, logger)
			if err != nil {
				return err
			}

			runCtx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if err := d.Run(runCtx); err != nil {
				return err
			}

			if store != nil {
				runs, err := store.RecentRuns(cmd.Context(), 1)
				if err != nil {
					return fmt.Errorf("read back run: %w", err)
				}
				if len(runs) == 1 {
					fmt.Fprintln(cmd.OutOrStdout(), renderTable(runTableHeaders, [][]string{runTableRow(runs[0])}, runTableAligns))
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&skipHistory, "no-history", false, "Do not record this run in the history database")
	return cmd
}
