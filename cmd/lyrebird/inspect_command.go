package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"lyrebird/internal/identity"
	"lyrebird/internal/library"
	"lyrebird/internal/logging"
	"lyrebird/internal/reconcile"
	"lyrebird/internal/sidecar"
)

func newInspectCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <track>",
		Short: "Show what a scan would decide for one track",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			path, err := filepath.Abs(args[0])
			if err != nil {
				return fmt.Errorf("resolve path: %w", err)
			}

			classifier := library.NewClassifier(cfg)
			candidate, ok := classifier.Classify(cfg.Library.Root, path)
			if !ok {
				return fmt.Errorf("%s is not a scannable track", path)
			}

			logger := logging.NewNop()
			id := identity.NewResolver(cfg, logger).Resolve(candidate)
			state := sidecar.NewInspector(logger).Inspect(candidate)
			plan := reconcile.BuildPlan(cfg, candidate, state)

			rows := [][]string{
				{"Kind", candidate.Kind.String()},
				{"Artist", id.Artist},
				{"Title", id.Title},
				{"Album", id.Album},
				{"Lyrics sidecar", yesNo(state.HasLyricsSidecar)},
				{"Cover sidecar", yesNo(state.HasCoverSidecar)},
				{"Embedded lyrics", yesNo(state.HasEmbeddedLyrics)},
				{"Embedded cover", yesNo(state.HasEmbeddedCover)},
				{"Embedded basic tags", yesNo(state.HasEmbeddedBasic)},
				{"Would fetch lyrics", yesNo(plan.NeedLyrics())},
				{"Would fetch cover", yesNo(plan.NeedCover())},
				{"Would update basic tags", yesNo(plan.EmbedBasic)},
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Field", "Value"}, rows, nil))
			return nil
		},
	}
}
