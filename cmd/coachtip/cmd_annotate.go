package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/claude/coachtip/internal/ingest/alpha"
	"github.com/spf13/cobra"
)

func newAnnotateCmd(a *app) *cobra.Command {
	var cf contextFlags

	cmd := &cobra.Command{
		Use:   "annotate <alpha.csv>",
		Short: "Annotate an Alpha Progression export with a tip per exercise",
		Long: `Parse an Alpha Progression CSV export and print every session as JSON
with a coach tip per planned exercise. Exercises found in the catalog are
checked against the --injury flags and flagged with "avoid".`,
		Example: `  coachtip annotate --goal hypertrophy --phase 2 workouts.csv`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cctx, err := cf.context()
			if err != nil {
				return err
			}

			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			ctx := cmd.Context()
			annotator := alpha.NewAnnotator(nil, a.log)
			if a.hasStore() {
				store, err := a.openStore(ctx)
				if err != nil {
					return err
				}
				defer store.Close()
				annotator = alpha.NewAnnotator(store, a.log)
			}

			sessions, result, err := annotator.Annotate(ctx, f, cctx)
			if err != nil {
				return fmt.Errorf("annotating %s: %w", args[0], err)
			}
			a.log.Info().
				Int("sessions", result.SessionsParsed).
				Int("exercises", result.ExercisesAnnotated).
				Int("catalog_matches", result.CatalogMatches).
				Int("flagged", result.Flagged).
				Msg("plan annotated")

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(sessions)
		},
	}

	cf.bind(cmd)
	return cmd
}
