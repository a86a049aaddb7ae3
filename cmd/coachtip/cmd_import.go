package main

import (
	"os"
	"path/filepath"

	"github.com/claude/coachtip/internal/catalog"
	"github.com/spf13/cobra"
)

func newImportCmd(a *app) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "import <catalog.csv>",
		Short: "Import an exercise database CSV export into the catalog",
		Long: `Import an exercise database export (exercise_name, category, level,
equipment, primaryMuscles, secondaryMuscles) into the catalog in batches.
Rows are upserted by name, so re-importing a file updates it in place.`,
		Example: `  coachtip --db catalog.db import exercises.csv
  coachtip --config config.yaml import --dry-run exercises.csv`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			ctx := cmd.Context()
			store, err := a.openStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			if dryRun {
				a.log.Info().Msg("DRY RUN mode, no rows will be written")
			}

			stats, err := catalog.New(store, a.log, dryRun).Import(ctx, f, filepath.Base(args[0]))
			if stats != nil {
				printf(cmd, "rows read:     %d\n", stats.RowsRead)
				printf(cmd, "rows rejected: %d\n", len(stats.Rejected))
				printf(cmd, "rows written:  %d\n", stats.RowsInserted)
				printf(cmd, "batches:       %d\n", stats.Batches)
			}
			return err
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "parse and count rows without writing to the catalog")
	return cmd
}

func newMigrateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or upgrade the catalog schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			store.Close()

			if a.cfg.Database.UsePostgres() {
				a.log.Info().Str("database", a.cfg.Database.Name).Msg("migrations applied")
			} else {
				a.log.Info().Str("path", a.cfg.Database.SQLitePath).Msg("sqlite schema ready")
			}
			printf(cmd, "schema up to date\n")
			return nil
		},
	}
}
