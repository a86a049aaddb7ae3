// Command coachtip composes coaching tips from the command line, annotates
// Alpha Progression exports, manages the exercise catalog and serves the MCP
// tools over stdio.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	coachtip "github.com/claude/coachtip"
	"github.com/claude/coachtip/internal/coaching"
	"github.com/claude/coachtip/internal/config"
	"github.com/claude/coachtip/internal/storage"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// Version is set at build time via -ldflags.
var Version = "dev"

// errNoStore is returned by commands that need a catalog when none is configured.
var errNoStore = errors.New("no catalog configured: pass --db or set database.host / database.sqlite_path")

// app is the state shared by all subcommands.
type app struct {
	configPath string
	dbPath     string

	cfg *config.Config
	log zerolog.Logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "coachtip",
		Short: "Compose coaching cues for exercises",
		Long: `coachtip composes one-line coaching annotations for an exercise:
effort target, tempo, form cues, equipment note, progression note and
injury note, for a client's goal, training phase and experience.

Exercises are enriched from the catalog when one is configured
(--db for a SQLite file, or the database section of --config).`,
		Version:           Version,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "path to config file (default: environment only)")
	root.PersistentFlags().StringVar(&a.dbPath, "db", "", "SQLite catalog file (overrides the configured database)")

	root.AddCommand(
		newTipCmd(a),
		newAvoidCmd(a),
		newAnnotateCmd(a),
		newImportCmd(a),
		newMigrateCmd(a),
		newMCPCmd(a),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	// A missing .env is fine; the environment may already be set.
	_ = godotenv.Load()

	cfg, err := config.LoadCLI(a.configPath)
	if err != nil {
		return err
	}
	if a.dbPath != "" {
		cfg.Database = config.DatabaseConfig{SQLitePath: a.dbPath}
	}
	a.cfg = cfg
	a.log = cfg.Log.Logger(cmd.ErrOrStderr())
	return nil
}

func (a *app) hasStore() bool {
	return a.cfg.Database.UsePostgres() || a.cfg.Database.SQLitePath != ""
}

// openStore opens the configured catalog. PostgreSQL is migrated first.
func (a *app) openStore(ctx context.Context) (storage.Store, error) {
	db := a.cfg.Database
	switch {
	case db.UsePostgres():
		dsn := db.DSN()
		if err := storage.RunMigrations(dsn, coachtip.MigrationsFS, "migrations"); err != nil {
			return nil, err
		}
		return storage.New(ctx, dsn)
	case db.SQLitePath != "":
		return storage.OpenSQLite(db.SQLitePath)
	default:
		return nil, errNoStore
	}
}

// contextFlags are the coaching context flags shared by tip and annotate.
type contextFlags struct {
	goal       string
	phase      int
	experience string
	injuries   []string
}

func (f *contextFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.goal, "goal", "", "training goal: fat_loss, hypertrophy, strength, endurance, power")
	cmd.Flags().IntVar(&f.phase, "phase", 1, "periodization phase (1-4)")
	cmd.Flags().StringVar(&f.experience, "experience", string(coaching.Intermediate), "Beginner, Intermediate or Advanced")
	cmd.Flags().StringArrayVar(&f.injuries, "injury", nil, `injury as "name:muscle,muscle" or a single muscle (repeatable)`)
	_ = cmd.MarkFlagRequired("goal")
}

func (f *contextFlags) context() (coaching.Context, error) {
	return coaching.NewContext(f.goal, f.phase, f.experience, parseInjuries(f.injuries), nil)
}

// parseInjuries reads "Knee strain:quadriceps,hamstrings" as a named injury
// and a bare "knee" as an injury affecting that area only.
func parseInjuries(specs []string) []coaching.Injury {
	var out []coaching.Injury
	for _, s := range specs {
		name, muscles, found := strings.Cut(s, ":")
		name = strings.TrimSpace(name)
		if !found {
			muscles = name
		}
		affected := coaching.SplitList(muscles)
		if name == "" && len(affected) == 0 {
			continue
		}
		if name == "" {
			name = strings.Join(affected, ", ")
		}
		out = append(out, coaching.Injury{Name: name, AffectedMuscles: affected})
	}
	return out
}

func printf(cmd *cobra.Command, format string, args ...any) {
	fmt.Fprintf(cmd.OutOrStdout(), format, args...)
}
