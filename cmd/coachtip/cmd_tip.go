package main

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/claude/coachtip/internal/coaching"
	"github.com/claude/coachtip/internal/storage"
	"github.com/spf13/cobra"
)

// exerciseFlags describe the exercise on the command line. Anything left
// empty is taken from the catalog when the exercise is found there.
type exerciseFlags struct {
	name      string
	equipment string
	category  string
	primary   string
	secondary string
}

func (f *exerciseFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "exercise name")
	cmd.Flags().StringVar(&f.equipment, "equipment", "", "equipment (e.g. barbell, dumbbell, bodyweight)")
	cmd.Flags().StringVar(&f.category, "category", "", "exercise category")
	cmd.Flags().StringVar(&f.primary, "primary-muscle", "", "primary muscle worked")
	cmd.Flags().StringVar(&f.secondary, "secondary-muscles", "", "comma-separated secondary muscles")
	_ = cmd.MarkFlagRequired("name")
}

// resolve looks the exercise up in the catalog, when one is configured, and
// lets explicit flags override what it finds.
func (f *exerciseFlags) resolve(ctx context.Context, a *app) (coaching.Exercise, error) {
	if a.hasStore() {
		store, err := a.openStore(ctx)
		if err != nil {
			return coaching.Exercise{}, err
		}
		defer store.Close()

		row, err := store.FindExercise(ctx, f.name)
		switch {
		case err == nil:
			a.log.Debug().Str("exercise", row.Name).Msg("catalog match")
			return f.override(storage.MatchedExercise(*row, f.name)), nil
		case !errors.Is(err, storage.ErrNotFound):
			return coaching.Exercise{}, err
		}
	}

	raw := map[string]any{"name": f.name}
	for k, v := range map[string]string{
		"equipment":         f.equipment,
		"category":          f.category,
		"primary_muscle":    f.primary,
		"secondary_muscles": f.secondary,
	} {
		if v != "" {
			raw[k] = v
		}
	}
	return coaching.NormalizeExercise(raw)
}

func (f *exerciseFlags) override(ex coaching.Exercise) coaching.Exercise {
	if f.equipment != "" {
		ex.Equipment = f.equipment
	}
	if f.category != "" {
		ex.Category = f.category
	}
	if f.primary != "" {
		ex.PrimaryMuscle = f.primary
	}
	if f.secondary != "" {
		ex.SecondaryMuscles = coaching.SplitList(f.secondary)
	}
	return ex
}

func newTipCmd(a *app) *cobra.Command {
	var (
		ex      exerciseFlags
		cf      contextFlags
		asJSON  bool
		maxCues int
	)

	cmd := &cobra.Command{
		Use:   "tip",
		Short: "Compose a coach tip for one exercise",
		Example: `  coachtip tip --name Deadlift --equipment barbell --goal strength --phase 1
  coachtip tip --name "Bicep Curl" --goal hypertrophy --injury "Elbow:biceps" --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cctx, err := cf.context()
			if err != nil {
				return err
			}
			exercise, err := ex.resolve(cmd.Context(), a)
			if err != nil {
				return err
			}

			if maxCues == 0 {
				maxCues = a.cfg.Coaching.MaxCues
			}
			c, err := coaching.Composer{MaxCues: maxCues}.Components(exercise, cctx)
			if err != nil {
				return err
			}

			if !asJSON {
				printf(cmd, "%s\n", c.String())
				return nil
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(map[string]any{"exercise": exercise, "tip": c.String(), "components": c})
		},
	}

	ex.bind(cmd)
	cf.bind(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the exercise, tip and components as JSON")
	cmd.Flags().IntVar(&maxCues, "max-cues", 0, "form cues in the components detail (default from config)")
	return cmd
}

func newAvoidCmd(a *app) *cobra.Command {
	var (
		ex       exerciseFlags
		injuries []string
	)

	cmd := &cobra.Command{
		Use:   "avoid",
		Short: "Check whether an exercise conflicts with injuries",
		Example: `  coachtip avoid --name Deadlift --primary-muscle hamstrings --injury "lower back"
  coachtip --db catalog.db avoid --name "Push-up" --injury "Shoulder:chest,deltoids"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			exercise, err := ex.resolve(cmd.Context(), a)
			if err != nil {
				return err
			}
			if coaching.ShouldAvoid(exercise, parseInjuries(injuries)) {
				printf(cmd, "avoid: %s works an injured area\n", exercise.Name)
			} else {
				printf(cmd, "ok: %s\n", exercise.Name)
			}
			return nil
		},
	}

	ex.bind(cmd)
	cmd.Flags().StringArrayVar(&injuries, "injury", nil, `injury as "name:muscle,muscle" or a single muscle (repeatable)`)
	_ = cmd.MarkFlagRequired("injury")
	return cmd
}
