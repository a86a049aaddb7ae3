package alpha

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/claude/coachtip/internal/coaching"
	"github.com/claude/coachtip/internal/ingest"
	"github.com/claude/coachtip/internal/models"
	"github.com/claude/coachtip/internal/storage"
	"github.com/rs/zerolog"
)

// ExerciseFinder resolves a plan's exercise names against the catalog.
type ExerciseFinder interface {
	FindExercise(ctx context.Context, name string) (*models.ExerciseRow, error)
}

// Annotator turns an Alpha Progression export into sessions with a coaching
// tip per planned exercise.
type Annotator struct {
	catalog ExerciseFinder
	log     zerolog.Logger
}

// NewAnnotator creates an Annotator. catalog may be nil, in which case only
// the name and equipment from the export are used.
func NewAnnotator(catalog ExerciseFinder, log zerolog.Logger) *Annotator {
	return &Annotator{catalog: catalog, log: log}
}

// Annotate parses r and annotates every session with tips for cctx.
func (a *Annotator) Annotate(ctx context.Context, r io.Reader, cctx coaching.Context) ([]models.AnnotatedSession, *ingest.Result, error) {
	sessions, err := Parse(r)
	if err != nil {
		return nil, nil, fmt.Errorf("parsing CSV: %w", err)
	}
	return a.AnnotateSessions(ctx, sessions, cctx)
}

// AnnotateSessions annotates already parsed sessions. Exercises found in the
// catalog pick up its muscles, which drives the avoid flag.
func (a *Annotator) AnnotateSessions(ctx context.Context, sessions []models.AlphaSession, cctx coaching.Context) ([]models.AnnotatedSession, *ingest.Result, error) {
	if err := cctx.Validate(); err != nil {
		return nil, nil, err
	}

	result := &ingest.Result{SessionsParsed: len(sessions)}
	out := make([]models.AnnotatedSession, 0, len(sessions))

	for _, s := range sessions {
		exs := make([]coaching.Exercise, len(s.Exercises))
		for i, pe := range s.Exercises {
			ex, matched, err := a.resolve(ctx, pe)
			if err != nil {
				return nil, nil, err
			}
			if matched {
				result.CatalogMatches++
			}
			exs[i] = ex
		}

		tips, err := coaching.ComposeAll(exs, cctx)
		if err != nil {
			return nil, nil, fmt.Errorf("session %q: %w", s.Name, err)
		}

		as := models.AnnotatedSession{Name: s.Name, Date: s.Date, Exercises: make([]models.AnnotatedExercise, len(s.Exercises))}
		for i, pe := range s.Exercises {
			ae := models.AnnotatedExercise{
				Number:      pe.Number,
				Name:        pe.Name,
				Equipment:   pe.Equipment,
				TargetReps:  pe.TargetReps,
				WorkingSets: pe.WorkingSets(),
				Tip:         tips[i],
				Avoid:       coaching.ShouldAvoid(exs[i], cctx.Injuries),
			}
			if rpe, ok := pe.LoggedRPE(); ok {
				ae.LoggedRPE = &rpe
			}
			if ae.Avoid {
				result.Flagged++
			}
			as.Exercises[i] = ae
		}
		result.ExercisesReceived += len(s.Exercises)
		result.ExercisesAnnotated += len(tips)
		out = append(out, as)
	}

	a.log.Debug().
		Int("sessions", result.SessionsParsed).
		Int("exercises", result.ExercisesAnnotated).
		Int("catalog_matches", result.CatalogMatches).
		Int("flagged", result.Flagged).
		Msg("plan annotated")
	return out, result, nil
}

func (a *Annotator) resolve(ctx context.Context, pe models.AlphaExercise) (coaching.Exercise, bool, error) {
	ex := pe.Exercise()
	if a.catalog == nil {
		return ex, false, nil
	}
	for _, name := range lookupNames(pe.Name) {
		row, err := a.catalog.FindExercise(ctx, name)
		if errors.Is(err, storage.ErrNotFound) {
			continue
		}
		if err != nil {
			return ex, false, fmt.Errorf("looking up %q: %w", pe.Name, err)
		}
		merged := row.Exercise()
		merged.Name = pe.Name
		if pe.Equipment != "" {
			merged.Equipment = pe.Equipment
		}
		return merged, true, nil
	}
	return ex, false, nil
}

// lookupNames lists the names tried against the catalog. Plans often use
// plurals ("Hack Squats") where catalogs use the singular.
func lookupNames(name string) []string {
	names := []string{name}
	if singular, ok := strings.CutSuffix(strings.TrimSpace(name), "s"); ok && singular != "" {
		names = append(names, singular)
	}
	return names
}
