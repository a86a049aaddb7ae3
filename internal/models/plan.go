package models

import (
	"time"

	"github.com/claude/coachtip/internal/coaching"
)

// AlphaSession is one session of an Alpha Progression CSV export.
type AlphaSession struct {
	Name      string          `json:"name"`
	Date      time.Time       `json:"date"`
	Duration  string          `json:"duration"`
	Exercises []AlphaExercise `json:"exercises"`
}

// AlphaExercise is a single planned exercise within a session.
type AlphaExercise struct {
	Number     int        `json:"number"`
	Name       string     `json:"name"`
	Equipment  string     `json:"equipment"`
	TargetReps int        `json:"target_reps"`
	Sets       []AlphaSet `json:"sets"`
}

// AlphaSet is a single logged set (working or warmup).
type AlphaSet struct {
	Number           int     `json:"number"`
	WeightKg         float64 `json:"weight_kg"`
	IsBodyweightPlus bool    `json:"is_bodyweight_plus"`
	Reps             int     `json:"reps"`
	RIR              float64 `json:"rir"`
	IsWarmup         bool    `json:"is_warmup"`
}

// Exercise converts the planned exercise into the engine's exercise record.
func (e AlphaExercise) Exercise() coaching.Exercise {
	return coaching.Exercise{Name: e.Name, Equipment: e.Equipment}
}

// WorkingSets counts the non-warmup sets.
func (e AlphaExercise) WorkingSets() int {
	n := 0
	for _, s := range e.Sets {
		if !s.IsWarmup {
			n++
		}
	}
	return n
}

// LoggedRPE converts the mean working-set RIR into RPE (10 - RIR). It reports
// false when no working sets were logged.
func (e AlphaExercise) LoggedRPE() (float64, bool) {
	var sum float64
	n := 0
	for _, s := range e.Sets {
		if s.IsWarmup {
			continue
		}
		sum += s.RIR
		n++
	}
	if n == 0 {
		return 0, false
	}
	return 10 - sum/float64(n), true
}

// AnnotatedSession is a parsed session with a tip per exercise.
type AnnotatedSession struct {
	Name      string              `json:"name"`
	Date      time.Time           `json:"date"`
	Exercises []AnnotatedExercise `json:"exercises"`
}

// AnnotatedExercise pairs a planned exercise with its composed tip.
type AnnotatedExercise struct {
	Number      int      `json:"number"`
	Name        string   `json:"name"`
	Equipment   string   `json:"equipment"`
	TargetReps  int      `json:"target_reps"`
	WorkingSets int      `json:"working_sets"`
	LoggedRPE   *float64 `json:"logged_rpe,omitempty"`
	Tip         string   `json:"tip"`
	Avoid       bool     `json:"avoid"`
}
