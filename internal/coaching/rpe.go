package coaching

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
)

// DefaultEffort is returned when no base target exists for a goal/phase.
const DefaultEffort = "RPE 7-8"

// baseEffort is indexed by phase-1.
var baseEffort = map[Goal][4]string{
	GoalFatLoss:     {"RPE 7-8", "RPE 7.5-8", "RPE 8", "RPE 6-7"},
	GoalHypertrophy: {"RPE 7-8", "RPE 7.5-8", "RPE 8", "RPE 6-7"},
	GoalStrength:    {"RPE 7", "RPE 8", "RPE 8.5", "RPE 6-7"},
	GoalEndurance:   {"RPE 6-7", "RPE 6.5-7.5", "RPE 7-8", "RPE 5-6"},
	GoalPower:       {"RPE 8-9", "RPE 8.5-9", "RPE 9", "RPE 7-8"},
}

var classModifier = map[Class]float64{
	ClassCompound:     0.5,
	ClassIsolation:    -0.5,
	ClassConditioning: -1.0,
	ClassCore:         -0.5,
	ClassStability:    -0.5,
	ClassBodyweight:   0,
}

var experienceModifier = map[Experience]float64{
	Beginner:     -0.5,
	Intermediate: 0,
	Advanced:     0.5,
}

var effortRangeRe = regexp.MustCompile(`^RPE (\d+(?:\.\d+)?)-(\d+(?:\.\d+)?)$`)

// BaseEffort returns the unadjusted target for goal and phase.
func BaseEffort(goal Goal, phase Phase) string {
	table, ok := baseEffort[goal]
	if !ok || !phase.Valid() {
		return DefaultEffort
	}
	return table[phase-1]
}

// EffortModifier returns the summed exercise-class and experience modifier.
func EffortModifier(ex Exercise, experience Experience) float64 {
	return classModifier[Classify(ex)] + experienceModifier[experience]
}

// EffortTarget returns the adjusted effort target for an exercise.
//
// Only range targets ("RPE a-b") are shifted. Single-value targets are fixed
// prescriptions and pass through unchanged, as does any target when the
// total modifier is zero. Shifted bounds are clamped to 1..10.
func EffortTarget(goal Goal, phase Phase, ex Exercise, experience Experience) string {
	return adjustEffort(BaseEffort(goal, phase), EffortModifier(ex, experience))
}

func adjustEffort(base string, modifier float64) string {
	if modifier == 0 {
		return base
	}
	m := effortRangeRe.FindStringSubmatch(base)
	if m == nil {
		return base
	}
	lo, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return base
	}
	hi, err := strconv.ParseFloat(m[2], 64)
	if err != nil {
		return base
	}
	lo = clampEffort(lo + modifier)
	hi = clampEffort(hi + modifier)
	if lo > hi {
		lo, hi = hi, lo
	}
	if lo == hi {
		return "RPE " + formatEffort(lo)
	}
	return fmt.Sprintf("RPE %s-%s", formatEffort(lo), formatEffort(hi))
}

func clampEffort(v float64) float64 {
	return math.Max(1, math.Min(10, v))
}

// formatEffort renders the shortest decimal form: 7, 7.5, 6.5.
func formatEffort(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
