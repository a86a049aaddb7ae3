package coaching

import "fmt"

// ImprovementThreshold is the improvement ratio above which progression is
// applied.
const ImprovementThreshold = 0.1

// ProgressionNote returns the progression guidance for p, or "" when none
// applies. Rules are checked in order: phase one, improvement, plateau,
// regression.
func ProgressionNote(p Progression) string {
	if p.CurrentPhase == 1 {
		return "Start with baseline loading, focus on form"
	}
	prev := p.PreviousPerformance
	if prev == nil {
		return ""
	}
	switch {
	case prev.Improvement > ImprovementThreshold:
		// The percentage is fixed text; it is not derived from Improvement.
		return fmt.Sprintf("Progression applied: %d sets, %s reps (10%% increase)", p.Sets, p.Reps)
	case prev.Plateau:
		return "Maintain current loading, focus on form and consistency"
	case prev.Regression:
		return "Reduced loading to focus on form and recovery"
	default:
		return ""
	}
}
