package coaching

import "strings"

// InjuryNote lists the injuries the exercise was selected around, or "" when
// there are none.
func InjuryNote(injuries []Injury) string {
	if len(injuries) == 0 {
		return ""
	}
	names := make([]string, len(injuries))
	for i, inj := range injuries {
		names[i] = inj.Name
	}
	return "Selected to avoid: " + strings.Join(names, ", ")
}

// ShouldAvoid reports whether any affected muscle of any injury overlaps the
// exercise's primary or secondary muscles. Overlap is a case-insensitive
// substring match in either direction; empty muscle names never match.
func ShouldAvoid(ex Exercise, injuries []Injury) bool {
	if len(injuries) == 0 {
		return false
	}
	muscles := exerciseMuscles(ex)
	if len(muscles) == 0 {
		return false
	}
	for _, inj := range injuries {
		for _, affected := range inj.AffectedMuscles {
			a := lower(affected)
			if a == "" {
				continue
			}
			for _, m := range muscles {
				if strings.Contains(m, a) || strings.Contains(a, m) {
					return true
				}
			}
		}
	}
	return false
}

// FilterSafe returns the exercises ShouldAvoid does not flag, in input order.
func FilterSafe(exercises []Exercise, injuries []Injury) []Exercise {
	safe := make([]Exercise, 0, len(exercises))
	for _, ex := range exercises {
		if !ShouldAvoid(ex, injuries) {
			safe = append(safe, ex)
		}
	}
	return safe
}

func exerciseMuscles(ex Exercise) []string {
	out := make([]string, 0, 1+len(ex.SecondaryMuscles))
	for _, m := range append([]string{ex.PrimaryMuscle}, ex.SecondaryMuscles...) {
		if m = lower(m); m != "" {
			out = append(out, m)
		}
	}
	return out
}
