package coaching

import "strings"

// Class is the exercise class that drives the effort modifier.
type Class int

const (
	ClassNone Class = iota
	ClassCompound
	ClassIsolation
	ClassConditioning
	ClassCore
	ClassStability
	ClassBodyweight
)

func (c Class) String() string {
	switch c {
	case ClassCompound:
		return "compound"
	case ClassIsolation:
		return "isolation"
	case ClassConditioning:
		return "conditioning"
	case ClassCore:
		return "core"
	case ClassStability:
		return "stability"
	case ClassBodyweight:
		return "bodyweight"
	default:
		return "none"
	}
}

var (
	compoundKeywords = []string{
		"deadlift", "squat", "bench press", "overhead press",
		"barbell row", "power clean", "snatch", "thruster",
		"turkish get-up", "clean", "jerk",
	}

	isolationKeywords = []string{
		"curl", "extension", "fly", "lateral raise", "front raise",
		"tricep", "bicep", "calf raise", "leg extension", "leg curl",
		"external rotation", "cuban press",
	}

	conditioningKeywords = []string{
		"burpee", "mountain climber", "jumping jack", "high knee",
		"jump rope", "box jump", "wall ball", "thruster",
		"slam ball", "medicine ball throw",
	}

	coreKeywords = []string{
		"plank", "crunch", "sit-up", "leg raise", "ab wheel",
		"bird dog", "dead bug", "russian twist", "flutter kicks",
		"heel taps", "side plank", "glute bridge",
	}

	stabilityKeywords = []string{
		"stability ball", "suspension", "gymnastic rings", "parallette",
		"balance", "single leg", "unilateral",
	}

	stabilityEquipment = []string{
		"stability ball", "suspension trainer", "gymnastic rings", "parallette bars",
		"sliders", "miniband",
	}

	bodyweightKeywords = []string{
		"push-up", "pull-up", "dip", "plank", "crunch",
		"sit-up", "mountain climber", "burpee", "bird dog",
		"dead bug", "glute bridge", "flutter kicks", "heel taps",
	}
)

// IsCompound reports whether name contains a compound-lift keyword.
func IsCompound(name string) bool {
	return containsAny(lower(name), compoundKeywords)
}

// IsIsolation reports whether name contains an isolation keyword.
func IsIsolation(name string) bool {
	return containsAny(lower(name), isolationKeywords)
}

// IsConditioning reports whether name contains a conditioning keyword.
func IsConditioning(name string) bool {
	return containsAny(lower(name), conditioningKeywords)
}

// IsCore reports whether name contains a core keyword or the category
// mentions core.
func IsCore(name, category string) bool {
	return containsAny(lower(name), coreKeywords) || strings.Contains(lower(category), "core")
}

// IsStabilityOrBalance matches on the name first, then on the equipment.
func IsStabilityOrBalance(name, equipment string) bool {
	return containsAny(lower(name), stabilityKeywords) || containsAny(lower(equipment), stabilityEquipment)
}

// IsBodyweight matches bodyweight equipment or a bodyweight movement name.
func IsBodyweight(name, equipment string) bool {
	return strings.Contains(lower(equipment), "bodyweight") || containsAny(lower(name), bodyweightKeywords)
}

// Classify returns the first class that matches, in effort-modifier
// precedence: compound, isolation, conditioning, core, stability, bodyweight.
func Classify(ex Exercise) Class {
	switch {
	case IsCompound(ex.Name):
		return ClassCompound
	case IsIsolation(ex.Name):
		return ClassIsolation
	case IsConditioning(ex.Name):
		return ClassConditioning
	case IsCore(ex.Name, ex.Category):
		return ClassCore
	case IsStabilityOrBalance(ex.Name, ex.Equipment):
		return ClassStability
	case IsBodyweight(ex.Name, ex.Equipment):
		return ClassBodyweight
	default:
		return ClassNone
	}
}

// Pattern is a broad movement pattern.
type Pattern string

const (
	PatternHinge     Pattern = "hinge"
	PatternSquat     Pattern = "squat"
	PatternPush      Pattern = "push"
	PatternPull      Pattern = "pull"
	PatternCarry     Pattern = "carry"
	PatternRotation  Pattern = "rotation"
	PatternCore      Pattern = "core"
	PatternStability Pattern = "stability"
	PatternBalance   Pattern = "balance"
)

type patternEntry struct {
	pattern   Pattern
	exercises []string
}

// Order matters: "romanian deadlift" resolves to hinge before squat is tried.
var patternExercises = []patternEntry{
	{PatternHinge, []string{"deadlift", "romanian deadlift", "good morning", "kettlebell swing"}},
	{PatternSquat, []string{"squat", "lunge", "step-up", "wall sit", "goblet squat"}},
	{PatternPush, []string{"bench press", "push-up", "overhead press", "dip", "shoulder press"}},
	{PatternPull, []string{"pull-up", "row", "lat pulldown", "face pull", "barbell row"}},
	{PatternCarry, []string{"farmer's walk", "suitcase carry", "waiter's walk", "rack carry"}},
	{PatternRotation, []string{"russian twist", "wood chop", "pallof press", "cable rotation"}},
	{PatternCore, []string{"plank", "crunch", "sit-up", "leg raise", "ab wheel", "bird dog", "dead bug"}},
	{PatternStability, []string{"stability ball", "suspension", "gymnastic rings", "parallette"}},
	{PatternBalance, []string{"single leg", "balance", "stability", "unilateral"}},
}

// MovementPattern returns the first pattern whose representative exercises
// appear in name.
func MovementPattern(name string) (Pattern, bool) {
	n := lower(name)
	for _, e := range patternExercises {
		if containsAny(n, e.exercises) {
			return e.pattern, true
		}
	}
	return "", false
}

func lower(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func containsAny(s string, keywords []string) bool {
	if s == "" {
		return false
	}
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
