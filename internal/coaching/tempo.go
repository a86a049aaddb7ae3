package coaching

import "strings"

// TempoHold marks an isometric hold rather than a down-pause-up count.
const TempoHold = "hold"

type tempoRule struct {
	pattern string
	tempo   string
}

// Evaluated in order, first against the name and then against the equipment.
var tempoOverrides = []tempoRule{
	// bodyweight
	{"push-up", "1-0-1"},
	{"pull-up", "2-0-1"},
	{"dip", "2-0-1"},
	{"burpee", "1-0-1"},
	{"mountain climber", "1-0-1"},

	// explosive
	{"clean", "1-0-1"},
	{"snatch", "1-0-1"},
	{"jump", "1-0-1"},
	{"slam ball", "1-0-1"},
	{"medicine ball", "1-0-1"},

	// isometric
	{"plank", TempoHold},
	{"wall sit", TempoHold},
	{"dead hang", TempoHold},
	{"side plank", TempoHold},
	{"l-sit", TempoHold},

	// core
	{"crunch", "2-1-2"},
	{"sit-up", "2-1-2"},
	{"russian twist", "2-1-2"},
	{"flutter kicks", "2-1-2"},
	{"heel taps", "2-1-2"},
	{"bird dog", TempoHold},
	{"dead bug", "2-1-2"},
	{"glute bridge", "2-1-2"},

	// stability
	{"stability ball", "2-1-2"},
	{"suspension", "2-1-2"},
	{"gymnastic rings", "2-1-2"},
	{"parallette", "2-1-2"},
	{"sliders", "2-1-2"},
	{"miniband", "2-1-2"},

	{"cable", "2-1-2"},
	{"ab wheel", "3-1-3"},
}

// GoalTempo is the default tempo pair for a goal.
type GoalTempo struct {
	Compound  string `json:"compound"`
	Isolation string `json:"isolation"`
	Reason    string `json:"reason"`
}

var goalTempos = map[Goal]GoalTempo{
	GoalStrength:    {"3-1-3", "2-1-2", "Slower tempo for strength development"},
	GoalHypertrophy: {"3-1-2", "2-1-2", "Emphasize eccentric phase for muscle growth"},
	GoalEndurance:   {"2-1-2", "2-1-2", "Moderate tempo for endurance training"},
	GoalFatLoss:     {"2-1-2", "2-1-2", "Balanced tempo for fat loss"},
	GoalPower:       {"1-0-1", "2-0-1", "Explosive concentric for power development"},
}

// TempoForGoal returns the default tempo pair for goal.
func TempoForGoal(goal Goal) (GoalTempo, bool) {
	t, ok := goalTempos[goal]
	return t, ok
}

// Tempo returns the recommended tempo for an exercise. Exercise-specific
// overrides win over the goal default; non-compound movements take the
// goal's isolation tempo. It reports false only for an unknown goal with no
// matching override.
func Tempo(goal Goal, ex Exercise) (string, bool) {
	if t, ok := tempoOverride(lower(ex.Name), lower(ex.Equipment)); ok {
		return t, true
	}
	gt, ok := goalTempos[goal]
	if !ok {
		return "", false
	}
	if IsCompound(ex.Name) {
		return gt.Compound, true
	}
	return gt.Isolation, true
}

func tempoOverride(name, equipment string) (string, bool) {
	for _, field := range []string{name, equipment} {
		if field == "" {
			continue
		}
		for _, r := range tempoOverrides {
			if strings.Contains(field, r.pattern) {
				return r.tempo, true
			}
		}
	}
	return "", false
}
