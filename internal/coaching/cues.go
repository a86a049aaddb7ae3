package coaching

import "strings"

// DefaultMaxCues is the number of form cues a composed tip carries.
const DefaultMaxCues = 2

// DefaultCues are returned when neither the exercise table nor a movement
// pattern matches.
var DefaultCues = []string{"Focus on proper form", "Control the movement"}

type cueRule struct {
	pattern string
	cues    []string
}

// First pattern contained in the lowercased name wins.
var formCues = []cueRule{
	{"deadlift", []string{
		"Keep chest up throughout the movement",
		"Push through your heels",
		"Keep the bar close to your shins",
		"Brace your core throughout the lift",
		"Hinge at the hips, not the waist",
	}},
	{"squat", []string{
		"Knees track over your toes",
		"Keep your chest up",
		"Push through your full foot",
		"Brace your core",
		"Go to parallel or below",
	}},
	{"bench press", []string{
		"Retract your scapula",
		"Keep your feet flat on the ground",
		"Control the descent",
		"Drive through your full foot",
		"Keep your elbows at 45 degrees",
	}},
	{"overhead press", []string{
		"Keep your core tight",
		"Press directly overhead",
		"Don't lean back excessively",
		"Keep your head forward",
		"Brace your core throughout",
	}},
	{"curl", []string{
		"Keep your elbows at your sides",
		"Control the movement",
		"Don't swing the weight",
		"Squeeze at the top",
		"Full range of motion",
	}},
	{"push-up", []string{
		"Keep your body in a straight line",
		"Lower your chest to the ground",
		"Engage your core",
		"Full range of motion",
		"Keep your elbows at 45 degrees",
	}},
	{"pull-up", []string{
		"Pull your elbows to your sides",
		"Engage your lats",
		"Full range of motion",
		"Control the descent",
		"Keep your core tight",
	}},
	{"plank", []string{
		"Keep your body in a straight line",
		"Engage your core",
		"Don't let your hips sag",
		"Breathe steadily",
		"Hold the position",
	}},
	{"crunch", []string{
		"Keep your lower back on the ground",
		"Engage your abs",
		"Don't pull on your neck",
		"Control the movement",
		"Focus on the contraction",
	}},
	{"russian twist", []string{
		"Keep your core engaged",
		"Rotate from your torso",
		"Keep your feet off the ground",
		"Control the movement",
		"Focus on oblique contraction",
	}},
	{"bird dog", []string{
		"Keep your core stable",
		"Extend opposite arm and leg",
		"Maintain balance",
		"Keep your back straight",
		"Control the movement",
	}},
	{"dead bug", []string{
		"Keep your lower back pressed to the ground",
		"Extend opposite arm and leg",
		"Maintain core tension",
		"Control the movement",
		"Don't let your back arch",
	}},
	{"glute bridge", []string{
		"Keep your feet flat on the ground",
		"Drive through your heels",
		"Squeeze your glutes at the top",
		"Keep your core engaged",
		"Control the movement",
	}},
	{"mountain climber", []string{
		"Keep your body in a straight line",
		"Drive your knees toward your chest",
		"Engage your core",
		"Maintain plank position",
		"Keep your hips level",
	}},
	{"flutter kicks", []string{
		"Keep your lower back on the ground",
		"Engage your core",
		"Keep your legs straight",
		"Control the movement",
		"Focus on lower abs",
	}},
	{"heel taps", []string{
		"Keep your lower back on the ground",
		"Engage your core",
		"Tap your heels alternately",
		"Control the movement",
		"Don't let your back arch",
	}},
	{"side plank", []string{
		"Keep your body in a straight line",
		"Engage your core",
		"Stack your feet",
		"Hold the position",
		"Don't let your hips sag",
	}},
	{"ab wheel", []string{
		"Keep your core tight",
		"Control the rollout",
		"Don't let your hips sag",
		"Roll out as far as you can control",
		"Pull back with your core",
	}},
	{"hanging", []string{
		"Keep your core engaged",
		"Control the movement",
		"Full range of motion",
		"Don't swing",
		"Focus on the target muscles",
	}},
	{"suspension", []string{
		"Maintain body tension",
		"Control the movement",
		"Adjust difficulty with foot position",
		"Keep your core engaged",
		"Focus on stability",
	}},
	{"stability ball", []string{
		"Maintain ball stability",
		"Control the movement",
		"Engage your core throughout",
		"Keep your balance",
		"Focus on the target muscles",
	}},
	{"medicine ball", []string{
		"Control the ball",
		"Maintain proper form",
		"Focus on power transfer",
		"Engage your core",
		"Follow through with the movement",
	}},
	{"slam ball", []string{
		"Control the slam",
		"Maintain proper form",
		"Focus on explosive movement",
		"Engage your core",
		"Absorb the impact properly",
	}},
	{"cable", []string{
		"Maintain cable tension",
		"Control the movement",
		"Full range of motion",
		"Keep your core engaged",
		"Focus on the target muscles",
	}},
	{"miniband", []string{
		"Maintain band tension",
		"Control the movement",
		"Focus on resistance",
		"Keep proper form",
		"Don't let the band slack",
	}},
	{"sliders", []string{
		"Control the slide",
		"Maintain stability",
		"Focus on smooth movement",
		"Keep your core engaged",
		"Don't let your form break",
	}},
	{"parallette", []string{
		"Maintain proper hand position",
		"Control the movement",
		"Keep your body aligned",
		"Engage your core",
		"Focus on stability",
	}},
	{"gymnastic rings", []string{
		"Maintain ring stability",
		"Control the movement",
		"Focus on shoulder stability",
		"Keep your core engaged",
		"Don't let the rings swing",
	}},
}

var patternCues = map[Pattern][]string{
	PatternHinge:     {"Hinge at the hips, not the waist", "Keep your back straight"},
	PatternSquat:     {"Knees track over toes", "Keep chest up"},
	PatternPush:      {"Keep core engaged", "Full range of motion"},
	PatternPull:      {"Engage lats", "Keep shoulders down"},
	PatternCarry:     {"Keep core tight", "Maintain posture"},
	PatternRotation:  {"Control the movement", "Engage obliques"},
	PatternCore:      {"Keep your core engaged", "Control the movement"},
	PatternStability: {"Maintain stability", "Keep your core engaged"},
	PatternBalance:   {"Maintain balance", "Keep your core engaged"},
}

// FormCues returns up to maxCues cues for the exercise: the exercise table
// first, then the movement pattern, then DefaultCues. A maxCues below one
// means DefaultMaxCues. The returned slice is always a fresh copy.
func FormCues(ex Exercise, maxCues int) []string {
	if maxCues < 1 {
		maxCues = DefaultMaxCues
	}
	name := lower(ex.Name)
	for _, r := range formCues {
		if strings.Contains(name, r.pattern) {
			return firstN(r.cues, maxCues)
		}
	}
	if p, ok := MovementPattern(name); ok {
		return firstN(patternCues[p], maxCues)
	}
	return firstN(DefaultCues, maxCues)
}

// PatternCues returns the generic cues for a movement pattern.
func PatternCues(p Pattern) []string {
	return firstN(patternCues[p], len(patternCues[p]))
}

func firstN(s []string, n int) []string {
	if n > len(s) {
		n = len(s)
	}
	out := make([]string, n)
	copy(out, s[:n])
	return out
}
