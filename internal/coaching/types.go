// Package coaching composes short coaching annotations ("coach tips") for a
// single exercise: an effort target, a movement tempo, form cues, equipment
// guidance, progression guidance and injury-avoidance guidance.
//
// Everything in this package is a pure function over immutable values. The
// keyword tables are package-level and never mutated, so every exported
// function is safe for concurrent use.
package coaching

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Goal is the client's training goal.
type Goal string

const (
	GoalFatLoss     Goal = "fat_loss"
	GoalHypertrophy Goal = "hypertrophy"
	GoalStrength    Goal = "strength"
	GoalEndurance   Goal = "endurance"
	GoalPower       Goal = "power"
)

// Goals lists every supported goal in display order.
var Goals = []Goal{GoalFatLoss, GoalHypertrophy, GoalStrength, GoalEndurance, GoalPower}

// ParseGoal converts a raw goal string into a Goal.
func ParseGoal(s string) (Goal, error) {
	g := Goal(strings.ToLower(strings.TrimSpace(s)))
	if !g.Valid() {
		return "", invalid("goal", s, ErrUnknownGoal)
	}
	return g, nil
}

// Valid reports whether g is one of the enumerated goals.
func (g Goal) Valid() bool {
	for _, known := range Goals {
		if g == known {
			return true
		}
	}
	return false
}

// UnmarshalText rejects unknown goals at decode time.
func (g *Goal) UnmarshalText(b []byte) error {
	parsed, err := ParseGoal(string(b))
	if err != nil {
		return err
	}
	*g = parsed
	return nil
}

// Phase is a periodization phase, 1 through 4.
type Phase int

// ParsePhase converts a raw phase number into a Phase.
func ParsePhase(n int) (Phase, error) {
	p := Phase(n)
	if !p.Valid() {
		return 0, invalid("phase", fmt.Sprint(n), ErrInvalidPhase)
	}
	return p, nil
}

// Valid reports whether p is within 1..4.
func (p Phase) Valid() bool {
	return p >= 1 && p <= 4
}

// UnmarshalJSON rejects phases outside 1..4 at decode time.
func (p *Phase) UnmarshalJSON(b []byte) error {
	var n int
	if err := json.Unmarshal(b, &n); err != nil {
		return invalid("phase", string(b), ErrInvalidPhase)
	}
	parsed, err := ParsePhase(n)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// Experience is the client's training experience.
type Experience string

const (
	Beginner     Experience = "Beginner"
	Intermediate Experience = "Intermediate"
	Advanced     Experience = "Advanced"
)

// Experiences lists every supported experience level.
var Experiences = []Experience{Beginner, Intermediate, Advanced}

// ParseExperience converts a raw experience string into an Experience.
// Matching is case-insensitive ("beginner" parses as Beginner).
func ParseExperience(s string) (Experience, error) {
	trimmed := strings.TrimSpace(s)
	for _, known := range Experiences {
		if strings.EqualFold(trimmed, string(known)) {
			return known, nil
		}
	}
	return "", invalid("experience", s, ErrUnknownExperience)
}

// Valid reports whether e is one of the enumerated experience levels.
func (e Experience) Valid() bool {
	for _, known := range Experiences {
		if e == known {
			return true
		}
	}
	return false
}

// UnmarshalText rejects unknown experience levels at decode time.
func (e *Experience) UnmarshalText(b []byte) error {
	parsed, err := ParseExperience(string(b))
	if err != nil {
		return err
	}
	*e = parsed
	return nil
}

// Exercise is the canonical exercise record the engine works on. Name is
// matched case-insensitively; an empty Equipment is treated as bodyweight by
// the equipment resolver.
type Exercise struct {
	Name             string   `json:"name"`
	Category         string   `json:"category,omitempty"`
	BodyPart         string   `json:"body_part,omitempty"`
	Equipment        string   `json:"equipment,omitempty"`
	ExperienceLevel  string   `json:"experience_level,omitempty"`
	PrimaryMuscle    string   `json:"primary_muscle,omitempty"`
	SecondaryMuscles []string `json:"secondary_muscles,omitempty"`
}

// Validate rejects an exercise without a name.
func (e Exercise) Validate() error {
	if strings.TrimSpace(e.Name) == "" {
		return invalid("exercise.name", e.Name, ErrMissingExerciseName)
	}
	return nil
}

// Injury is a known client injury.
type Injury struct {
	Name            string   `json:"name"`
	Severity        string   `json:"severity,omitempty"`
	AffectedMuscles []string `json:"affected_muscles"`
}

// UnmarshalJSON accepts camelCase "affectedMuscles" and the "injury" name
// key alongside the canonical field names.
func (i *Injury) UnmarshalJSON(b []byte) error {
	var raw struct {
		Name                 string   `json:"name"`
		Injury               string   `json:"injury"`
		Severity             string   `json:"severity"`
		AffectedMuscles      []string `json:"affected_muscles"`
		AffectedMusclesCamel []string `json:"affectedMuscles"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*i = Injury{
		Name:            firstNonEmpty(raw.Name, raw.Injury),
		Severity:        raw.Severity,
		AffectedMuscles: raw.AffectedMuscles,
	}
	if i.AffectedMuscles == nil {
		i.AffectedMuscles = raw.AffectedMusclesCamel
	}
	return nil
}

// Performance summarizes the previous cycle.
type Performance struct {
	Improvement float64 `json:"improvement,omitempty"`
	Plateau     bool    `json:"plateau,omitempty"`
	Regression  bool    `json:"regression,omitempty"`
}

// Progression is the client's progression history for one exercise slot.
type Progression struct {
	CurrentPhase        int          `json:"current_phase"`
	PreviousPerformance *Performance `json:"previous_performance,omitempty"`
	Goal                string       `json:"goal,omitempty"`
	Sets                int          `json:"sets"`
	Reps                string       `json:"reps"`
}

// UnmarshalJSON accepts camelCase "currentPhase" and "previousPerformance"
// alongside the canonical field names.
func (p *Progression) UnmarshalJSON(b []byte) error {
	var raw struct {
		CurrentPhase             *int         `json:"current_phase"`
		CurrentPhaseCamel        *int         `json:"currentPhase"`
		PreviousPerformance      *Performance `json:"previous_performance"`
		PreviousPerformanceCamel *Performance `json:"previousPerformance"`
		Goal                     string       `json:"goal"`
		Sets                     int          `json:"sets"`
		Reps                     string       `json:"reps"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*p = Progression{
		PreviousPerformance: raw.PreviousPerformance,
		Goal:                raw.Goal,
		Sets:                raw.Sets,
		Reps:                raw.Reps,
	}
	switch {
	case raw.CurrentPhase != nil:
		p.CurrentPhase = *raw.CurrentPhase
	case raw.CurrentPhaseCamel != nil:
		p.CurrentPhase = *raw.CurrentPhaseCamel
	}
	if p.PreviousPerformance == nil {
		p.PreviousPerformance = raw.PreviousPerformanceCamel
	}
	return nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// Context is the coaching context a tip is composed for.
type Context struct {
	Goal        Goal         `json:"goal"`
	Phase       Phase        `json:"phase"`
	Experience  Experience   `json:"experience"`
	Injuries    []Injury     `json:"injuries,omitempty"`
	Progression *Progression `json:"progression,omitempty"`
}

// NewContext builds a validated Context from raw values.
func NewContext(goal string, phase int, experience string, injuries []Injury, progression *Progression) (Context, error) {
	g, err := ParseGoal(goal)
	if err != nil {
		return Context{}, err
	}
	p, err := ParsePhase(phase)
	if err != nil {
		return Context{}, err
	}
	x, err := ParseExperience(experience)
	if err != nil {
		return Context{}, err
	}
	return Context{Goal: g, Phase: p, Experience: x, Injuries: injuries, Progression: progression}, nil
}

// Validate reports the first enumerated field that is out of range. A zero
// Context (fields never set) is invalid.
func (c Context) Validate() error {
	if !c.Goal.Valid() {
		return invalid("goal", string(c.Goal), ErrUnknownGoal)
	}
	if !c.Phase.Valid() {
		return invalid("phase", fmt.Sprint(int(c.Phase)), ErrInvalidPhase)
	}
	if !c.Experience.Valid() {
		return invalid("experience", string(c.Experience), ErrUnknownExperience)
	}
	return nil
}

// Components are the individual pieces of one tip before assembly.
type Components struct {
	Effort          string   `json:"effort"`
	Tempo           string   `json:"tempo,omitempty"`
	FormCues        []string `json:"form_cues"`
	EquipmentNote   string   `json:"equipment_note,omitempty"`
	ProgressionNote string   `json:"progression_note,omitempty"`
	InjuryNote      string   `json:"injury_note,omitempty"`
}
