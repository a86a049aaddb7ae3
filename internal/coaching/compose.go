package coaching

import (
	"fmt"
	"strings"
)

// MaxFormCues is the length of the longest cue list in the exercise table.
const MaxFormCues = 5

// Composer builds tip components. MaxCues bounds Components.FormCues; the
// assembled tip never carries more than DefaultMaxCues of them.
type Composer struct {
	MaxCues int
}

// BuildComponents runs every resolver for one exercise with the default cue
// count.
func BuildComponents(ex Exercise, ctx Context) (Components, error) {
	return Composer{}.Components(ex, ctx)
}

// Components runs every resolver for one exercise. The exercise and context
// are validated first.
func (cp Composer) Components(ex Exercise, ctx Context) (Components, error) {
	if err := ex.Validate(); err != nil {
		return Components{}, err
	}
	if err := ctx.Validate(); err != nil {
		return Components{}, err
	}

	c := Components{
		Effort:        EffortTarget(ctx.Goal, ctx.Phase, ex, ctx.Experience),
		FormCues:      FormCues(ex, cp.MaxCues),
		EquipmentNote: EquipmentNote(ex),
		InjuryNote:    InjuryNote(ctx.Injuries),
	}
	if t, ok := Tempo(ctx.Goal, ex); ok {
		c.Tempo = t
	}
	if ctx.Progression != nil {
		c.ProgressionNote = ProgressionNote(*ctx.Progression)
	}
	return c, nil
}

// String assembles the components into a single tip line: effort, tempo,
// the first two form cues, equipment note, progression note and injury note,
// joined by ", " with empty segments omitted and whitespace collapsed.
func (c Components) String() string {
	segments := make([]string, 0, 6)
	add := func(s string) {
		if strings.TrimSpace(s) != "" {
			segments = append(segments, s)
		}
	}

	add(c.Effort)
	if c.Tempo != "" {
		add(c.Tempo + " tempo")
	}
	cues := c.FormCues
	if len(cues) > DefaultMaxCues {
		cues = cues[:DefaultMaxCues]
	}
	add(strings.Join(cues, ", "))
	add(c.EquipmentNote)
	add(c.ProgressionNote)
	add(c.InjuryNote)

	return strings.Join(strings.Fields(strings.Join(segments, ", ")), " ")
}

// Compose returns the assembled coach tip for one exercise.
func Compose(ex Exercise, ctx Context) (string, error) {
	c, err := BuildComponents(ex, ctx)
	if err != nil {
		return "", err
	}
	return c.String(), nil
}

// ComposeSimple composes with phase 1, Intermediate experience, no injuries
// and no progression history.
func ComposeSimple(ex Exercise, goal Goal) (string, error) {
	return Compose(ex, Context{Goal: goal, Phase: 1, Experience: Intermediate})
}

// ComposeAll composes one tip per exercise, in input order. It stops at the
// first exercise that fails validation.
func ComposeAll(exercises []Exercise, ctx Context) ([]string, error) {
	if err := ctx.Validate(); err != nil {
		return nil, err
	}
	tips := make([]string, len(exercises))
	for i, ex := range exercises {
		tip, err := Compose(ex, ctx)
		if err != nil {
			return nil, fmt.Errorf("exercise %d: %w", i, err)
		}
		tips[i] = tip
	}
	return tips, nil
}
