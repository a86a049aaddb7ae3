package coaching

import (
	"fmt"
	"regexp"
)

// ScaleEntry is one row of the RPE reference scale.
type ScaleEntry struct {
	RPE         int    `json:"rpe"`
	Description string `json:"description"`
}

// RPEScale describes every whole RPE value from 1 to 10.
var RPEScale = []ScaleEntry{
	{1, "Very light - No exertion"},
	{2, "Light - Minimal exertion"},
	{3, "Moderate - Some exertion"},
	{4, "Somewhat hard - Moderate exertion"},
	{5, "Hard - Challenging exertion"},
	{6, "Harder - Difficult exertion"},
	{7, "Very hard - Very difficult"},
	{8, "Extremely hard - Extremely difficult"},
	{9, "Maximum effort - Almost maximum"},
	{10, "Maximum effort - Absolute maximum"},
}

// DescribeRPE returns the scale description for a whole RPE value.
func DescribeRPE(n int) (string, bool) {
	if n < 1 || n > len(RPEScale) {
		return "", false
	}
	return RPEScale[n-1].Description, true
}

// NotationEntry explains one tempo notation.
type NotationEntry struct {
	Tempo       string `json:"tempo"`
	Description string `json:"description"`
}

// TempoNotation explains the tempo strings the engine emits, plus the two
// interval formats coaches commonly pair them with.
var TempoNotation = []NotationEntry{
	{"3-1-3", "3 seconds down (eccentric), 1 second pause, 3 seconds up (concentric)"},
	{"2-1-2", "2 seconds down, 1 second pause, 2 seconds up"},
	{"1-0-1", "1 second down, no pause, 1 second up (explosive)"},
	{TempoHold, "Hold position for specified duration"},
	{"emom", "Every minute on the minute"},
	{"amrap", "As many rounds as possible"},
}

var tempoCountRe = regexp.MustCompile(`^(\d+)-(\d+)-(\d+)$`)

// DescribeTempo returns the explanation for a tempo notation. Counts that are
// not in TempoNotation, such as "3-1-2", get a generated explanation.
func DescribeTempo(tempo string) (string, bool) {
	t := lower(tempo)
	for _, e := range TempoNotation {
		if e.Tempo == t {
			return e.Description, true
		}
	}
	m := tempoCountRe.FindStringSubmatch(t)
	if m == nil {
		return "", false
	}
	pause := m[2] + " " + plural(m[2], "second") + " pause"
	if m[2] == "0" {
		pause = "no pause"
	}
	return fmt.Sprintf("%s %s down, %s, %s %s up", m[1], plural(m[1], "second"), pause, m[3], plural(m[3], "second")), true
}

func plural(n, word string) string {
	if n == "1" {
		return word
	}
	return word + "s"
}
