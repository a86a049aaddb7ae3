package alpha

import (
	"strings"
	"testing"

	"github.com/claude/coachtip/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `
"Legs · Day 2 · Week 4 · Push-Pull-Legs";"2026-02-19 4:54 h";"1:02 hr"
"1. Hack Squats · Machine · 8 reps";"WU1 · 37,5 kg · 9 reps<br>WU2 · 72,5 kg · 7 reps"
#;KG;REPS;RIR
1;115;8;1
2;115;10;1
3;115;10;1
"2. Sumo Squats · Smith machine · 10 reps";"WU1 · 35 kg · 8 reps"
#;KG;REPS;RIR
1;70;8;1
2;70;12;1
"3. Hyperextensions on Roman Chair · Bodyweight · 10 reps";"WU1 · +0 kg · 8 reps"
#;KG;REPS;RIR
1;+35;10;0
2;+35;9;1
3;+35;10;0
"4. Reverse Lunges · Dumbbells · 10 reps"
#;KG;REPS;RIR
1;10;10;1
2;10;10;1
3;10;10;0
"5. Standing Calf Raises · Machine · 12 reps";"WU1 · 47,5 kg · 8 reps"
#;KG;REPS;RIR
1;157,5;11;1
2;157,5;11;0
3;157,5;10;0
"6. Hanging Leg Raises · Bodyweight · 12 reps · 2 dropsets"
#;KG;REPS;RIR
1;+0;12;1
2;+0;12;1
3;+0;12;0

"Push · Day 1 · Week 4 · Push-Pull-Legs";"2026-02-17 5:04 h";"1:12 hr"
"1. Bench Press · Barbell · 6 reps";"WU1 · 22,5 kg · 10 reps<br>WU2 · 47,5 kg · 8 reps<br>WU3 · 77,5 kg · 6 reps"
#;KG;REPS;RIR
1;102,5;6;0
2;102,5;6;0
3;100;6;0,5
`

// TestParseCompleteSessions covers the happy path end to end.
func TestParseCompleteSessions(t *testing.T) {
	sessions, err := Parse(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	require.Len(t, sessions, 2)

	s1 := sessions[0]
	assert.Equal(t, "Legs · Day 2 · Week 4 · Push-Pull-Legs", s1.Name)
	assert.Equal(t, "1:02 hr", s1.Duration)
	assert.Equal(t, 2026, s1.Date.Year())
	require.Len(t, s1.Exercises, 6)

	tests := []struct {
		name      string
		equipment string
		reps      int
		sets      int
		working   int
	}{
		{"Hack Squats", "Machine", 8, 5, 3},
		{"Sumo Squats", "Smith machine", 10, 3, 2},
		{"Hyperextensions on Roman Chair", "Bodyweight", 10, 4, 3},
		{"Reverse Lunges", "Dumbbells", 10, 3, 3},
		{"Standing Calf Raises", "Machine", 12, 4, 3},
		{"Hanging Leg Raises", "Bodyweight", 12, 3, 3},
	}
	for i, tt := range tests {
		ex := s1.Exercises[i]
		assert.Equal(t, i+1, ex.Number)
		assert.Equal(t, tt.name, ex.Name)
		assert.Equal(t, tt.equipment, ex.Equipment, tt.name)
		assert.Equal(t, tt.reps, ex.TargetReps, tt.name)
		assert.Len(t, ex.Sets, tt.sets, tt.name)
		assert.Equal(t, tt.working, ex.WorkingSets(), tt.name)
	}

	s2 := sessions[1]
	assert.Equal(t, "Push · Day 1 · Week 4 · Push-Pull-Legs", s2.Name)
	require.Len(t, s2.Exercises, 1)
	bench := s2.Exercises[0]
	require.Len(t, bench.Sets, 6)
	assert.Equal(t, 102.5, bench.Sets[3].WeightKg)
	assert.Equal(t, 0.5, bench.Sets[5].RIR)
}

// TestLoggedRPE verifies RIR converts to RPE over working sets only.
func TestLoggedRPE(t *testing.T) {
	sessions, err := Parse(strings.NewReader(sampleCSV))
	require.NoError(t, err)

	rpe, ok := sessions[0].Exercises[0].LoggedRPE()
	require.True(t, ok)
	assert.Equal(t, 9.0, rpe)

	_, ok = models.AlphaExercise{Sets: []models.AlphaSet{{IsWarmup: true}}}.LoggedRPE()
	assert.False(t, ok)
}

// TestParseWeight verifies comma decimals and bodyweight-plus notation.
func TestParseWeight(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		plus bool
	}{
		{"102,5", 102.5, false},
		{"+35", 35, true},
		{"+0", 0, true},
		{" 70 ", 70, false},
	}
	for _, tt := range tests {
		w, plus := parseWeight(tt.in)
		assert.Equal(t, tt.want, w, tt.in)
		assert.Equal(t, tt.plus, plus, tt.in)
	}
	assert.Equal(t, 0.5, parseDecimal("0,5"))
	assert.Equal(t, 0.0, parseDecimal("n/a"))
}

// TestWarmupParsing verifies warmups split on <br>.
func TestWarmupParsing(t *testing.T) {
	sets := parseWarmups("WU1 · 37,5 kg · 9 reps<br>WU2 · +0 kg · 7 reps")
	require.Len(t, sets, 2)
	assert.Equal(t, models.AlphaSet{Number: 1, WeightKg: 37.5, Reps: 9, IsWarmup: true}, sets[0])
	assert.Equal(t, models.AlphaSet{Number: 2, IsBodyweightPlus: true, Reps: 7, IsWarmup: true}, sets[1])
	assert.Nil(t, parseWarmups(""))
}

// TestParseErrors verifies structural errors carry the line number.
func TestParseErrors(t *testing.T) {
	_, err := Parse(strings.NewReader(`"1. Squat · Barbell · 5 reps"`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 1: exercise without session")

	_, err = Parse(strings.NewReader("\"Legs\";\"2026-02-19 4:54 h\";\"1:00 hr\"\n1;100;5;2\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2: set data without exercise")

	sessions, err := Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, sessions)
}
