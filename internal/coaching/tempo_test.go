package coaching

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestTempo verifies overrides win over the goal default.
func TestTempo(t *testing.T) {
	tests := []struct {
		name string
		goal Goal
		ex   Exercise
		want string
	}{
		{"compound strength", GoalStrength, Exercise{Name: "Deadlift", Equipment: "Barbell"}, "3-1-3"},
		{"compound hypertrophy", GoalHypertrophy, Exercise{Name: "Back Squat"}, "3-1-2"},
		{"isolation hypertrophy", GoalHypertrophy, Exercise{Name: "Dumbbell Bicep Curl"}, "2-1-2"},
		{"compound power", GoalPower, Exercise{Name: "Bench Press"}, "1-0-1"},
		{"isolation power", GoalPower, Exercise{Name: "Lateral Raise"}, "2-0-1"},
		{"bodyweight override", GoalStrength, Exercise{Name: "Push-up"}, "1-0-1"},
		{"explosive override", GoalStrength, Exercise{Name: "Hang Clean"}, "1-0-1"},
		{"jump override", GoalEndurance, Exercise{Name: "Box Jump"}, "1-0-1"},
		{"isometric", GoalFatLoss, Exercise{Name: "Front Plank"}, TempoHold},
		{"side plank hits plank first", GoalFatLoss, Exercise{Name: "Side Plank"}, TempoHold},
		{"bird dog hold", GoalFatLoss, Exercise{Name: "Bird Dog"}, TempoHold},
		{"ab wheel", GoalStrength, Exercise{Name: "Ab Wheel Rollout"}, "3-1-3"},
		{"equipment override", GoalPower, Exercise{Name: "Inverted Row", Equipment: "Suspension Trainer"}, "2-1-2"},
		{"cable equipment", GoalStrength, Exercise{Name: "Face Pull", Equipment: "Cable"}, "2-1-2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Tempo(tt.goal, tt.ex)
			assert.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

// TestTempoUnknownGoal verifies an unknown goal yields no tempo unless an override fires.
func TestTempoUnknownGoal(t *testing.T) {
	_, ok := Tempo(Goal("yoga"), Exercise{Name: "Bench Press"})
	assert.False(t, ok)

	got, ok := Tempo(Goal("yoga"), Exercise{Name: "Push-up"})
	assert.True(t, ok)
	assert.Equal(t, "1-0-1", got)
}

// TestTempoForGoal verifies every goal has a default pair.
func TestTempoForGoal(t *testing.T) {
	for _, g := range Goals {
		gt, ok := TempoForGoal(g)
		assert.True(t, ok, g)
		assert.NotEmpty(t, gt.Compound)
		assert.NotEmpty(t, gt.Isolation)
		assert.NotEmpty(t, gt.Reason)
	}
}
