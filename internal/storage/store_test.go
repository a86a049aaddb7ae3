package storage

import (
	"testing"

	"github.com/claude/coachtip/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// TestNameKey verifies case and whitespace folding.
func TestNameKey(t *testing.T) {
	assert.Equal(t, "barbell back squat", NameKey("  Barbell   Back\tSquat "))
	assert.Equal(t, "", NameKey("   "))
}

// TestPrepareExercises verifies duplicate and empty names are dropped and IDs assigned.
func TestPrepareExercises(t *testing.T) {
	keep := uuid.New()
	out := prepareExercises([]models.ExerciseRow{
		{ID: keep, Name: "Squat"},
		{Name: "SQUAT"},
		{Name: "  "},
		{Name: "Lunge"},
	})
	assert.Len(t, out, 2)
	assert.Equal(t, keep, out[0].ID)
	assert.NotEqual(t, uuid.Nil, out[1].ID)
	assert.Equal(t, []string{}, out[1].SecondaryMuscles)
}

// TestSearchLimit verifies the default cap.
func TestSearchLimit(t *testing.T) {
	assert.Equal(t, DefaultSearchLimit, searchLimit(0))
	assert.Equal(t, 5, searchLimit(5))
}

// TestMatchedExercise verifies partial matches keep the requested name.
func TestMatchedExercise(t *testing.T) {
	row := models.ExerciseRow{Name: "Bicep Curl", Equipment: "dumbbell", PrimaryMuscle: "biceps"}

	ex := MatchedExercise(row, "bicep  curl")
	assert.Equal(t, "Bicep Curl", ex.Name)

	ex = MatchedExercise(row, " Hammer Curl ")
	assert.Equal(t, "Hammer Curl", ex.Name)
	assert.Equal(t, "dumbbell", ex.Equipment)
	assert.Equal(t, "biceps", ex.PrimaryMuscle)
}

// TestContainsPattern verifies LIKE wildcards in user text match literally.
func TestContainsPattern(t *testing.T) {
	assert.Equal(t, "%t\\_bar row%", containsPattern("t_bar row"))
	assert.Equal(t, "%100\\%%", containsPattern("100%"))
	assert.Equal(t, "%a\\\\b%", containsPattern(`a\b`))
	assert.Equal(t, "%%", containsPattern(""))
}
