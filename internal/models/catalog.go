package models

import (
	"time"

	"github.com/claude/coachtip/internal/coaching"
	"github.com/google/uuid"
)

// ExerciseRow is a row of the exercises catalog table.
type ExerciseRow struct {
	ID               uuid.UUID `json:"id"`
	Name             string    `json:"name"`
	Category         string    `json:"category"`
	Level            string    `json:"level"`
	Equipment        string    `json:"equipment"`
	PrimaryMuscle    string    `json:"primary_muscle"`
	SecondaryMuscles []string  `json:"secondary_muscles"`
	VideoURL         string    `json:"video_url,omitempty"`
	Instructions     string    `json:"instructions,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// Exercise converts the row into the engine's exercise record.
func (r ExerciseRow) Exercise() coaching.Exercise {
	return coaching.Exercise{
		Name:             r.Name,
		Category:         r.Category,
		BodyPart:         r.PrimaryMuscle,
		Equipment:        r.Equipment,
		ExperienceLevel:  r.Level,
		PrimaryMuscle:    r.PrimaryMuscle,
		SecondaryMuscles: r.SecondaryMuscles,
	}
}

// ClientRow is a stored client coaching profile.
type ClientRow struct {
	ID          uuid.UUID             `json:"id"`
	Name        string                `json:"name"`
	Goal        coaching.Goal         `json:"goal"`
	Phase       coaching.Phase        `json:"phase"`
	Experience  coaching.Experience   `json:"experience"`
	Injuries    []coaching.Injury     `json:"injuries"`
	Progression *coaching.Progression `json:"progression,omitempty"`
	CreatedAt   time.Time             `json:"created_at"`
	UpdatedAt   time.Time             `json:"updated_at"`
}

// Context returns the coaching context stored for the client.
func (c ClientRow) Context() coaching.Context {
	return coaching.Context{
		Goal:        c.Goal,
		Phase:       c.Phase,
		Experience:  c.Experience,
		Injuries:    c.Injuries,
		Progression: c.Progression,
	}
}
