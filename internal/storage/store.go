package storage

import (
	"context"
	"errors"
	"strings"

	"github.com/claude/coachtip/internal/coaching"
	"github.com/claude/coachtip/internal/models"
	"github.com/google/uuid"
)

// ErrNotFound is returned when a catalog or client row does not exist.
var ErrNotFound = errors.New("not found")

// DefaultSearchLimit caps SearchExercises when the caller passes no limit.
const DefaultSearchLimit = 25

// Catalog is the exercise catalog.
type Catalog interface {
	UpsertExercises(ctx context.Context, rows []models.ExerciseRow) (int64, error)
	GetExercise(ctx context.Context, id uuid.UUID) (*models.ExerciseRow, error)
	FindExercise(ctx context.Context, name string) (*models.ExerciseRow, error)
	SearchExercises(ctx context.Context, query string, limit int) ([]models.ExerciseRow, error)
}

// Clients stores client coaching profiles.
type Clients interface {
	UpsertClient(ctx context.Context, c models.ClientRow) (*models.ClientRow, error)
	GetClient(ctx context.Context, id uuid.UUID) (*models.ClientRow, error)
}

// ImportLogs records catalog import runs.
type ImportLogs interface {
	InsertImportLog(ctx context.Context, log ImportLog) (int64, error)
	UpdateImportLog(ctx context.Context, id int64, log ImportLog) error
	QueryImportLogs(ctx context.Context, limit int) ([]ImportLog, error)
}

// Store is everything the service needs from a backend. Both the PostgreSQL
// DB and the embedded SQLite store satisfy it.
type Store interface {
	Catalog
	Clients
	ImportLogs
	Close()
}

// NameKey is the case-insensitive identity of an exercise name.
func NameKey(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}

// MatchedExercise converts a row found for query into an engine exercise.
// The catalog supplies muscles and equipment, but a partial match ("Curl"
// finding "Bicep Curl") keeps the requested name so the tip describes the
// exercise that was asked for. An exact name-key match keeps the catalog
// spelling.
func MatchedExercise(row models.ExerciseRow, query string) coaching.Exercise {
	ex := row.Exercise()
	if NameKey(query) != NameKey(row.Name) && strings.TrimSpace(query) != "" {
		ex.Name = strings.TrimSpace(query)
	}
	return ex
}

// prepareExercises assigns missing IDs and drops rows whose name key was
// already seen earlier in the batch. A single upsert statement cannot touch
// the same row twice.
func prepareExercises(rows []models.ExerciseRow) []models.ExerciseRow {
	seen := make(map[string]bool, len(rows))
	out := make([]models.ExerciseRow, 0, len(rows))
	for _, r := range rows {
		key := NameKey(r.Name)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		if r.ID == uuid.Nil {
			r.ID = uuid.New()
		}
		if r.SecondaryMuscles == nil {
			r.SecondaryMuscles = []string{}
		}
		out = append(out, r)
	}
	return out
}

func searchLimit(limit int) int {
	if limit <= 0 {
		return DefaultSearchLimit
	}
	return limit
}
