package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/claude/coachtip/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const exerciseColumns = `id, name, category, level, equipment, primary_muscle,
	secondary_muscles, video_url, instructions, created_at, updated_at`

// UpsertExercises batch-inserts catalog rows keyed by case-insensitive name.
// Existing rows are overwritten. Returns the number of rows written.
func (db *DB) UpsertExercises(ctx context.Context, rows []models.ExerciseRow) (int64, error) {
	rows = prepareExercises(rows)
	if len(rows) == 0 {
		return 0, nil
	}

	query := `INSERT INTO exercises (id, name, name_key, category, level, equipment,
		primary_muscle, secondary_muscles, video_url, instructions) VALUES `
	args := make([]any, 0, len(rows)*10)
	valueStrings := make([]string, 0, len(rows))

	for i, r := range rows {
		base := i * 10
		valueStrings = append(valueStrings, fmt.Sprintf(
			"($%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d)",
			base+1, base+2, base+3, base+4, base+5,
			base+6, base+7, base+8, base+9, base+10,
		))
		args = append(args, r.ID, r.Name, NameKey(r.Name), r.Category, r.Level, r.Equipment,
			r.PrimaryMuscle, r.SecondaryMuscles, r.VideoURL, r.Instructions)
	}

	query += strings.Join(valueStrings, ",") + ` ON CONFLICT (name_key) DO UPDATE SET
		name = EXCLUDED.name, category = EXCLUDED.category, level = EXCLUDED.level,
		equipment = EXCLUDED.equipment, primary_muscle = EXCLUDED.primary_muscle,
		secondary_muscles = EXCLUDED.secondary_muscles, video_url = EXCLUDED.video_url,
		instructions = EXCLUDED.instructions, updated_at = NOW()`

	tag, err := db.Pool.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("upserting exercises: %w", err)
	}
	return tag.RowsAffected(), nil
}

// GetExercise returns a catalog row by ID.
func (db *DB) GetExercise(ctx context.Context, id uuid.UUID) (*models.ExerciseRow, error) {
	row := db.Pool.QueryRow(ctx,
		`SELECT `+exerciseColumns+` FROM exercises WHERE id = $1`, id)
	r, err := scanExercise(row)
	if err != nil {
		return nil, fmt.Errorf("getting exercise %s: %w", id, notFound(err))
	}
	return r, nil
}

// FindExercise resolves a free-text name to a catalog row. An exact
// case-insensitive match wins; otherwise the shortest name containing the
// query is returned.
func (db *DB) FindExercise(ctx context.Context, name string) (*models.ExerciseRow, error) {
	key := NameKey(name)
	if key == "" {
		return nil, ErrNotFound
	}
	row := db.Pool.QueryRow(ctx,
		`SELECT `+exerciseColumns+` FROM exercises
		 WHERE name_key = $1 OR name_key LIKE $2 ESCAPE '\'
		 ORDER BY (name_key = $1) DESC, length(name_key) ASC, name_key ASC
		 LIMIT 1`, key, containsPattern(key))
	r, err := scanExercise(row)
	if err != nil {
		return nil, fmt.Errorf("finding exercise %q: %w", name, notFound(err))
	}
	return r, nil
}

// SearchExercises matches the query against name, primary muscle and
// equipment. An empty query lists the catalog alphabetically.
func (db *DB) SearchExercises(ctx context.Context, query string, limit int) ([]models.ExerciseRow, error) {
	q := containsPattern(NameKey(query))
	rows, err := db.Pool.Query(ctx,
		`SELECT `+exerciseColumns+` FROM exercises
		 WHERE name_key LIKE $1 ESCAPE '\' OR lower(primary_muscle) LIKE $1 ESCAPE '\'
		    OR lower(equipment) LIKE $1 ESCAPE '\'
		 ORDER BY name_key ASC
		 LIMIT $2`, q, searchLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("searching exercises: %w", err)
	}
	defer rows.Close()

	var result []models.ExerciseRow
	for rows.Next() {
		r, err := scanExercise(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning exercise: %w", err)
		}
		result = append(result, *r)
	}
	return result, rows.Err()
}

// containsPattern builds a LIKE pattern matching s anywhere, with the
// wildcards in s escaped so they match literally.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func scanExercise(row pgx.Row) (*models.ExerciseRow, error) {
	var r models.ExerciseRow
	if err := row.Scan(&r.ID, &r.Name, &r.Category, &r.Level, &r.Equipment, &r.PrimaryMuscle,
		&r.SecondaryMuscles, &r.VideoURL, &r.Instructions, &r.CreatedAt, &r.UpdatedAt); err != nil {
		return nil, err
	}
	return &r, nil
}
