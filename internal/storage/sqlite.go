package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/claude/coachtip/internal/models"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// SQLite is an embedded single-file store used by the CLI and by servers
// configured without PostgreSQL.
type SQLite struct {
	db *sql.DB
}

// Compile-time check: *SQLite satisfies Store.
var _ Store = (*SQLite)(nil)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS exercises (
	id                TEXT PRIMARY KEY,
	name              TEXT NOT NULL,
	name_key          TEXT NOT NULL UNIQUE,
	category          TEXT NOT NULL DEFAULT '',
	level             TEXT NOT NULL DEFAULT '',
	equipment         TEXT NOT NULL DEFAULT '',
	primary_muscle    TEXT NOT NULL DEFAULT '',
	secondary_muscles TEXT NOT NULL DEFAULT '[]',
	video_url         TEXT NOT NULL DEFAULT '',
	instructions      TEXT NOT NULL DEFAULT '',
	created_at        TEXT NOT NULL,
	updated_at        TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS clients (
	id          TEXT PRIMARY KEY,
	name        TEXT NOT NULL,
	goal        TEXT NOT NULL,
	phase       INTEGER NOT NULL CHECK (phase BETWEEN 1 AND 4),
	experience  TEXT NOT NULL,
	injuries    TEXT NOT NULL DEFAULT '[]',
	progression TEXT,
	created_at  TEXT NOT NULL,
	updated_at  TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS import_logs (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	created_at    TEXT NOT NULL,
	source        TEXT NOT NULL,
	status        TEXT NOT NULL,
	rows_received INTEGER NOT NULL DEFAULT 0,
	rows_inserted INTEGER NOT NULL DEFAULT 0,
	rows_rejected INTEGER NOT NULL DEFAULT 0,
	duration_ms   INTEGER,
	error_message TEXT
);`

// OpenSQLite opens (or creates) the SQLite database at path and ensures the
// schema exists.
func OpenSQLite(path string) (*SQLite, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating sqlite dir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}
	// One writer at a time; avoids SQLITE_BUSY under concurrent requests.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating sqlite schema: %w", err)
	}
	return &SQLite{db: db}, nil
}

// Close closes the database.
func (s *SQLite) Close() {
	s.db.Close()
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) time.Time {
	t, _ := time.Parse(time.RFC3339Nano, s)
	return t
}

func sqliteNotFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

// UpsertExercises writes catalog rows in one transaction.
func (s *SQLite) UpsertExercises(ctx context.Context, rows []models.ExerciseRow) (int64, error) {
	rows = prepareExercises(rows)
	if len(rows) == 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO exercises (id, name, name_key, category, level,
		equipment, primary_muscle, secondary_muscles, video_url, instructions, created_at, updated_at)
		VALUES (?1, ?2, ?3, ?4, ?5, ?6, ?7, ?8, ?9, ?10, ?11, ?11)
		ON CONFLICT (name_key) DO UPDATE SET
		name = excluded.name, category = excluded.category, level = excluded.level,
		equipment = excluded.equipment, primary_muscle = excluded.primary_muscle,
		secondary_muscles = excluded.secondary_muscles, video_url = excluded.video_url,
		instructions = excluded.instructions, updated_at = excluded.updated_at`)
	if err != nil {
		return 0, fmt.Errorf("preparing exercise upsert: %w", err)
	}
	defer stmt.Close()

	var n int64
	ts := now()
	for _, r := range rows {
		secondary, err := json.Marshal(r.SecondaryMuscles)
		if err != nil {
			return 0, fmt.Errorf("encoding secondary muscles: %w", err)
		}
		res, err := stmt.ExecContext(ctx, r.ID.String(), r.Name, NameKey(r.Name), r.Category, r.Level,
			r.Equipment, r.PrimaryMuscle, string(secondary), r.VideoURL, r.Instructions, ts)
		if err != nil {
			return 0, fmt.Errorf("upserting exercise %q: %w", r.Name, err)
		}
		affected, _ := res.RowsAffected()
		n += affected
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing exercises: %w", err)
	}
	return n, nil
}

// GetExercise returns a catalog row by ID.
func (s *SQLite) GetExercise(ctx context.Context, id uuid.UUID) (*models.ExerciseRow, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+exerciseColumns+` FROM exercises WHERE id = ?`, id.String())
	r, err := scanSQLiteExercise(row)
	if err != nil {
		return nil, fmt.Errorf("getting exercise %s: %w", id, sqliteNotFound(err))
	}
	return r, nil
}

// FindExercise resolves a free-text name the same way DB.FindExercise does.
func (s *SQLite) FindExercise(ctx context.Context, name string) (*models.ExerciseRow, error) {
	key := NameKey(name)
	if key == "" {
		return nil, ErrNotFound
	}
	row := s.db.QueryRowContext(ctx,
		`SELECT `+exerciseColumns+` FROM exercises
		 WHERE name_key = ?1 OR instr(name_key, ?1) > 0
		 ORDER BY (name_key = ?1) DESC, length(name_key) ASC, name_key ASC
		 LIMIT 1`, key)
	r, err := scanSQLiteExercise(row)
	if err != nil {
		return nil, fmt.Errorf("finding exercise %q: %w", name, sqliteNotFound(err))
	}
	return r, nil
}

// SearchExercises matches the query against name, primary muscle and equipment.
func (s *SQLite) SearchExercises(ctx context.Context, query string, limit int) ([]models.ExerciseRow, error) {
	key := NameKey(query)
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+exerciseColumns+` FROM exercises
		 WHERE instr(name_key, ?1) > 0 OR instr(lower(primary_muscle), ?1) > 0
		    OR instr(lower(equipment), ?1) > 0
		 ORDER BY name_key ASC
		 LIMIT ?2`, key, searchLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("searching exercises: %w", err)
	}
	defer rows.Close()

	var result []models.ExerciseRow
	for rows.Next() {
		r, err := scanSQLiteExercise(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning exercise: %w", err)
		}
		result = append(result, *r)
	}
	return result, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSQLiteExercise(row rowScanner) (*models.ExerciseRow, error) {
	var (
		r                models.ExerciseRow
		id, secondary    string
		created, updated string
	)
	if err := row.Scan(&id, &r.Name, &r.Category, &r.Level, &r.Equipment, &r.PrimaryMuscle,
		&secondary, &r.VideoURL, &r.Instructions, &created, &updated); err != nil {
		return nil, err
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("parsing exercise id: %w", err)
	}
	r.ID = parsed
	if err := json.Unmarshal([]byte(secondary), &r.SecondaryMuscles); err != nil {
		return nil, fmt.Errorf("decoding secondary muscles: %w", err)
	}
	r.CreatedAt = parseTime(created)
	r.UpdatedAt = parseTime(updated)
	return &r, nil
}

// UpsertClient creates or replaces a client profile.
func (s *SQLite) UpsertClient(ctx context.Context, c models.ClientRow) (*models.ClientRow, error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	injuries, progression, err := encodeClient(c)
	if err != nil {
		return nil, err
	}
	var prog any
	if progression != nil {
		prog = string(progression)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO clients (id, name, goal, phase, experience, injuries, progression, created_at, updated_at)
		VALUES (?1, ?2, ?3, ?4, ?5, ?6, ?7, ?8, ?8)
		ON CONFLICT (id) DO UPDATE
			SET name = excluded.name, goal = excluded.goal, phase = excluded.phase,
			    experience = excluded.experience, injuries = excluded.injuries,
			    progression = excluded.progression, updated_at = excluded.updated_at`,
		c.ID.String(), c.Name, string(c.Goal), int(c.Phase), string(c.Experience),
		string(injuries), prog, now())
	if err != nil {
		return nil, fmt.Errorf("upserting client: %w", err)
	}
	return s.GetClient(ctx, c.ID)
}

// GetClient returns a client profile by ID.
func (s *SQLite) GetClient(ctx context.Context, id uuid.UUID) (*models.ClientRow, error) {
	var (
		c                       models.ClientRow
		rawID, goal, experience string
		phase                   int
		injuries                string
		progression             sql.NullString
		created, updated        string
	)
	err := s.db.QueryRowContext(ctx, `SELECT `+clientColumns+` FROM clients WHERE id = ?`, id.String()).
		Scan(&rawID, &c.Name, &goal, &phase, &experience, &injuries, &progression, &created, &updated)
	if err != nil {
		return nil, fmt.Errorf("getting client %s: %w", id, sqliteNotFound(err))
	}
	c.ID = id
	var prog []byte
	if progression.Valid {
		prog = []byte(progression.String)
	}
	if err := decodeClient(&c, goal, phase, experience, []byte(injuries), prog); err != nil {
		return nil, err
	}
	c.CreatedAt = parseTime(created)
	c.UpdatedAt = parseTime(updated)
	return &c, nil
}

// InsertImportLog creates a new import log entry and returns its ID.
func (s *SQLite) InsertImportLog(ctx context.Context, log ImportLog) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO import_logs (created_at, source, status, rows_received, rows_inserted,
		 rows_rejected, duration_ms, error_message)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		now(), log.Source, log.Status, log.RowsReceived, log.RowsInserted, log.RowsRejected,
		log.DurationMs, log.ErrorMessage)
	if err != nil {
		return 0, fmt.Errorf("inserting import log: %w", err)
	}
	return res.LastInsertId()
}

// UpdateImportLog updates an existing import log entry.
func (s *SQLite) UpdateImportLog(ctx context.Context, id int64, log ImportLog) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE import_logs SET status = ?, rows_received = ?, rows_inserted = ?, rows_rejected = ?,
		 duration_ms = ?, error_message = ? WHERE id = ?`,
		log.Status, log.RowsReceived, log.RowsInserted, log.RowsRejected,
		log.DurationMs, log.ErrorMessage, id)
	if err != nil {
		return fmt.Errorf("updating import log %d: %w", id, err)
	}
	return nil
}

// QueryImportLogs returns the most recent import logs.
func (s *SQLite) QueryImportLogs(ctx context.Context, limit int) ([]ImportLog, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, created_at, source, status, rows_received, rows_inserted, rows_rejected,
		 duration_ms, error_message
		 FROM import_logs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying import logs: %w", err)
	}
	defer rows.Close()

	var result []ImportLog
	for rows.Next() {
		var (
			l       ImportLog
			created string
		)
		if err := rows.Scan(&l.ID, &created, &l.Source, &l.Status, &l.RowsReceived,
			&l.RowsInserted, &l.RowsRejected, &l.DurationMs, &l.ErrorMessage); err != nil {
			return nil, fmt.Errorf("scanning import log: %w", err)
		}
		l.CreatedAt = parseTime(created)
		result = append(result, l)
	}
	return result, rows.Err()
}
