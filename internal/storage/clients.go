package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/claude/coachtip/internal/coaching"
	"github.com/claude/coachtip/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// UpsertClient creates or replaces a client profile. A nil ID creates a new
// client. The stored row is returned with its timestamps.
func (db *DB) UpsertClient(ctx context.Context, c models.ClientRow) (*models.ClientRow, error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	injuries, progression, err := encodeClient(c)
	if err != nil {
		return nil, err
	}
	row := db.Pool.QueryRow(ctx, `
		INSERT INTO clients (id, name, goal, phase, experience, injuries, progression)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE
			SET name = EXCLUDED.name, goal = EXCLUDED.goal, phase = EXCLUDED.phase,
			    experience = EXCLUDED.experience, injuries = EXCLUDED.injuries,
			    progression = EXCLUDED.progression, updated_at = NOW()
		RETURNING `+clientColumns,
		c.ID, c.Name, string(c.Goal), int(c.Phase), string(c.Experience), injuries, progression)
	out, err := scanClient(row)
	if err != nil {
		return nil, fmt.Errorf("upserting client: %w", err)
	}
	return out, nil
}

// GetClient returns a client profile by ID.
func (db *DB) GetClient(ctx context.Context, id uuid.UUID) (*models.ClientRow, error) {
	row := db.Pool.QueryRow(ctx, `SELECT `+clientColumns+` FROM clients WHERE id = $1`, id)
	c, err := scanClient(row)
	if err != nil {
		return nil, fmt.Errorf("getting client %s: %w", id, notFound(err))
	}
	return c, nil
}

const clientColumns = `id, name, goal, phase, experience, injuries, progression, created_at, updated_at`

func scanClient(row pgx.Row) (*models.ClientRow, error) {
	var (
		c                     models.ClientRow
		goal, experience      string
		phase                 int
		injuries, progression []byte
	)
	if err := row.Scan(&c.ID, &c.Name, &goal, &phase, &experience,
		&injuries, &progression, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	if err := decodeClient(&c, goal, phase, experience, injuries, progression); err != nil {
		return nil, err
	}
	return &c, nil
}

// encodeClient renders the JSON columns. A nil progression is stored as NULL.
func encodeClient(c models.ClientRow) ([]byte, []byte, error) {
	injuries := c.Injuries
	if injuries == nil {
		injuries = []coaching.Injury{}
	}
	ib, err := json.Marshal(injuries)
	if err != nil {
		return nil, nil, fmt.Errorf("encoding injuries: %w", err)
	}
	if c.Progression == nil {
		return ib, nil, nil
	}
	pb, err := json.Marshal(c.Progression)
	if err != nil {
		return nil, nil, fmt.Errorf("encoding progression: %w", err)
	}
	return ib, pb, nil
}

func decodeClient(c *models.ClientRow, goal string, phase int, experience string, injuries, progression []byte) error {
	c.Goal = coaching.Goal(goal)
	c.Phase = coaching.Phase(phase)
	c.Experience = coaching.Experience(experience)
	if len(injuries) > 0 {
		if err := json.Unmarshal(injuries, &c.Injuries); err != nil {
			return fmt.Errorf("decoding injuries: %w", err)
		}
	}
	if len(progression) > 0 && string(progression) != "null" {
		c.Progression = new(coaching.Progression)
		if err := json.Unmarshal(progression, c.Progression); err != nil {
			return fmt.Errorf("decoding progression: %w", err)
		}
	}
	return nil
}
