package mcp

import (
	"context"

	"github.com/claude/coachtip/internal/models"
	"github.com/claude/coachtip/internal/storage"
	"github.com/google/uuid"
)

// DataSource abstracts the catalog and client profiles for MCP tools. Both
// storage backends (local) and HTTPClient (remote via REST API) satisfy it.
type DataSource interface {
	FindExercise(ctx context.Context, name string) (*models.ExerciseRow, error)
	SearchExercises(ctx context.Context, query string, limit int) ([]models.ExerciseRow, error)
	GetClient(ctx context.Context, id uuid.UUID) (*models.ClientRow, error)
}

// Compile-time check: storage backends satisfy DataSource.
var (
	_ DataSource = (*storage.DB)(nil)
	_ DataSource = (*storage.SQLite)(nil)
)
