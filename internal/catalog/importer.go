package catalog

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/claude/coachtip/internal/storage"
	"github.com/rs/zerolog"
)

// BatchSize is the number of rows upserted per statement.
const BatchSize = 100

// Store is the subset of storage the importer writes to.
type Store interface {
	storage.Catalog
	storage.ImportLogs
}

// Stats tracks import progress.
type Stats struct {
	RowsRead     int         `json:"rows_read"`
	RowsInserted int64       `json:"rows_inserted"`
	Batches      int         `json:"batches"`
	Rejected     []Rejection `json:"rejected,omitempty"`
}

// Importer reads catalog CSV exports and upserts them into the store.
type Importer struct {
	store     Store
	log       zerolog.Logger
	dryRun    bool
	batchSize int
}

// New creates a new Importer. In dry-run mode the CSV is parsed and counted
// but nothing is written.
func New(store Store, log zerolog.Logger, dryRun bool) *Importer {
	return &Importer{store: store, log: log, dryRun: dryRun, batchSize: BatchSize}
}

// Import parses r and writes the rows in batches. source names the input in
// the import log.
func (imp *Importer) Import(ctx context.Context, r io.Reader, source string) (*Stats, error) {
	start := time.Now()
	stats := &Stats{}

	var logID int64
	if !imp.dryRun {
		id, err := imp.store.InsertImportLog(ctx, storage.ImportLog{Source: source, Status: "running"})
		if err != nil {
			return stats, err
		}
		logID = id
	}

	err := imp.run(ctx, r, stats)

	if !imp.dryRun {
		imp.finish(ctx, logID, start, stats, err)
	}
	if err != nil {
		return stats, err
	}

	imp.log.Info().
		Str("source", source).
		Int("rows_read", stats.RowsRead).
		Int64("rows_inserted", stats.RowsInserted).
		Int("rows_rejected", len(stats.Rejected)).
		Bool("dry_run", imp.dryRun).
		Dur("duration", time.Since(start)).
		Msg("catalog import complete")
	return stats, nil
}

func (imp *Importer) run(ctx context.Context, r io.Reader, stats *Stats) error {
	rows, rejected, err := Parse(r)
	stats.Rejected = rejected
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidCSV, err)
	}
	stats.RowsRead = len(rows) + len(rejected)
	for _, rej := range rejected {
		imp.log.Warn().Int("line", rej.Line).Str("reason", rej.Reason).Msg("skipping catalog row")
	}

	for i := 0; i < len(rows); i += imp.batchSize {
		batch := rows[i:min(i+imp.batchSize, len(rows))]
		stats.Batches++
		if imp.dryRun {
			stats.RowsInserted += int64(len(batch))
			continue
		}
		n, err := imp.store.UpsertExercises(ctx, batch)
		if err != nil {
			return fmt.Errorf("batch %d: %w", stats.Batches, err)
		}
		stats.RowsInserted += n
		imp.log.Debug().Int("batch", stats.Batches).Int64("rows", n).Msg("catalog batch written")
	}
	return nil
}

// finish records the outcome. A failed log update is logged, not returned,
// so it never masks the import result.
func (imp *Importer) finish(ctx context.Context, id int64, start time.Time, stats *Stats, runErr error) {
	ms := int(time.Since(start).Milliseconds())
	entry := storage.ImportLog{
		Status:       "success",
		RowsReceived: stats.RowsRead,
		RowsInserted: stats.RowsInserted,
		RowsRejected: len(stats.Rejected),
		DurationMs:   &ms,
	}
	if runErr != nil {
		msg := runErr.Error()
		entry.Status = "error"
		entry.ErrorMessage = &msg
	}
	if err := imp.store.UpdateImportLog(ctx, id, entry); err != nil {
		imp.log.Error().Err(err).Int64("import_log", id).Msg("updating import log")
	}
}
