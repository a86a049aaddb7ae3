package storage

import (
	"context"
	"fmt"
	"time"
)

// ImportLog represents a single catalog import's outcome.
type ImportLog struct {
	ID           int64     `json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	Source       string    `json:"source"`
	Status       string    `json:"status"`
	RowsReceived int       `json:"rows_received"`
	RowsInserted int64     `json:"rows_inserted"`
	RowsRejected int       `json:"rows_rejected"`
	DurationMs   *int      `json:"duration_ms"`
	ErrorMessage *string   `json:"error_message"`
}

// InsertImportLog creates a new import log entry and returns its ID.
func (db *DB) InsertImportLog(ctx context.Context, log ImportLog) (int64, error) {
	var id int64
	err := db.Pool.QueryRow(ctx,
		`INSERT INTO import_logs (source, status, rows_received, rows_inserted, rows_rejected,
		 duration_ms, error_message)
		 VALUES ($1,$2,$3,$4,$5,$6,$7)
		 RETURNING id`,
		log.Source, log.Status, log.RowsReceived, log.RowsInserted, log.RowsRejected,
		log.DurationMs, log.ErrorMessage,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("inserting import log: %w", err)
	}
	return id, nil
}

// UpdateImportLog updates an existing import log entry (typically from "running" to "success" or "error").
func (db *DB) UpdateImportLog(ctx context.Context, id int64, log ImportLog) error {
	_, err := db.Pool.Exec(ctx,
		`UPDATE import_logs SET
		 status = $2, rows_received = $3, rows_inserted = $4, rows_rejected = $5,
		 duration_ms = $6, error_message = $7
		 WHERE id = $1`,
		id, log.Status, log.RowsReceived, log.RowsInserted, log.RowsRejected,
		log.DurationMs, log.ErrorMessage,
	)
	if err != nil {
		return fmt.Errorf("updating import log %d: %w", id, err)
	}
	return nil
}

// QueryImportLogs returns the most recent import logs.
func (db *DB) QueryImportLogs(ctx context.Context, limit int) ([]ImportLog, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := db.Pool.Query(ctx,
		`SELECT id, created_at, source, status, rows_received, rows_inserted, rows_rejected,
		 duration_ms, error_message
		 FROM import_logs
		 ORDER BY created_at DESC, id DESC
		 LIMIT $1`,
		limit)
	if err != nil {
		return nil, fmt.Errorf("querying import logs: %w", err)
	}
	defer rows.Close()

	var result []ImportLog
	for rows.Next() {
		var l ImportLog
		if err := rows.Scan(&l.ID, &l.CreatedAt, &l.Source, &l.Status,
			&l.RowsReceived, &l.RowsInserted, &l.RowsRejected, &l.DurationMs, &l.ErrorMessage); err != nil {
			return nil, fmt.Errorf("scanning import log: %w", err)
		}
		result = append(result, l)
	}
	return result, rows.Err()
}
