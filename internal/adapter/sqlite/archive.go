// Package sqlite archives normalized forecast snapshots to a local SQLite file.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/couchcryptid/weather-forecast-etl/internal/domain"
	"github.com/couchcryptid/weather-forecast-etl/internal/observability"
	_ "github.com/mattn/go-sqlite3" // registers the "sqlite3" driver
)

const schema = `
CREATE TABLE IF NOT EXISTS forecast_snapshots (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	location     TEXT NOT NULL,
	fetch_id     TEXT NOT NULL,
	processed_at TEXT NOT NULL,
	payload      BLOB NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_snapshots_location ON forecast_snapshots (location, id);
`

// Archive stores every loaded OutputEvent and serves the most recent
// snapshots per location.
type Archive struct {
	db      *sql.DB
	metrics *observability.Metrics
	logger  *slog.Logger
}

// Open opens (or creates) the archive at path and applies the schema.
func Open(path string, metrics *observability.Metrics, logger *slog.Logger) (*Archive, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}
	// SQLite allows a single writer.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply archive schema: %w", err)
	}
	logger.Info("forecast archive opened", "path", path)
	return &Archive{db: db, metrics: metrics, logger: logger}, nil
}

// LoadBatch inserts the events in a single transaction.
func (a *Archive) LoadBatch(ctx context.Context, events []domain.OutputEvent) error {
	if err := a.insert(ctx, events); err != nil {
		a.metrics.ArchiveWrites.WithLabelValues("error").Inc()
		return err
	}
	a.metrics.ArchiveWrites.WithLabelValues("success").Inc()
	return nil
}

func (a *Archive) insert(ctx context.Context, events []domain.OutputEvent) error {
	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin archive tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO forecast_snapshots (location, fetch_id, processed_at, payload) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare archive insert: %w", err)
	}
	defer stmt.Close()

	for _, e := range events {
		_, err := stmt.ExecContext(ctx,
			e.Headers[domain.HeaderLocation],
			e.Headers[domain.HeaderFetchID],
			e.Headers[domain.HeaderProcessedAt],
			e.Value,
		)
		if err != nil {
			return fmt.Errorf("insert snapshot: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit archive tx: %w", err)
	}
	return nil
}

// History returns up to limit snapshots for a location, newest first.
// Rows that no longer decode are skipped with a warning.
func (a *Archive) History(ctx context.Context, location string, limit int) ([]domain.NormalizedWeatherData, error) {
	rows, err := a.db.QueryContext(ctx,
		`SELECT id, payload FROM forecast_snapshots WHERE location = ? ORDER BY id DESC LIMIT ?`,
		location, limit)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	history := make([]domain.NormalizedWeatherData, 0, limit)
	for rows.Next() {
		var (
			id      int64
			payload []byte
		)
		if err := rows.Scan(&id, &payload); err != nil {
			return nil, fmt.Errorf("scan history row: %w", err)
		}
		var data domain.NormalizedWeatherData
		if err := json.Unmarshal(payload, &data); err != nil {
			a.logger.Warn("skipping undecodable snapshot", "id", id, "error", err)
			continue
		}
		history = append(history, data)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history: %w", err)
	}
	return history, nil
}

// CheckReadiness pings the database.
func (a *Archive) CheckReadiness(ctx context.Context) error {
	return a.db.PingContext(ctx)
}

// Close closes the underlying database.
func (a *Archive) Close() error {
	return a.db.Close()
}
