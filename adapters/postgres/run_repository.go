// Package postgres archives pipeline runs in PostgreSQL.
package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jmoiron/sqlx"

	"serovis/domain/titer"
	"serovis/ports"
)

const schema = `
CREATE TABLE IF NOT EXISTS plot_runs (
	id          TEXT PRIMARY KEY,
	created_at  TIMESTAMPTZ NOT NULL,
	options     JSONB NOT NULL,
	strain_rows JSONB NOT NULL,
	chart_keys  JSONB NOT NULL,
	specs       JSONB NOT NULL
)`

// runRepository implements the RunArchive interface
type runRepository struct {
	db *sqlx.DB
}

// NewRunArchive creates a run archive backed by the given database,
// creating the plot_runs table when absent.
func NewRunArchive(ctx context.Context, db *sqlx.DB) (ports.RunArchive, error) {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return nil, fmt.Errorf("failed to ensure plot_runs table: %w", err)
	}
	return &runRepository{db: db}, nil
}

// SaveRun inserts one run record with its chart specs.
func (r *runRepository) SaveRun(ctx context.Context, rec *titer.RunRecord, specs *titer.SpecSet) error {
	optsJSON, err := json.Marshal(rec.Options)
	if err != nil {
		return fmt.Errorf("failed to marshal options: %w", err)
	}
	rowsJSON, err := json.Marshal(rec.StrainRows)
	if err != nil {
		return fmt.Errorf("failed to marshal strain rows: %w", err)
	}
	keysJSON, err := json.Marshal(rec.ChartKeys)
	if err != nil {
		return fmt.Errorf("failed to marshal chart keys: %w", err)
	}
	specsJSON, err := json.Marshal(specs)
	if err != nil {
		return fmt.Errorf("failed to marshal specs: %w", err)
	}

	query := `INSERT INTO plot_runs (id, created_at, options, strain_rows, chart_keys, specs)
		VALUES ($1, $2, $3, $4, $5, $6)`

	if _, err := r.db.ExecContext(ctx, query,
		rec.ID.String(), rec.CreatedAt, optsJSON, rowsJSON, keysJSON, specsJSON,
	); err != nil {
		return fmt.Errorf("failed to archive run %s: %w", rec.ID, err)
	}
	return nil
}
