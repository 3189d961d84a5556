// Package postgres implements the reference-data repositories against
// PostgreSQL. Slice-valued fields are stored as JSONB.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS marketing_events (
		id SERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		category TEXT NOT NULL,
		theme TEXT NOT NULL DEFAULT '',
		target_attendees INTEGER NOT NULL,
		actual_attendees INTEGER NOT NULL DEFAULT 0,
		budget INTEGER NOT NULL DEFAULT 0,
		actual_cost INTEGER NOT NULL DEFAULT 0,
		event_date TIMESTAMPTZ NOT NULL,
		campaigns_used JSONB NOT NULL DEFAULT '[]',
		performance_metrics JSONB NOT NULL DEFAULT '{}',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS marketing_media (
		id SERIAL PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		media_type TEXT NOT NULL DEFAULT '',
		target_audience JSONB NOT NULL DEFAULT '{}',
		average_ctr DOUBLE PRECISION NOT NULL DEFAULT 0,
		average_cvr DOUBLE PRECISION NOT NULL DEFAULT 0,
		average_cpa INTEGER NOT NULL DEFAULT 0,
		reach_potential INTEGER NOT NULL DEFAULT 0,
		cost_min INTEGER NOT NULL DEFAULT 0,
		cost_max INTEGER NOT NULL DEFAULT 0,
		content_types JSONB NOT NULL DEFAULT '[]',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS marketing_knowledge (
		id SERIAL PRIMARY KEY,
		category TEXT NOT NULL DEFAULT '',
		title TEXT NOT NULL,
		content TEXT NOT NULL,
		condition TEXT NOT NULL DEFAULT '',
		impact_score DOUBLE PRECISION NOT NULL DEFAULT 1.0,
		confidence DOUBLE PRECISION NOT NULL DEFAULT 0.5,
		source TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
}

// Migrate creates the reference tables when they do not exist yet.
func Migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
