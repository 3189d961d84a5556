package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/kimkim0621/events-marketing-ai/internal/domain"
)

// MediaRepo stores the media catalog.
type MediaRepo struct{ db *sql.DB }

// NewMediaRepo creates a Postgres-backed media catalog repository.
func NewMediaRepo(db *sql.DB) *MediaRepo { return &MediaRepo{db: db} }

// List returns the full media catalog, cheapest acquisition first.
func (r *MediaRepo) List(ctx context.Context) ([]domain.MediaEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT name, media_type, target_audience, average_ctr, average_cvr,
		       average_cpa, reach_potential, cost_min, cost_max, content_types
		FROM marketing_media
		ORDER BY average_cpa ASC, id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list media: %w", err)
	}
	defer rows.Close()

	var out []domain.MediaEntry
	for rows.Next() {
		var m domain.MediaEntry
		var audience, contentTypes []byte
		if err := rows.Scan(
			&m.Name, &m.Type, &audience, &m.AverageCTR, &m.AverageCVR,
			&m.AverageCPA, &m.ReachPotential, &m.CostRange.Min, &m.CostRange.Max, &contentTypes,
		); err != nil {
			return nil, fmt.Errorf("scan media: %w", err)
		}
		if err := json.Unmarshal(audience, &m.Audience); err != nil {
			return nil, fmt.Errorf("decode target_audience for media %q: %w", m.Name, err)
		}
		if err := json.Unmarshal(contentTypes, &m.ContentTypes); err != nil {
			return nil, fmt.Errorf("decode content_types for media %q: %w", m.Name, err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// Add inserts a media entry. The name is unique; re-adding an existing media
// updates its performance columns instead.
func (r *MediaRepo) Add(ctx context.Context, m *domain.MediaEntry) error {
	audience, err := json.Marshal(m.Audience)
	if err != nil {
		return fmt.Errorf("encode target_audience: %w", err)
	}
	contentTypes, err := json.Marshal(m.ContentTypes)
	if err != nil {
		return fmt.Errorf("encode content_types: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO marketing_media
			(name, media_type, target_audience, average_ctr, average_cvr,
			 average_cpa, reach_potential, cost_min, cost_max, content_types)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (name) DO UPDATE SET
			media_type = EXCLUDED.media_type,
			target_audience = EXCLUDED.target_audience,
			average_ctr = EXCLUDED.average_ctr,
			average_cvr = EXCLUDED.average_cvr,
			average_cpa = EXCLUDED.average_cpa,
			reach_potential = EXCLUDED.reach_potential,
			cost_min = EXCLUDED.cost_min,
			cost_max = EXCLUDED.cost_max,
			content_types = EXCLUDED.content_types
	`, m.Name, m.Type, audience, m.AverageCTR, m.AverageCVR,
		m.AverageCPA, m.ReachPotential, m.CostRange.Min, m.CostRange.Max, contentTypes)
	if err != nil {
		return fmt.Errorf("add media: %w", err)
	}
	return nil
}
