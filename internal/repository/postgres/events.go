package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/kimkim0621/events-marketing-ai/internal/domain"
)

// EventRepo stores historical event records.
type EventRepo struct{ db *sql.DB }

// NewEventRepo creates a Postgres-backed historical event repository.
func NewEventRepo(db *sql.DB) *EventRepo { return &EventRepo{db: db} }

// List returns all historical events, most recent first.
func (r *EventRepo) List(ctx context.Context) ([]domain.HistoricalEvent, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, category, theme, target_attendees, actual_attendees,
		       budget, actual_cost, event_date, campaigns_used, performance_metrics
		FROM marketing_events
		ORDER BY event_date DESC, id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var out []domain.HistoricalEvent
	for rows.Next() {
		var e domain.HistoricalEvent
		var campaigns, metrics []byte
		if err := rows.Scan(
			&e.ID, &e.Name, &e.Category, &e.Theme, &e.TargetAttendees, &e.ActualAttendees,
			&e.Budget, &e.ActualCost, &e.EventDate, &campaigns, &metrics,
		); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		if err := json.Unmarshal(campaigns, &e.CampaignsUsed); err != nil {
			return nil, fmt.Errorf("decode campaigns_used for event %d: %w", e.ID, err)
		}
		if err := json.Unmarshal(metrics, &e.Metrics); err != nil {
			return nil, fmt.Errorf("decode performance_metrics for event %d: %w", e.ID, err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Add inserts a historical event and returns its generated id.
func (r *EventRepo) Add(ctx context.Context, e *domain.HistoricalEvent) (int, error) {
	campaigns, err := json.Marshal(e.CampaignsUsed)
	if err != nil {
		return 0, fmt.Errorf("encode campaigns_used: %w", err)
	}
	metrics, err := json.Marshal(e.Metrics)
	if err != nil {
		return 0, fmt.Errorf("encode performance_metrics: %w", err)
	}

	var id int
	err = r.db.QueryRowContext(ctx, `
		INSERT INTO marketing_events
			(name, category, theme, target_attendees, actual_attendees,
			 budget, actual_cost, event_date, campaigns_used, performance_metrics)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`, e.Name, e.Category, e.Theme, e.TargetAttendees, e.ActualAttendees,
		e.Budget, e.ActualCost, e.EventDate, campaigns, metrics).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("add event: %w", err)
	}
	return id, nil
}

// Count reports how many historical events are stored.
func (r *EventRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM marketing_events`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count events: %w", err)
	}
	return n, nil
}
