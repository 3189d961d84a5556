package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/kimkim0621/events-marketing-ai/internal/domain"
)

// KnowledgeRepo stores internal marketing know-how.
type KnowledgeRepo struct{ db *sql.DB }

// NewKnowledgeRepo creates a Postgres-backed knowledge repository.
func NewKnowledgeRepo(db *sql.DB) *KnowledgeRepo { return &KnowledgeRepo{db: db} }

// List returns all knowledge entries in insertion order. Entry order is the
// order knowledge adjustments compound in, so it must stay stable.
func (r *KnowledgeRepo) List(ctx context.Context) ([]domain.KnowledgeEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT category, title, content, condition, impact_score, confidence, source
		FROM marketing_knowledge
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list knowledge: %w", err)
	}
	defer rows.Close()

	var out []domain.KnowledgeEntry
	for rows.Next() {
		var k domain.KnowledgeEntry
		if err := rows.Scan(
			&k.Category, &k.Title, &k.Content, &k.Condition,
			&k.ImpactScore, &k.Confidence, &k.Source,
		); err != nil {
			return nil, fmt.Errorf("scan knowledge: %w", err)
		}
		out = append(out, k)
	}
	return out, rows.Err()
}

// Add inserts a knowledge entry and returns its generated id.
func (r *KnowledgeRepo) Add(ctx context.Context, k *domain.KnowledgeEntry) (int, error) {
	var id int
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO marketing_knowledge
			(category, title, content, condition, impact_score, confidence, source)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`, k.Category, k.Title, k.Content, k.Condition, k.ImpactScore, k.Confidence, k.Source).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("add knowledge: %w", err)
	}
	return id, nil
}
