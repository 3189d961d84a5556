package postgres

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kimkim0621/events-marketing-ai/internal/domain"
)

func TestMediaRepo_List(t *testing.T) {
	db, mock := setupRepoTest(t)
	repo := NewMediaRepo(db)

	rows := sqlmock.NewRows([]string{
		"name", "media_type", "target_audience", "average_ctr", "average_cvr",
		"average_cpa", "reach_potential", "cost_min", "cost_max", "content_types",
	}).AddRow(
		"TechPlay", "event_platform", []byte(`{"industries":["IT"],"job_titles":["engineer"]}`),
		4.2, 12.0, 3500, 50000, 100000, 300000, []byte(`["event_listing"]`),
	).AddRow(
		"Meta広告", "paid_social", []byte(`{"industries":["IT","Web"],"job_titles":["marketing"]}`),
		2.1, 8.5, 8000, 100000, 50000, 500000, []byte(`["video","carousel"]`),
	)
	mock.ExpectQuery(`SELECT (.+) FROM marketing_media ORDER BY average_cpa ASC, id ASC`).
		WillReturnRows(rows)

	media, err := repo.List(context.Background())
	require.NoError(t, err)

	require.Len(t, media, 2)
	assert.Equal(t, "TechPlay", media[0].Name)
	assert.Equal(t, []string{"IT"}, media[0].Audience.Industries)
	assert.Equal(t, domain.CostRange{Min: 100000, Max: 300000}, media[0].CostRange)
	assert.Equal(t, []string{"video", "carousel"}, media[1].ContentTypes)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMediaRepo_AddUpsertsByName(t *testing.T) {
	db, mock := setupRepoTest(t)
	repo := NewMediaRepo(db)

	m := &domain.MediaEntry{
		Name:           "ITmedia",
		Type:           "online_media",
		Audience:       domain.TargetAudience{Industries: []string{"IT"}},
		AverageCTR:     1.2,
		AverageCVR:     3.0,
		AverageCPA:     33937,
		ReachPotential: 80000,
		CostRange:      domain.CostRange{Min: 200000, Max: 800000},
		ContentTypes:   []string{"article"},
	}
	mock.ExpectExec(`INSERT INTO marketing_media (.+) ON CONFLICT \(name\) DO UPDATE SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Add(context.Background(), m))
	assert.NoError(t, mock.ExpectationsWereMet())
}
