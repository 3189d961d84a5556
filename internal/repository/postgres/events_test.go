package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kimkim0621/events-marketing-ai/internal/domain"
)

func setupRepoTest(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func TestEventRepo_List(t *testing.T) {
	db, mock := setupRepoTest(t)
	repo := NewEventRepo(db)

	date := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{
		"id", "name", "category", "theme", "target_attendees", "actual_attendees",
		"budget", "actual_cost", "event_date", "campaigns_used", "performance_metrics",
	}).AddRow(
		2, "AI Webinar", "webinar", "ai", 100, 95, 100000, 95000, date,
		[]byte(`["email","social"]`), []byte(`{"ctr":2.5,"cvr":6.0,"cpa":8000}`),
	).AddRow(
		1, "Tech Seminar", "seminar", "cloud", 50, 30, 0, 0, date.AddDate(0, -1, 0),
		[]byte(`["email"]`), []byte(`{"ctr":1.8,"cvr":4.0,"cpa":0}`),
	)
	mock.ExpectQuery(`SELECT (.+) FROM marketing_events ORDER BY event_date DESC, id DESC`).
		WillReturnRows(rows)

	events, err := repo.List(context.Background())
	require.NoError(t, err)

	require.Len(t, events, 2)
	assert.Equal(t, "AI Webinar", events[0].Name)
	assert.Equal(t, []string{"email", "social"}, events[0].CampaignsUsed)
	assert.Equal(t, domain.PerformanceMetrics{CTR: 2.5, CVR: 6.0, CPA: 8000}, events[0].Metrics)
	assert.Equal(t, domain.CategorySeminar, events[1].Category)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEventRepo_ListDecodeError(t *testing.T) {
	db, mock := setupRepoTest(t)
	repo := NewEventRepo(db)

	rows := sqlmock.NewRows([]string{
		"id", "name", "category", "theme", "target_attendees", "actual_attendees",
		"budget", "actual_cost", "event_date", "campaigns_used", "performance_metrics",
	}).AddRow(
		7, "bad", "seminar", "", 10, 10, 0, 0, time.Now(),
		[]byte(`not json`), []byte(`{}`),
	)
	mock.ExpectQuery(`SELECT (.+) FROM marketing_events`).WillReturnRows(rows)

	_, err := repo.List(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode campaigns_used for event 7")
}

func TestEventRepo_Add(t *testing.T) {
	db, mock := setupRepoTest(t)
	repo := NewEventRepo(db)

	e := &domain.HistoricalEvent{
		Name:            "DX Conference",
		Category:        domain.CategoryConference,
		Theme:           "dx",
		TargetAttendees: 300,
		ActualAttendees: 280,
		Budget:          500000,
		ActualCost:      480000,
		EventDate:       time.Date(2026, 5, 20, 0, 0, 0, 0, time.UTC),
		CampaignsUsed:   []string{"email", "paid_search"},
		Metrics:         domain.PerformanceMetrics{CTR: 3.0, CVR: 5.5, CPA: 1714},
	}
	mock.ExpectQuery(`INSERT INTO marketing_events`).
		WithArgs(e.Name, string(e.Category), e.Theme, e.TargetAttendees, e.ActualAttendees,
			e.Budget, e.ActualCost, e.EventDate, []byte(`["email","paid_search"]`),
			[]byte(`{"ctr":3,"cvr":5.5,"cpa":1714}`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(4))

	id, err := repo.Add(context.Background(), e)
	require.NoError(t, err)
	assert.Equal(t, 4, id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEventRepo_Count(t *testing.T) {
	db, mock := setupRepoTest(t)
	repo := NewEventRepo(db)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM marketing_events`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	n, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}
