package optimizer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kimkim0621/events-marketing-ai/internal/domain"
)

func fixedClock() time.Time {
	return time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
}

func testDataset() *domain.Dataset {
	return &domain.Dataset{
		Events: []domain.HistoricalEvent{
			histEvent(domain.CategorySeminar, 200000, 100, 95, []string{"email", "social"}, domain.PerformanceMetrics{CTR: 2.5, CVR: 6.0, CPA: 8000}),
			histEvent(domain.CategorySeminar, 250000, 120, 60, []string{"email"}, domain.PerformanceMetrics{CTR: 1.8, CVR: 4.0, CPA: 12000}),
		},
		Media: []domain.MediaEntry{
			mediaEntry("TechPlay", 3500, []string{"IT", "Software"}, []string{"engineer"}),
		},
		Knowledge: []domain.KnowledgeEntry{
			{Title: "mail timing", Content: "send mail midweek", ImpactScore: 1.4, Confidence: 0.8},
		},
	}
}

func newTestEngine() *Engine {
	e := New(nil)
	e.Now = fixedClock
	return e
}

func TestRecommend_RejectsInvalidRequest(t *testing.T) {
	e := newTestEngine()
	req := seminarRequest(200000)
	req.Name = ""

	_, err := e.Recommend(req, testDataset())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid event request")
}

func TestRecommend_Deterministic(t *testing.T) {
	e := newTestEngine()
	req := seminarRequest(200000)

	first, err := e.Recommend(req, testDataset())
	require.NoError(t, err)
	second, err := e.Recommend(req, testDataset())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestRecommend_ZeroBudgetIsAllFree(t *testing.T) {
	e := newTestEngine()
	req := seminarRequest(0)

	res, err := e.Recommend(req, testDataset())
	require.NoError(t, err)

	for _, rec := range res.Recommendations {
		assert.False(t, rec.IsPaid, "candidate %s", rec.Name)
	}
	assert.Equal(t, 0, res.TotalCost)
	assert.Equal(t, map[string]float64{"free": 1.0, "paid": 0.0}, res.BudgetAllocation)
}

func TestRecommend_PaidCostWithinBudget(t *testing.T) {
	e := newTestEngine()
	req := seminarRequest(300000)

	res, err := e.Recommend(req, testDataset())
	require.NoError(t, err)

	paidCost := 0
	for _, rec := range res.Recommendations {
		if rec.IsPaid {
			paidCost += rec.Cost
		}
	}
	assert.LessOrEqual(t, paidCost, req.Budget)
	assert.Equal(t, paidCost, res.TotalCost, "free placements carry no cost")
}

func TestRecommend_NilDatasetFallsBackToDefaults(t *testing.T) {
	e := newTestEngine()
	req := seminarRequest(0)

	res, err := e.Recommend(req, nil)
	require.NoError(t, err)

	require.NotEmpty(t, res.Recommendations)
	email := res.Recommendations[0]
	assert.Equal(t, 2000, email.Reach) // min(5000, 100*20)
	assert.InDelta(t, 2.0, email.CTR, 1e-9)
	assert.InDelta(t, 5.0, email.CVR, 1e-9)
}

func TestRecommend_MalformedRecordsProduceWarnings(t *testing.T) {
	e := newTestEngine()
	req := seminarRequest(200000)
	data := testDataset()
	data.Events = append(data.Events, domain.HistoricalEvent{ID: 99, Name: "", TargetAttendees: 50})
	data.Media = append(data.Media, domain.MediaEntry{Name: "Broken", ReachPotential: -1})
	data.Knowledge = append(data.Knowledge, domain.KnowledgeEntry{Title: "no body"})

	res, err := e.Recommend(req, data)
	require.NoError(t, err)

	require.Len(t, res.Warnings, 3)
	assert.Contains(t, res.Warnings[0], "missing event name")
	assert.Contains(t, res.Warnings[1], `media entry "Broken" skipped`)
	assert.Contains(t, res.Warnings[2], `knowledge entry "no body" skipped`)
}

func TestRecommend_TotalsMatchRecommendations(t *testing.T) {
	e := newTestEngine()
	req := seminarRequest(400000)

	res, err := e.Recommend(req, testDataset())
	require.NoError(t, err)

	var cost, reach, conv int
	for _, rec := range res.Recommendations {
		cost += rec.Cost
		reach += rec.Reach
		conv += rec.Conversions
	}
	assert.Equal(t, cost, res.TotalCost)
	assert.Equal(t, reach, res.TotalReach)
	assert.Equal(t, conv, res.TotalConversions)
	assert.InDelta(t, 1.0, res.BudgetAllocation["free"]+res.BudgetAllocation["paid"], 1e-9)
}

func TestSanitizeDataset_KeepsValidRecords(t *testing.T) {
	data := testDataset()

	clean, warnings := sanitizeDataset(data)

	assert.Empty(t, warnings)
	assert.Len(t, clean.Events, 2)
	assert.Len(t, clean.Media, 1)
	assert.Len(t, clean.Knowledge, 1)
}

func TestSanitizeDataset_ReasonsPerRecordKind(t *testing.T) {
	data := &domain.Dataset{
		Events: []domain.HistoricalEvent{
			{ID: 1, Name: "neg cost", TargetAttendees: 10, ActualCost: -5},
		},
		Media: []domain.MediaEntry{
			{Name: "bad range", CostRange: domain.CostRange{Min: 500, Max: 100}},
		},
		Knowledge: []domain.KnowledgeEntry{
			{Title: "overconfident", Content: "x", Confidence: 1.5},
		},
	}

	clean, warnings := sanitizeDataset(data)

	assert.Empty(t, clean.Events)
	assert.Empty(t, clean.Media)
	assert.Empty(t, clean.Knowledge)
	require.Len(t, warnings, 3)
	assert.Contains(t, warnings[0], "negative budget or cost")
	assert.Contains(t, warnings[1], "invalid cost range")
	assert.Contains(t, warnings[2], "confidence outside [0,1]")
}
