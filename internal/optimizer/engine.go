package optimizer

import (
	"fmt"
	"time"

	"github.com/kimkim0621/events-marketing-ai/internal/domain"
	"github.com/kimkim0621/events-marketing-ai/internal/predictor"
)

// Result is the full outcome of one recommendation run.
type Result struct {
	Request          domain.EventRequest             `json:"event_info"`
	Recommendations  []domain.CampaignRecommendation `json:"recommended_campaigns"`
	Prediction       domain.PortfolioPrediction      `json:"performance_predictions"`
	TotalCost        int                             `json:"total_estimated_cost"`
	TotalReach       int                             `json:"total_estimated_reach"`
	TotalConversions int                             `json:"total_estimated_conversions"`
	BudgetAllocation map[string]float64              `json:"budget_allocation"`
	Warnings         []string                        `json:"warnings,omitempty"`
}

// Engine runs the recommendation pipeline: analyzers feed the candidate
// generator, knowledge adjusts the candidates, the allocator fits them to
// budget, and the predictor aggregates the survivors. The engine holds no
// mutable state between calls; concurrent requests may share one Engine.
type Engine struct {
	historical HistoricalDataAnalyzer
	media      MediaCompatibilityAnalyzer
	generator  CandidateGenerator
	adjuster   KnowledgeAdjuster
	allocator  BudgetAllocator
	strategy   predictor.Strategy

	// Now is the clock used for lead-time rules; overridable in tests.
	Now func() time.Time
}

// New creates an engine with the given prediction strategy.
func New(strategy predictor.Strategy) *Engine {
	if strategy == nil {
		strategy = predictor.NewHeuristic()
	}
	return &Engine{strategy: strategy, Now: time.Now}
}

// Recommend produces the campaign portfolio, its performance prediction and
// the free/paid budget split for one validated request. The reference
// datasets are read-only snapshots; malformed records are skipped with a
// warning rather than failing the run.
func (e *Engine) Recommend(req *domain.EventRequest, data *domain.Dataset) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid event request: %w", err)
	}
	if data == nil {
		data = &domain.Dataset{}
	}

	clean, warnings := sanitizeDataset(data)

	hist := e.historical.Analyze(req, clean.Events)
	media := e.media.Analyze(req, clean.Media)

	candidates := e.generator.Generate(req, hist, media)
	e.adjuster.Apply(candidates, clean.Knowledge)
	selected := e.allocator.Allocate(candidates, req.Budget)

	recs := make([]domain.CampaignRecommendation, 0, len(selected))
	for i := range selected {
		recs = append(recs, selected[i].Finalize())
	}

	prediction, err := e.strategy.Predict(req, recs, clean.Events, e.Now())
	if err != nil {
		return nil, fmt.Errorf("predict portfolio: %w", err)
	}

	result := &Result{
		Request:          *req,
		Recommendations:  recs,
		Prediction:       prediction,
		BudgetAllocation: budgetAllocation(recs),
		Warnings:         warnings,
	}
	for _, r := range recs {
		result.TotalCost += r.Cost
		result.TotalReach += r.Reach
		result.TotalConversions += r.Conversions
	}
	return result, nil
}

// budgetAllocation reports the cost share by candidate type. An all-free
// portfolio is reported as fully free rather than 0/0.
func budgetAllocation(recs []domain.CampaignRecommendation) map[string]float64 {
	var freeCost, paidCost int
	for _, r := range recs {
		if r.IsPaid {
			paidCost += r.Cost
		} else {
			freeCost += r.Cost
		}
	}
	total := freeCost + paidCost
	if total == 0 {
		return map[string]float64{"free": 1.0, "paid": 0.0}
	}
	return map[string]float64{
		"free": float64(freeCost) / float64(total),
		"paid": float64(paidCost) / float64(total),
	}
}
