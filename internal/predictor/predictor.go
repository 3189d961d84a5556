package predictor

import (
	"time"

	"github.com/kimkim0621/events-marketing-ai/internal/domain"
)

// Strategy turns a finalized portfolio into a performance prediction.
// Implementations must be deterministic: identical inputs (including the
// clock reading) yield identical predictions.
type Strategy interface {
	Name() string
	Predict(req *domain.EventRequest, recs []domain.CampaignRecommendation, events []domain.HistoricalEvent, now time.Time) (domain.PortfolioPrediction, error)
}

// Pairwise reach-overlap factors between channel groups. Each present pair
// shaves factor×0.1 off the reach multiplier, floored at minReachMultiplier.
var overlapFactors = map[[2]string]float64{
	{domain.OverlapEmail, domain.OverlapSocial}:          0.3,
	{domain.OverlapEmail, domain.OverlapPaidAds}:         0.2,
	{domain.OverlapSocial, domain.OverlapPaidAds}:        0.4,
	{domain.OverlapOrganicSearch, domain.OverlapPaidAds}: 0.1,
}

const (
	minReachMultiplier = 0.6
	multiTouchFactor   = 0.85 // assumed cross-channel conversion duplication
	confidenceDiscount = 0.85 // applied to the goal-achievement probability
)

// eventTypeFactor reflects how easy a category is to actually attend.
func eventTypeFactor(category domain.EventCategory) float64 {
	switch category {
	case domain.CategoryWebinar:
		return 1.1
	case domain.CategoryConference:
		return 0.9
	case domain.CategoryWorkshop:
		return 0.95
	case domain.CategorySeminar:
		return 1.0
	default:
		return 1.0
	}
}

// Heuristic is the deterministic arithmetic predictor. It discounts raw
// portfolio sums for cross-channel reach overlap and multi-touch conversion
// duplication, then derives blended rates and a goal probability.
type Heuristic struct {
	RiskRules       []RiskRule
	SuggestionRules []SuggestionRule
}

// NewHeuristic returns the predictor with the default rule sets.
func NewHeuristic() *Heuristic {
	return &Heuristic{
		RiskRules:       DefaultRiskRules(),
		SuggestionRules: DefaultSuggestionRules(),
	}
}

func (*Heuristic) Name() string { return "heuristic" }

// Predict never fails: every ratio guards division by zero with a zero
// substitute so aggregation stays total.
func (h *Heuristic) Predict(req *domain.EventRequest, recs []domain.CampaignRecommendation, events []domain.HistoricalEvent, now time.Time) (domain.PortfolioPrediction, error) {
	var totalReach, totalConversions, totalCost int
	var totalClicks float64
	for _, r := range recs {
		totalReach += r.Reach
		totalConversions += r.Conversions
		totalCost += r.Cost
		totalClicks += float64(r.Reach) * (r.CTR / 100)
	}

	adjustedReach := float64(totalReach) * reachMultiplier(recs)

	priceFactor := 0.8
	if req.IsFreeEvent {
		priceFactor = 1.2
	}
	adjustedConversions := float64(totalConversions) * multiTouchFactor * eventTypeFactor(req.Category) * priceFactor
	if adjustedConversions < 1 {
		adjustedConversions = 1
	}

	var overallCTR, overallCVR float64
	if totalReach > 0 {
		overallCTR = totalClicks / float64(totalReach) * 100
	}
	if totalClicks > 0 {
		overallCVR = adjustedConversions / totalClicks * 100
	}
	overallCPA := 0
	if int(adjustedConversions) > 0 {
		overallCPA = totalCost / int(adjustedConversions)
	}

	probability := goalProbability(req, adjustedConversions, events)

	ctx := ruleContext{
		req:         req,
		recs:        recs,
		totalCost:   totalCost,
		conversions: adjustedConversions,
		now:         now,
	}

	return domain.PortfolioPrediction{
		TotalReach:                 int(adjustedReach),
		TotalConversions:           int(adjustedConversions),
		TotalCost:                  totalCost,
		OverallCTR:                 overallCTR,
		OverallCVR:                 overallCVR,
		OverallCPA:                 overallCPA,
		GoalAchievementProbability: probability,
		RiskFactors:                evaluateRisks(h.RiskRules, ctx),
		OptimizationSuggestions:    evaluateSuggestions(h.SuggestionRules, ctx),
	}, nil
}

// reachMultiplier discounts summed reach once per distinct present channel
// pair found in the overlap table.
func reachMultiplier(recs []domain.CampaignRecommendation) float64 {
	present := map[string]bool{}
	for i := range recs {
		c := domain.CampaignCandidate{Channel: recs[i].Channel, IsPaid: recs[i].IsPaid}
		present[c.OverlapGroup()] = true
	}

	multiplier := 1.0
	for pair, factor := range overlapFactors {
		if present[pair[0]] && present[pair[1]] {
			multiplier -= factor * 0.1
		}
	}
	if multiplier < minReachMultiplier {
		multiplier = minReachMultiplier
	}
	return multiplier
}

// goalProbability blends predicted conversions against the attendee target
// with the historical success rate of the same category, then applies the
// confidence discount. Always within [0, 1].
func goalProbability(req *domain.EventRequest, conversions float64, events []domain.HistoricalEvent) float64 {
	achievement := conversions / float64(req.TargetAttendees)
	if achievement > 1 {
		achievement = 1
	}
	p := (0.7*achievement + 0.3*historicalSuccessRate(req.Category, events)) * confidenceDiscount
	if p < 0 {
		p = 0
	}
	if p > 1 {
		p = 1
	}
	return p
}

// historicalSuccessRate is the fraction of same-category events that reached
// 80% of target, 0 when the category has no history.
func historicalSuccessRate(category domain.EventCategory, events []domain.HistoricalEvent) float64 {
	var total, successful int
	for _, e := range events {
		if e.Category != category {
			continue
		}
		total++
		if e.Successful() {
			successful++
		}
	}
	if total == 0 {
		return 0
	}
	return float64(successful) / float64(total)
}
