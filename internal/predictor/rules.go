package predictor

import (
	"time"

	"github.com/kimkim0621/events-marketing-ai/internal/domain"
)

// ruleContext carries everything a risk or suggestion predicate may inspect.
type ruleContext struct {
	req         *domain.EventRequest
	recs        []domain.CampaignRecommendation
	totalCost   int
	conversions float64 // overlap-adjusted
	now         time.Time
}

func (c *ruleContext) daysToEvent() int {
	return int(c.req.EventDate.Sub(c.now).Hours() / 24)
}

func (c *ruleContext) paidCount() int {
	n := 0
	for _, r := range c.recs {
		if r.IsPaid {
			n++
		}
	}
	return n
}

func (c *ruleContext) meanConfidence() float64 {
	if len(c.recs) == 0 {
		return 0
	}
	sum := 0.0
	for _, r := range c.recs {
		sum += r.Confidence
	}
	return sum / float64(len(c.recs))
}

func (c *ruleContext) achievementRatio() float64 {
	return c.conversions / float64(c.req.TargetAttendees)
}

func (c *ruleContext) hasChannel(ch domain.Channel) bool {
	for _, r := range c.recs {
		if r.Channel == ch {
			return true
		}
	}
	return false
}

// RiskRule is one named risk check: when the predicate holds, the fixed
// message joins the prediction's risk factors. Rules are independent and
// evaluated in list order so each can be unit-tested in isolation and new
// ones added without touching the aggregation.
type RiskRule struct {
	Name    string
	Message string
	Applies func(*ruleContext) bool
}

// SuggestionRule mirrors RiskRule for optimization suggestions.
type SuggestionRule struct {
	Name    string
	Message string
	Applies func(*ruleContext) bool
}

// DefaultRiskRules returns the built-in risk checks in evaluation order.
func DefaultRiskRules() []RiskRule {
	return []RiskRule{
		{
			Name:    "budget_nearly_exhausted",
			Message: "Budget utilization exceeds 90%; overruns are likely if any placement runs hot",
			Applies: func(c *ruleContext) bool {
				return float64(c.totalCost) > float64(c.req.Budget)*0.9
			},
		},
		{
			Name:    "few_paid_channels",
			Message: "Fewer than two paid placements selected; reach may be too narrow",
			Applies: func(c *ruleContext) bool { return c.paidCount() < 2 },
		},
		{
			Name:    "short_runway",
			Message: "Less than two weeks until the event; the recruitment window may be too short",
			Applies: func(c *ruleContext) bool { return c.daysToEvent() < 14 },
		},
		{
			Name:    "long_runway",
			Message: "More than three months until the event; early announcements risk losing momentum",
			Applies: func(c *ruleContext) bool { return c.daysToEvent() > 90 },
		},
		{
			Name:    "diffuse_targeting",
			Message: "More than five target industries; messaging may become diluted",
			Applies: func(c *ruleContext) bool { return len(c.req.Audience.Industries) > 5 },
		},
		{
			Name:    "low_confidence",
			Message: "Average candidate confidence is below 0.6; prediction accuracy is uncertain",
			Applies: func(c *ruleContext) bool { return c.meanConfidence() < 0.6 },
		},
	}
}

// DefaultSuggestionRules returns the built-in optimization suggestions in
// evaluation order.
func DefaultSuggestionRules() []SuggestionRule {
	return []SuggestionRule{
		{
			Name:    "under_target",
			Message: "Predicted attendance is below 70% of target; consider additional paid reach",
			Applies: func(c *ruleContext) bool { return c.achievementRatio() < 0.7 },
		},
		{
			Name:    "under_target_lists",
			Message: "Lean harder on owned lists: increase email frequency to existing contacts",
			Applies: func(c *ruleContext) bool { return c.achievementRatio() < 0.7 },
		},
		{
			Name:    "over_target",
			Message: "Prediction far exceeds target; confirm venue or platform capacity",
			Applies: func(c *ruleContext) bool { return c.achievementRatio() > 1.3 },
		},
		{
			Name:    "budget_headroom",
			Message: "Less than 70% of budget is committed; additional placements could expand reach",
			Applies: func(c *ruleContext) bool {
				return float64(c.totalCost) < float64(c.req.Budget)*0.7
			},
		},
		{
			Name:    "no_content_marketing",
			Message: "Add content marketing to build longer-term audience relationships",
			Applies: func(c *ruleContext) bool { return !c.hasChannel("content_marketing") },
		},
		{
			Name:    "no_partner_promotion",
			Message: "Partner co-promotion could unlock audiences outside the current channels",
			Applies: func(c *ruleContext) bool { return !c.hasChannel("partner_promotion") },
		},
		{
			Name:    "staged_announcements",
			Message: "More than 30 days of lead time; stage announcements to sustain interest",
			Applies: func(c *ruleContext) bool { return c.daysToEvent() > 30 },
		},
		{
			Name:    "expensive_cpa",
			Message: "At least one placement predicts a CPA above ¥15,000; review its targeting",
			Applies: func(c *ruleContext) bool {
				for _, r := range c.recs {
					if r.CPA > 15000 {
						return true
					}
				}
				return false
			},
		},
	}
}

func evaluateRisks(rules []RiskRule, ctx ruleContext) []string {
	out := []string{}
	for _, r := range rules {
		if r.Applies(&ctx) {
			out = append(out, r.Message)
		}
	}
	return out
}

func evaluateSuggestions(rules []SuggestionRule, ctx ruleContext) []string {
	out := []string{}
	for _, r := range rules {
		if r.Applies(&ctx) {
			out = append(out, r.Message)
		}
	}
	return out
}
