package optimizer

import (
	"math"
	"sort"

	"github.com/kimkim0621/events-marketing-ai/internal/domain"
)

// partialFillFloor is the fraction of the total budget that must remain for
// a partial (scaled-down) placement to be worth buying.
const partialFillFloor = 0.1

// BudgetAllocator selects the paid candidates that fit the fixed budget.
// Free candidates are always selected. The policy is deliberately greedy
// with a single partial fill rather than a knapsack search; the scaled copy
// ends the allocation even when cheaper candidates remain.
type BudgetAllocator struct{}

// Allocate returns the final candidate list: all free candidates followed by
// the affordable paid candidates in CPA order. Candidates without a positive
// CPA or without conversions sort last, as infinitely expensive.
func (BudgetAllocator) Allocate(candidates []domain.CampaignCandidate, budget int) []domain.CampaignCandidate {
	var free, paid []domain.CampaignCandidate
	for _, c := range candidates {
		if c.IsPaid {
			paid = append(paid, c)
		} else {
			free = append(free, c)
		}
	}

	sort.SliceStable(paid, func(i, j int) bool {
		return effectiveCPA(&paid[i]) < effectiveCPA(&paid[j])
	})

	selected := free
	remaining := budget
	for _, c := range paid {
		if c.Cost <= remaining {
			remaining -= c.Cost
			selected = append(selected, c)
			continue
		}
		// First candidate that does not fully fit: buy a scaled-down copy
		// with whatever is left, provided the leftover is worth spending.
		if c.Cost > 0 && remaining > 0 && float64(remaining) >= float64(budget)*partialFillFloor {
			ratio := float64(remaining) / float64(c.Cost)
			c.Cost = remaining
			c.Reach = int(float64(c.Reach) * ratio)
			c.Conversions = int(float64(c.Conversions) * ratio)
			selected = append(selected, c)
			break
		}
	}
	return selected
}

func effectiveCPA(c *domain.CampaignCandidate) float64 {
	if c.Conversions <= 0 || c.CPA <= 0 {
		return math.Inf(1)
	}
	return float64(c.CPA)
}
