package optimizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kimkim0621/events-marketing-ai/internal/domain"
)

func paidCandidate(name string, cost, conversions int) domain.CampaignCandidate {
	c := domain.CampaignCandidate{
		Channel:     domain.ChannelPaidMedia,
		Name:        name,
		IsPaid:      true,
		Cost:        cost,
		Reach:       cost / 10,
		Conversions: conversions,
	}
	if conversions > 0 {
		c.CPA = cost / conversions
	}
	return c
}

func TestAllocate_FreeAlwaysSelected(t *testing.T) {
	var alloc BudgetAllocator
	candidates := []domain.CampaignCandidate{
		{Channel: domain.ChannelEmail, Name: "email", Reach: 2000},
		paidCandidate("ads", 100000, 10),
	}

	selected := alloc.Allocate(candidates, 0)

	require.Len(t, selected, 1)
	assert.Equal(t, "email", selected[0].Name)
}

func TestAllocate_GreedyByCPA(t *testing.T) {
	var alloc BudgetAllocator
	candidates := []domain.CampaignCandidate{
		paidCandidate("expensive", 100000, 4), // cpa 25000
		paidCandidate("cheap", 100000, 20),    // cpa 5000
		paidCandidate("middle", 100000, 10),   // cpa 10000
	}

	selected := alloc.Allocate(candidates, 200000)

	require.Len(t, selected, 2)
	assert.Equal(t, "cheap", selected[0].Name)
	assert.Equal(t, "middle", selected[1].Name)
}

func TestAllocate_TotalPaidCostNeverExceedsBudget(t *testing.T) {
	var alloc BudgetAllocator
	candidates := []domain.CampaignCandidate{
		paidCandidate("a", 120000, 30),
		paidCandidate("b", 90000, 15),
		paidCandidate("c", 70000, 7),
	}

	for _, budget := range []int{0, 50000, 130000, 200000, 500000} {
		selected := alloc.Allocate(candidates, budget)
		total := 0
		for _, c := range selected {
			total += c.Cost
		}
		assert.LessOrEqual(t, total, budget, "budget %d", budget)
	}
}

func TestAllocate_PartialFillScalesCandidate(t *testing.T) {
	var alloc BudgetAllocator
	first := paidCandidate("first", 150000, 30) // cpa 5000
	second := paidCandidate("second", 100000, 10)
	second.Reach = 5000

	selected := alloc.Allocate([]domain.CampaignCandidate{first, second}, 200000)

	require.Len(t, selected, 2)
	partial := selected[1]
	assert.Equal(t, "second", partial.Name)
	// 50000 left of a 200000 budget is 25%, above the 10% floor.
	assert.Equal(t, 50000, partial.Cost)
	assert.Equal(t, 2500, partial.Reach)    // 5000 * 0.5
	assert.Equal(t, 5, partial.Conversions) // 10 * 0.5
}

func TestAllocate_PartialFillEndsAllocation(t *testing.T) {
	var alloc BudgetAllocator
	candidates := []domain.CampaignCandidate{
		paidCandidate("first", 150000, 30),  // cpa 5000, fits
		paidCandidate("second", 100000, 10), // cpa 10000, partial
		paidCandidate("tiny", 10000, 1),     // cpa 10000, would fit but comes after the partial
	}

	selected := alloc.Allocate(candidates, 200000)

	require.Len(t, selected, 2)
	assert.Equal(t, "first", selected[0].Name)
	assert.Equal(t, "second", selected[1].Name)
}

func TestAllocate_SkipsPartialBelowFloorAndKeepsScanning(t *testing.T) {
	var alloc BudgetAllocator
	candidates := []domain.CampaignCandidate{
		paidCandidate("big", 195000, 39),   // cpa 5000, leaves 5000 (2.5% of budget)
		paidCandidate("huge", 500000, 100), // cpa 5000, no partial: leftover below floor
		paidCandidate("small", 5000, 1),    // cpa 5000, still fits exactly
	}

	selected := alloc.Allocate(candidates, 200000)

	require.Len(t, selected, 2)
	assert.Equal(t, "big", selected[0].Name)
	assert.Equal(t, "small", selected[1].Name)
}

func TestAllocate_ZeroConversionSortsLast(t *testing.T) {
	var alloc BudgetAllocator
	dead := paidCandidate("dead", 50000, 0)
	dead.CPA = 0
	live := paidCandidate("live", 50000, 10)

	selected := alloc.Allocate([]domain.CampaignCandidate{dead, live}, 60000)

	require.NotEmpty(t, selected)
	assert.Equal(t, "live", selected[0].Name)
}
