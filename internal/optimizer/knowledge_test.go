package optimizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kimkim0621/events-marketing-ai/internal/domain"
)

func baseCandidates() []domain.CampaignCandidate {
	candidates := []domain.CampaignCandidate{
		{Channel: domain.ChannelEmail, Name: "email", Reach: 2000, CTR: 2.0, CVR: 5.0},
		{Channel: domain.ChannelSocial, Name: "social", Reach: 1000, CTR: 1.5, CVR: 3.0},
		{Channel: domain.ChannelPaidSearch, Name: "search ads", IsPaid: true, Reach: 3000, CTR: 3.5, CVR: 6.0, Cost: 150000, FallbackCPA: 10000},
	}
	for i := range candidates {
		candidates[i].Recalculate()
	}
	return candidates
}

func TestKnowledgeApply_MatchAdjustsReachAndCVR(t *testing.T) {
	var adj KnowledgeAdjuster
	candidates := baseCandidates()
	entries := []domain.KnowledgeEntry{
		{Title: "Tuesday mail sends convert best", Content: "Send mail on Tuesday mornings", ImpactScore: 1.5},
	}

	adj.Apply(candidates, entries)

	email := candidates[0]
	assert.Equal(t, 2200, email.Reach)          // 2000 * (1 + 0.5*0.2)
	assert.InDelta(t, 5.75, email.CVR, 1e-9)    // 5.0 * (1 + 0.5*0.3)
	assert.Equal(t, []string{"Tuesday mail sends convert best"}, email.AppliedKnowledge)
	// Conversions re-derived: floor(2200 * 0.02 * 0.0575) = 2
	assert.Equal(t, 2, email.Conversions)
}

func TestKnowledgeApply_NoKeywordChannelUntouched(t *testing.T) {
	var adj KnowledgeAdjuster
	candidates := baseCandidates()
	before := candidates[1] // social has no keyword table entry

	adj.Apply(candidates, []domain.KnowledgeEntry{
		{Title: "social wisdom", Content: "post on social media often", ImpactScore: 2.0},
	})

	assert.Equal(t, before, candidates[1])
}

func TestKnowledgeApply_NoMatchLeavesAllUnchanged(t *testing.T) {
	var adj KnowledgeAdjuster
	candidates := baseCandidates()
	want := baseCandidates()

	adj.Apply(candidates, []domain.KnowledgeEntry{
		{Title: "irrelevant", Content: "book the venue early", ImpactScore: 1.8},
	})

	assert.Equal(t, want, candidates)
}

func TestKnowledgeApply_MultipleMatchesCompoundInStoreOrder(t *testing.T) {
	var adj KnowledgeAdjuster
	candidates := []domain.CampaignCandidate{
		{Channel: domain.ChannelEmail, Name: "email", Reach: 1000, CTR: 2.0, CVR: 5.0},
	}
	candidates[0].Recalculate()

	entries := []domain.KnowledgeEntry{
		{Title: "first", Content: "mail cadence", ImpactScore: 1.5},
		{Title: "second", Content: "メルマガ segmentation", ImpactScore: 0.5},
	}

	adj.Apply(candidates, entries)

	c := candidates[0]
	// 1000 * 1.1 = 1100, then 1100 * 0.9 = 990 (integer truncation per step)
	assert.Equal(t, 990, c.Reach)
	// 5.0 * 1.15 * 0.85
	assert.InDelta(t, 4.8875, c.CVR, 1e-9)
	assert.Equal(t, []string{"first", "second"}, c.AppliedKnowledge)
}

func TestKnowledgeApply_NeutralImpactIsNoOpOnNumbers(t *testing.T) {
	var adj KnowledgeAdjuster
	candidates := baseCandidates()

	adj.Apply(candidates, []domain.KnowledgeEntry{
		{Title: "neutral", Content: "google ads observation", ImpactScore: 1.0},
	})

	search := candidates[2]
	assert.Equal(t, 3000, search.Reach)
	assert.InDelta(t, 6.0, search.CVR, 1e-9)
	// Title still recorded: the entry matched even though it moved nothing.
	require.Equal(t, []string{"neutral"}, search.AppliedKnowledge)
}

func TestKnowledgeApply_CaseInsensitiveContent(t *testing.T) {
	var adj KnowledgeAdjuster
	candidates := baseCandidates()

	adj.Apply(candidates, []domain.KnowledgeEntry{
		{Title: "caps", Content: "GOOGLE retargeting works", ImpactScore: 1.2},
	})

	assert.NotEmpty(t, candidates[2].AppliedKnowledge)
}
