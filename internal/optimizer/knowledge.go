package optimizer

import (
	"strings"

	"github.com/kimkim0621/events-marketing-ai/internal/domain"
)

// channelKeywords maps a channel id to the terms a knowledge entry's content
// must contain for the entry to apply to candidates on that channel.
// Channels absent from this table never receive knowledge adjustments.
var channelKeywords = map[domain.Channel][]string{
	domain.ChannelEmail:         {"mail", "メルマガ"},
	domain.ChannelPaidSocial:    {"meta", "facebook", "instagram"},
	domain.ChannelPaidSearch:    {"google", "検索広告"},
	domain.ChannelEventPlatform: {"techplay", "connpass"},
}

// Knowledge impact translates into a smaller reach effect than rate effect:
// know-how usually changes who converts more than how many people are seen.
const (
	reachImpactWeight = 0.2
	cvrImpactWeight   = 0.3
)

// KnowledgeAdjuster applies matching knowledge-base entries to candidates,
// compounding reach and conversion-rate multipliers.
type KnowledgeAdjuster struct{}

// Apply walks the knowledge entries in their stored order for every
// candidate. Entries whose content mentions a keyword of the candidate's
// channel multiply reach by 1+(impact-1)×0.2 and conversion rate by
// 1+(impact-1)×0.3, and record their title on the candidate. Multiple
// matches compound in store order; this ordering is part of the output
// contract and must not be re-sorted. Conversions and CPA are re-derived
// for any candidate that was touched.
func (KnowledgeAdjuster) Apply(candidates []domain.CampaignCandidate, entries []domain.KnowledgeEntry) {
	for i := range candidates {
		c := &candidates[i]
		keywords, ok := channelKeywords[c.Channel]
		if !ok {
			continue
		}
		touched := false
		for _, entry := range entries {
			if !contentMatches(entry.Content, keywords) {
				continue
			}
			c.Reach = int(float64(c.Reach) * (1 + (entry.ImpactScore-1)*reachImpactWeight))
			c.CVR *= 1 + (entry.ImpactScore-1)*cvrImpactWeight
			c.AppliedKnowledge = append(c.AppliedKnowledge, entry.Title)
			touched = true
		}
		if touched {
			c.Recalculate()
		}
	}
}

func contentMatches(content string, keywords []string) bool {
	lower := strings.ToLower(content)
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
