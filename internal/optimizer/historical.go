package optimizer

import (
	"sort"

	"github.com/kimkim0621/events-marketing-ai/internal/domain"
)

// Default rates used when no comparable past event exists. This is a
// documented fallback, not an error: a cold-start dataset must still produce
// a portfolio.
const (
	defaultCTR = 2.0
	defaultCVR = 5.0
	defaultCPA = 10000
)

// HistoricalInsights summarizes past events comparable to one request.
type HistoricalInsights struct {
	MatchCount    int            `json:"total_similar_events"`
	AverageCTR    float64        `json:"average_ctr"`
	AverageCVR    float64        `json:"average_cvr"`
	AverageCPA    int            `json:"average_cpa"`
	TopChannels   []string       `json:"successful_channels"`
	ChannelCounts map[string]int `json:"performance_trends"`
}

// HistoricalDataAnalyzer aggregates past events into default performance
// rates and a ranked list of historically successful channels. It operates
// on an already-loaded snapshot and performs no I/O.
type HistoricalDataAnalyzer struct{}

// Analyze selects events matching the request category with a budget inside
// [0.5×budget, 1.5×budget] and aggregates their metrics. Events are expected
// in event-date-descending order; channel frequency ties break by first-seen
// position in that order.
func (HistoricalDataAnalyzer) Analyze(req *domain.EventRequest, events []domain.HistoricalEvent) HistoricalInsights {
	lo := float64(req.Budget) * 0.5
	hi := float64(req.Budget) * 1.5

	var matched []domain.HistoricalEvent
	for _, e := range events {
		if e.Category != req.Category {
			continue
		}
		b := float64(e.Budget)
		if b < lo || b > hi {
			continue
		}
		matched = append(matched, e)
	}

	if len(matched) == 0 {
		return HistoricalInsights{
			AverageCTR:    defaultCTR,
			AverageCVR:    defaultCVR,
			AverageCPA:    defaultCPA,
			TopChannels:   []string{string(domain.ChannelEmail), string(domain.ChannelSocial)},
			ChannelCounts: map[string]int{},
		}
	}

	var sumCTR, sumCVR float64
	var sumCPA, cpaN int
	for _, e := range matched {
		sumCTR += e.Metrics.CTR
		sumCVR += e.Metrics.CVR
		if e.Metrics.CPA > 0 {
			sumCPA += e.Metrics.CPA
			cpaN++
		}
	}

	avgCPA := defaultCPA
	if cpaN > 0 {
		avgCPA = sumCPA / cpaN
	}

	counts := map[string]int{}
	firstSeen := map[string]int{}
	order := 0
	for _, e := range matched {
		if !e.Successful() {
			continue
		}
		for _, ch := range e.CampaignsUsed {
			if _, ok := firstSeen[ch]; !ok {
				firstSeen[ch] = order
				order++
			}
			counts[ch]++
		}
	}

	channels := make([]string, 0, len(counts))
	for ch := range counts {
		channels = append(channels, ch)
	}
	sort.SliceStable(channels, func(i, j int) bool {
		if counts[channels[i]] != counts[channels[j]] {
			return counts[channels[i]] > counts[channels[j]]
		}
		return firstSeen[channels[i]] < firstSeen[channels[j]]
	})
	if len(channels) > 5 {
		channels = channels[:5]
	}

	return HistoricalInsights{
		MatchCount:    len(matched),
		AverageCTR:    sumCTR / float64(len(matched)),
		AverageCVR:    sumCVR / float64(len(matched)),
		AverageCPA:    avgCPA,
		TopChannels:   channels,
		ChannelCounts: counts,
	}
}
