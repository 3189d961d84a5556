package optimizer

import (
	"sort"

	"github.com/kimkim0621/events-marketing-ai/internal/domain"
)

// compatibilityThreshold filters out media whose audience barely overlaps
// the request's. A media entry must score strictly above 30% to be proposed.
const compatibilityThreshold = 0.3

// ScoredMedia pairs a catalog entry with its audience-compatibility score.
type ScoredMedia struct {
	domain.MediaEntry
	CompatibilityScore float64 `json:"compatibility_score"`
}

// MediaInsights holds the compatibility-filtered, cost-ranked media catalog.
type MediaInsights struct {
	RelevantMedia []ScoredMedia `json:"relevant_media"`
	CostEfficient []ScoredMedia `json:"cost_efficient_media"` // cheapest three by CPA
}

// MediaCompatibilityAnalyzer scores the media catalog against a target
// audience and ranks the survivors by acquisition cost.
type MediaCompatibilityAnalyzer struct{}

// Analyze keeps media scoring above the compatibility threshold and sorts
// them ascending by average CPA (stable, so catalog order breaks ties).
func (MediaCompatibilityAnalyzer) Analyze(req *domain.EventRequest, catalog []domain.MediaEntry) MediaInsights {
	var relevant []ScoredMedia
	for _, m := range catalog {
		score := CompatibilityScore(req.Audience, m.Audience)
		if score > compatibilityThreshold {
			relevant = append(relevant, ScoredMedia{MediaEntry: m, CompatibilityScore: score})
		}
	}

	sort.SliceStable(relevant, func(i, j int) bool {
		return relevant[i].AverageCPA < relevant[j].AverageCPA
	})

	efficient := relevant
	if len(efficient) > 3 {
		efficient = efficient[:3]
	}

	return MediaInsights{RelevantMedia: relevant, CostEfficient: efficient}
}

// CompatibilityScore measures audience overlap between a request and a media
// entry: half weight on industry overlap, half on job-title overlap, each
// normalized by the target set size. Zero when a target set is empty; the
// result depends only on set membership, not ordering. Clamped to [0, 1].
func CompatibilityScore(target, media domain.TargetAudience) float64 {
	score := setOverlap(target.Industries, media.Industries)*0.5 +
		setOverlap(target.JobTitles, media.JobTitles)*0.5
	if score > 1 {
		score = 1
	}
	if score < 0 {
		score = 0
	}
	return score
}

// setOverlap returns |target ∩ other| / |target|, treating both slices as
// sets. Empty target or other yields 0.
func setOverlap(target, other []string) float64 {
	if len(target) == 0 || len(other) == 0 {
		return 0
	}
	targetSet := make(map[string]struct{}, len(target))
	for _, v := range target {
		targetSet[v] = struct{}{}
	}
	otherSet := make(map[string]struct{}, len(other))
	for _, v := range other {
		otherSet[v] = struct{}{}
	}
	overlap := 0
	for v := range targetSet {
		if _, ok := otherSet[v]; ok {
			overlap++
		}
	}
	return float64(overlap) / float64(len(targetSet))
}
