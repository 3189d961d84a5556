package optimizer

import (
	"fmt"
	"strings"

	"github.com/kimkim0621/events-marketing-ai/internal/domain"
)

// Listing-ads candidate constants: a search-ads placement is always proposed
// when there is budget, independent of the media catalog.
const (
	listingReach       = 3000
	listingCTR         = 3.5
	listingCVR         = 6.0
	listingCostCap     = 200000
	listingBudgetShare = 0.3
	listingConfidence  = 0.75
	listingFallbackCPA = 10000

	mediaBudgetShare = 0.4
)

// CandidateGenerator produces free and paid campaign candidates seeded with
// historical rates and the compatibility-ranked media catalog.
type CandidateGenerator struct{}

// Generate emits the free channel candidates and, when there is budget,
// one paid candidate per cost-efficient media entry plus the listing-ads
// candidate. Every candidate leaves here with conversions and CPA computed.
func (g CandidateGenerator) Generate(req *domain.EventRequest, hist HistoricalInsights, media MediaInsights) []domain.CampaignCandidate {
	candidates := g.freeCandidates(req, hist)
	if req.Budget > 0 {
		candidates = append(candidates, g.paidCandidates(req, media)...)
	}
	for i := range candidates {
		candidates[i].Recalculate()
	}
	return candidates
}

// freeCandidates always includes the three owned channels. Reach caps scale
// with the attendee goal so a 30-person meetup doesn't claim a 5,000-contact
// mailing list.
func (CandidateGenerator) freeCandidates(req *domain.EventRequest, hist HistoricalInsights) []domain.CampaignCandidate {
	n := req.TargetAttendees
	return []domain.CampaignCandidate{
		{
			Channel:     domain.ChannelEmail,
			Name:        "Existing-list email campaign",
			Description: "Announcement emails to the in-house customer and prospect lists",
			IsPaid:      false,
			Reach:       minInt(5000, n*20),
			CTR:         hist.AverageCTR,
			CVR:         hist.AverageCVR,
			Cost:        0,
			Confidence:  0.8,
			Timeline:    "Start 1-2 weeks before the event",
			Resources:   []string{"Email delivery tool", "Existing contact list", "Content production"},
		},
		{
			Channel:     domain.ChannelSocial,
			Name:        "Organic social posts",
			Description: "Organic announcements on X, LinkedIn and Facebook",
			IsPaid:      false,
			Reach:       minInt(2000, n*10),
			CTR:         1.5,
			CVR:         3.0,
			Cost:        0,
			Confidence:  0.6,
			Timeline:    "Start 3-4 weeks before the event",
			Resources:   []string{"Social accounts", "Content production", "Community manager"},
		},
		{
			Channel:     domain.ChannelOrganicSearch,
			Name:        "SEO and event-page optimization",
			Description: "Event landing page SEO for organic search traffic",
			IsPaid:      false,
			Reach:       minInt(1000, n*5),
			CTR:         3.0,
			CVR:         8.0,
			Cost:        0,
			Confidence:  0.7,
			Timeline:    "Start 4-6 weeks before the event",
			Resources:   []string{"Event website", "SEO expertise", "Content optimization"},
		},
	}
}

func (CandidateGenerator) paidCandidates(req *domain.EventRequest, media MediaInsights) []domain.CampaignCandidate {
	var candidates []domain.CampaignCandidate

	for _, m := range media.CostEfficient {
		candidates = append(candidates, domain.CampaignCandidate{
			Channel:     InferChannel(m.Name),
			Name:        fmt.Sprintf("%s advertising", m.Name),
			Description: fmt.Sprintf("%s placement on %s", m.Type, m.Name),
			IsPaid:      true,
			Reach:       m.ReachPotential,
			CTR:         m.AverageCTR,
			CVR:         m.AverageCVR,
			Cost:        minInt(m.CostRange.Min, int(float64(req.Budget)*mediaBudgetShare)),
			FallbackCPA: m.AverageCPA,
			Confidence:  m.CompatibilityScore,
			Timeline:    "Start 2-3 weeks before the event",
			Resources:   []string{"Ad budget", "Creative assets", "Campaign manager"},
		})
	}

	candidates = append(candidates, domain.CampaignCandidate{
		Channel:     domain.ChannelPaidSearch,
		Name:        "Google/Yahoo! search ads",
		Description: "Search-linked ads capturing in-market registrants",
		IsPaid:      true,
		Reach:       listingReach,
		CTR:         listingCTR,
		CVR:         listingCVR,
		Cost:        minInt(listingCostCap, int(float64(req.Budget)*listingBudgetShare)),
		FallbackCPA: listingFallbackCPA,
		Confidence:  listingConfidence,
		Timeline:    "Start 2-4 weeks before the event",
		Resources:   []string{"Ad budget", "Keyword plan", "Landing page"},
	})

	return candidates
}

// InferChannel maps a media name onto a channel id so knowledge entries that
// mention the vendor can find the candidate.
func InferChannel(mediaName string) domain.Channel {
	name := strings.ToLower(mediaName)
	switch {
	case strings.Contains(name, "mail"), strings.Contains(name, "メール"):
		return domain.ChannelEmail
	case strings.Contains(name, "meta"), strings.Contains(name, "facebook"), strings.Contains(name, "instagram"):
		return domain.ChannelPaidSocial
	case strings.Contains(name, "google"), strings.Contains(name, "検索"):
		return domain.ChannelPaidSearch
	case strings.Contains(name, "techplay"), strings.Contains(name, "connpass"):
		return domain.ChannelEventPlatform
	default:
		return domain.ChannelPaidMedia
	}
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
