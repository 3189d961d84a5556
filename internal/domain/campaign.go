package domain

// Channel identifies a recruitment channel a candidate belongs to. The id
// doubles as the key into the knowledge keyword table.
type Channel string

const (
	ChannelEmail         Channel = "email"
	ChannelSocial        Channel = "social"
	ChannelOrganicSearch Channel = "organic_search"
	ChannelPaidSocial    Channel = "paid_social"
	ChannelPaidSearch    Channel = "paid_search"
	ChannelEventPlatform Channel = "event_platform"
	ChannelPaidMedia     Channel = "paid_media"
)

// Overlap groups used by the reach-overlap discount. All paid channels share
// one group because they compete for the same ad-exposed audience.
const (
	OverlapEmail         = "email"
	OverlapSocial        = "social"
	OverlapOrganicSearch = "organic_search"
	OverlapPaidAds       = "paid_advertising"
)

// OverlapGroup maps a candidate onto the pairwise reach-overlap table.
func (c *CampaignCandidate) OverlapGroup() string {
	if c.IsPaid {
		return OverlapPaidAds
	}
	switch c.Channel {
	case ChannelSocial:
		return OverlapSocial
	case ChannelOrganicSearch:
		return OverlapOrganicSearch
	default:
		return OverlapEmail
	}
}

// CampaignCandidate is a prospective channel entry with provisional
// performance estimates. It is mutated through the pipeline (knowledge
// adjustment, budget scaling) and then finalized into a recommendation.
type CampaignCandidate struct {
	Channel     Channel `json:"channel"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	IsPaid      bool    `json:"is_paid"`

	Reach       int     `json:"estimated_reach"`
	CTR         float64 `json:"estimated_ctr"` // percent
	CVR         float64 `json:"estimated_cvr"` // percent
	Cost        int     `json:"estimated_cost"`
	Conversions int     `json:"estimated_conversions"`
	CPA         int     `json:"estimated_cpa"`

	// FallbackCPA is reported when the candidate predicts zero conversions:
	// the media catalog average for paid candidates, zero for free ones.
	FallbackCPA int `json:"-"`

	Confidence       float64  `json:"confidence_score"`
	Timeline         string   `json:"implementation_timeline"`
	Resources        []string `json:"required_resources"`
	AppliedKnowledge []string `json:"applied_knowledge,omitempty"`
}

// Recalculate re-derives conversions and CPA from the current reach and
// rates. Called after generation and again after knowledge adjustment so the
// allocator always sorts on a current CPA.
func (c *CampaignCandidate) Recalculate() {
	c.Conversions = int(float64(c.Reach) * (c.CTR / 100) * (c.CVR / 100))
	if c.Conversions > c.Reach {
		c.Conversions = c.Reach
	}
	if c.Conversions > 0 {
		c.CPA = c.Cost / c.Conversions
	} else {
		c.CPA = c.FallbackCPA
	}
}

// Finalize converts the candidate into an immutable recommendation.
func (c *CampaignCandidate) Finalize() CampaignRecommendation {
	return CampaignRecommendation{
		Channel:          c.Channel,
		Name:             c.Name,
		Description:      c.Description,
		IsPaid:           c.IsPaid,
		Cost:             c.Cost,
		Reach:            c.Reach,
		Conversions:      c.Conversions,
		CTR:              c.CTR,
		CVR:              c.CVR,
		CPA:              c.CPA,
		Confidence:       c.Confidence,
		Timeline:         c.Timeline,
		Resources:        c.Resources,
		AppliedKnowledge: c.AppliedKnowledge,
	}
}

// CampaignRecommendation is a finalized candidate returned to the caller.
type CampaignRecommendation struct {
	Channel          Channel  `json:"channel"`
	Name             string   `json:"campaign_name"`
	Description      string   `json:"description"`
	IsPaid           bool     `json:"is_paid"`
	Cost             int      `json:"estimated_cost"`
	Reach            int      `json:"estimated_reach"`
	Conversions      int      `json:"estimated_conversions"`
	CTR              float64  `json:"estimated_ctr"`
	CVR              float64  `json:"estimated_cvr"`
	CPA              int      `json:"estimated_cpa"`
	Confidence       float64  `json:"confidence_score"`
	Timeline         string   `json:"implementation_timeline"`
	Resources        []string `json:"required_resources"`
	AppliedKnowledge []string `json:"applied_knowledge,omitempty"`
}

// PortfolioPrediction aggregates a recommendation portfolio into
// overlap-discounted totals. Fields are derived only; never set independently
// of the recommendation list they were computed from.
type PortfolioPrediction struct {
	TotalReach                 int      `json:"total_reach"`
	TotalConversions           int      `json:"total_conversions"`
	TotalCost                  int      `json:"total_cost"`
	OverallCTR                 float64  `json:"overall_ctr"`
	OverallCVR                 float64  `json:"overall_cvr"`
	OverallCPA                 int      `json:"overall_cpa"`
	GoalAchievementProbability float64  `json:"goal_achievement_probability"`
	RiskFactors                []string `json:"risk_factors"`
	OptimizationSuggestions    []string `json:"optimization_suggestions"`
}
