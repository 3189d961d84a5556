package domain

import (
	"fmt"
	"time"
)

// EventCategory enumerates the supported event types.
type EventCategory string

const (
	CategoryConference    EventCategory = "conference"
	CategorySeminar       EventCategory = "seminar"
	CategoryWorkshop      EventCategory = "workshop"
	CategoryWebinar       EventCategory = "webinar"
	CategoryNetworking    EventCategory = "networking"
	CategoryProductLaunch EventCategory = "product_launch"
)

// EventFormat enumerates delivery formats.
type EventFormat string

const (
	FormatOnline  EventFormat = "online"
	FormatOffline EventFormat = "offline"
	FormatHybrid  EventFormat = "hybrid"
)

// TargetAudience describes who an event (or a media property) is aimed at.
type TargetAudience struct {
	Industries   []string `json:"industries"`
	JobTitles    []string `json:"job_titles"`
	CompanySizes []string `json:"company_sizes,omitempty"`
}

// EventRequest is the immutable input for one recommendation run.
type EventRequest struct {
	Name            string         `json:"event_name"`
	Category        EventCategory  `json:"event_category"`
	Theme           string         `json:"event_theme"`
	Audience        TargetAudience `json:"target_audience"`
	TargetAttendees int            `json:"target_attendees"`
	Budget          int            `json:"budget"`
	EventDate       time.Time      `json:"event_date"`
	IsFreeEvent     bool           `json:"is_free_event"`
	Format          EventFormat    `json:"event_format"`
}

// Validate rejects requests the optimization core must never see.
// The core assumes validated input; callers run this at the boundary.
func (r *EventRequest) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("event_name is required")
	}
	if r.Theme == "" {
		return fmt.Errorf("event_theme is required")
	}
	if r.TargetAttendees <= 0 {
		return fmt.Errorf("target_attendees must be positive, got %d", r.TargetAttendees)
	}
	if r.Budget < 0 {
		return fmt.Errorf("budget must be non-negative, got %d", r.Budget)
	}
	switch r.Category {
	case CategoryConference, CategorySeminar, CategoryWorkshop, CategoryWebinar,
		CategoryNetworking, CategoryProductLaunch:
	default:
		return fmt.Errorf("unknown event_category %q", r.Category)
	}
	switch r.Format {
	case FormatOnline, FormatOffline, FormatHybrid:
	default:
		return fmt.Errorf("unknown event_format %q", r.Format)
	}
	return nil
}

// PerformanceMetrics holds the observed rate metrics of a past event.
// CTR and CVR are percentages; CPA is in yen.
type PerformanceMetrics struct {
	CTR float64 `json:"ctr"`
	CVR float64 `json:"cvr"`
	CPA int     `json:"cpa"`
}

// HistoricalEvent is a read-only record of a past event and its outcome.
type HistoricalEvent struct {
	ID              int                `json:"event_id"`
	Name            string             `json:"event_name"`
	Category        EventCategory      `json:"category"`
	Theme           string             `json:"theme"`
	TargetAttendees int                `json:"target_attendees"`
	ActualAttendees int                `json:"actual_attendees"`
	Budget          int                `json:"budget"`
	ActualCost      int                `json:"actual_cost"`
	EventDate       time.Time          `json:"event_date"`
	CampaignsUsed   []string           `json:"campaigns_used"`
	Metrics         PerformanceMetrics `json:"performance_metrics"`
}

// Successful reports whether the event reached at least 80% of its target.
func (e *HistoricalEvent) Successful() bool {
	return float64(e.ActualAttendees) >= float64(e.TargetAttendees)*0.8
}

// CostRange bounds the acquisition cost of a media placement, in yen.
type CostRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// MediaEntry is a read-only record from the media catalog.
type MediaEntry struct {
	Name           string         `json:"media_name"`
	Type           string         `json:"media_type"`
	Audience       TargetAudience `json:"target_audience"`
	AverageCTR     float64        `json:"average_ctr"`
	AverageCVR     float64        `json:"average_cvr"`
	AverageCPA     int            `json:"average_cpa"`
	ReachPotential int            `json:"reach_potential"`
	CostRange      CostRange      `json:"cost_range"`
	ContentTypes   []string       `json:"best_performing_content_types"`
}

// KnowledgeEntry is one piece of internal marketing know-how applied to
// candidates whose channel its content mentions.
type KnowledgeEntry struct {
	Category    string  `json:"category"`
	Title       string  `json:"title"`
	Content     string  `json:"content"`
	Condition   string  `json:"condition,omitempty"`
	ImpactScore float64 `json:"impact_score"` // ~0-2, 1.0 is neutral
	Confidence  float64 `json:"confidence"`   // 0-1
	Source      string  `json:"source"`
}

// Dataset bundles the three read-only reference collections supplied to the
// engine for the duration of one call. Snapshots are never mutated by the
// core; concurrent requests may share one Dataset.
type Dataset struct {
	Events    []HistoricalEvent `json:"events"`
	Media     []MediaEntry      `json:"media"`
	Knowledge []KnowledgeEntry  `json:"knowledge"`
}
