package optimizer

import (
	"fmt"

	"github.com/kimkim0621/events-marketing-ai/internal/domain"
)

// sanitizeDataset drops malformed reference records at the record boundary,
// returning the usable dataset and one warning per skipped record. A bad
// record never aborts the whole recommendation.
func sanitizeDataset(data *domain.Dataset) (domain.Dataset, []string) {
	var warnings []string
	clean := domain.Dataset{}

	for _, e := range data.Events {
		if reason := validateHistoricalEvent(&e); reason != "" {
			warnings = append(warnings, fmt.Sprintf("historical event %q (id %d) skipped: %s", e.Name, e.ID, reason))
			continue
		}
		clean.Events = append(clean.Events, e)
	}
	for _, m := range data.Media {
		if reason := validateMediaEntry(&m); reason != "" {
			warnings = append(warnings, fmt.Sprintf("media entry %q skipped: %s", m.Name, reason))
			continue
		}
		clean.Media = append(clean.Media, m)
	}
	for _, k := range data.Knowledge {
		if reason := validateKnowledgeEntry(&k); reason != "" {
			warnings = append(warnings, fmt.Sprintf("knowledge entry %q skipped: %s", k.Title, reason))
			continue
		}
		clean.Knowledge = append(clean.Knowledge, k)
	}
	return clean, warnings
}

func validateHistoricalEvent(e *domain.HistoricalEvent) string {
	switch {
	case e.Name == "":
		return "missing event name"
	case e.TargetAttendees <= 0:
		return "non-positive attendee target"
	case e.ActualAttendees < 0:
		return "negative actual attendees"
	case e.Budget < 0 || e.ActualCost < 0:
		return "negative budget or cost"
	case e.Metrics.CTR < 0 || e.Metrics.CVR < 0:
		return "negative performance rates"
	}
	return ""
}

func validateMediaEntry(m *domain.MediaEntry) string {
	switch {
	case m.Name == "":
		return "missing media name"
	case m.ReachPotential < 0:
		return "negative reach potential"
	case m.AverageCTR < 0 || m.AverageCVR < 0 || m.AverageCPA < 0:
		return "negative performance averages"
	case m.CostRange.Min < 0 || m.CostRange.Max < m.CostRange.Min:
		return "invalid cost range"
	}
	return ""
}

func validateKnowledgeEntry(k *domain.KnowledgeEntry) string {
	switch {
	case k.Title == "":
		return "missing title"
	case k.Content == "":
		return "missing content"
	case k.ImpactScore < 0:
		return "negative impact score"
	case k.Confidence < 0 || k.Confidence > 1:
		return "confidence outside [0,1]"
	}
	return ""
}
