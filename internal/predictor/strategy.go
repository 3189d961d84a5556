package predictor

import (
	"errors"
	"log"
	"time"

	"github.com/kimkim0621/events-marketing-ai/internal/domain"
)

// ErrModelNotFitted is returned by the model strategy when no coefficients
// have been supplied. No fitting happens in-process; coefficients come from
// an offline pipeline via configuration.
var ErrModelNotFitted = errors.New("predictor: model coefficients not loaded")

// ModelCoefficients parameterize the linear conversion model. Channel
// weights scale each recommendation's predicted conversions before the
// overlap-adjusted blend.
type ModelCoefficients struct {
	Intercept      float64            `yaml:"intercept" json:"intercept"`
	ChannelWeights map[string]float64 `yaml:"channel_weights" json:"channel_weights"`
}

// Model is the optional model-based strategy. It reuses the heuristic's
// overlap and rule machinery but replaces the raw conversion sum with a
// weighted linear estimate.
type Model struct {
	heuristic *Heuristic
	coeffs    *ModelCoefficients
}

// NewModel builds a model strategy; coeffs may be nil, in which case every
// Predict call returns ErrModelNotFitted.
func NewModel(coeffs *ModelCoefficients) *Model {
	return &Model{heuristic: NewHeuristic(), coeffs: coeffs}
}

func (*Model) Name() string { return "model" }

func (m *Model) Predict(req *domain.EventRequest, recs []domain.CampaignRecommendation, events []domain.HistoricalEvent, now time.Time) (domain.PortfolioPrediction, error) {
	if m.coeffs == nil || len(m.coeffs.ChannelWeights) == 0 {
		return domain.PortfolioPrediction{}, ErrModelNotFitted
	}

	weighted := make([]domain.CampaignRecommendation, len(recs))
	copy(weighted, recs)
	for i := range weighted {
		w, ok := m.coeffs.ChannelWeights[string(weighted[i].Channel)]
		if !ok {
			w = 1.0
		}
		weighted[i].Conversions = int(m.coeffs.Intercept + float64(weighted[i].Conversions)*w)
		if weighted[i].Conversions < 0 {
			weighted[i].Conversions = 0
		}
		if weighted[i].Conversions > weighted[i].Reach {
			weighted[i].Conversions = weighted[i].Reach
		}
	}
	return m.heuristic.Predict(req, weighted, events, now)
}

// WithFallback wraps a primary strategy so any failure falls back to the
// heuristic. The switch is logged; a fallback must never be silent.
type WithFallback struct {
	Primary  Strategy
	Fallback Strategy
}

// NewWithFallback wraps primary with the heuristic fallback.
func NewWithFallback(primary Strategy) *WithFallback {
	return &WithFallback{Primary: primary, Fallback: NewHeuristic()}
}

func (w *WithFallback) Name() string { return w.Primary.Name() + "+fallback" }

func (w *WithFallback) Predict(req *domain.EventRequest, recs []domain.CampaignRecommendation, events []domain.HistoricalEvent, now time.Time) (domain.PortfolioPrediction, error) {
	pred, err := w.Primary.Predict(req, recs, events, now)
	if err == nil {
		return pred, nil
	}
	log.Printf("[predictor] strategy %q failed (%v), falling back to %q", w.Primary.Name(), err, w.Fallback.Name())
	return w.Fallback.Predict(req, recs, events, now)
}
