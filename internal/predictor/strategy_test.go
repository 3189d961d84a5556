package predictor

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kimkim0621/events-marketing-ai/internal/domain"
)

func TestModel_NotFittedWithoutCoefficients(t *testing.T) {
	for _, m := range []*Model{NewModel(nil), NewModel(&ModelCoefficients{})} {
		_, err := m.Predict(webinarRequest(100), nil, nil, testNow)
		assert.ErrorIs(t, err, ErrModelNotFitted)
	}
}

func TestModel_WeightsConversionsPerChannel(t *testing.T) {
	m := NewModel(&ModelCoefficients{
		Intercept:      2,
		ChannelWeights: map[string]float64{"email": 1.5},
	})
	recs := []domain.CampaignRecommendation{
		rec(domain.ChannelEmail, false, 2000, 10, 0),
	}

	pred, err := m.Predict(webinarRequest(100), recs, nil, testNow)
	require.NoError(t, err)

	// Weighted conversions: int(2 + 10*1.5) = 17, then the heuristic blend:
	// 17 * 0.85 * 1.1 * 1.2 = 19.07...
	assert.Equal(t, 19, pred.TotalConversions)
}

func TestModel_UnknownChannelDefaultsToUnitWeight(t *testing.T) {
	m := NewModel(&ModelCoefficients{
		ChannelWeights: map[string]float64{"email": 1.0},
	})
	recs := []domain.CampaignRecommendation{
		rec(domain.ChannelSocial, false, 2000, 10, 0),
	}
	h := NewHeuristic()

	got, err := m.Predict(webinarRequest(100), recs, nil, testNow)
	require.NoError(t, err)
	want, err := h.Predict(webinarRequest(100), recs, nil, testNow)
	require.NoError(t, err)

	assert.Equal(t, want, got)
}

func TestModel_ClampsWeightedConversionsToReach(t *testing.T) {
	m := NewModel(&ModelCoefficients{
		ChannelWeights: map[string]float64{"email": 100},
	})
	recs := []domain.CampaignRecommendation{
		rec(domain.ChannelEmail, false, 20, 10, 0),
	}

	pred, err := m.Predict(webinarRequest(100), recs, nil, testNow)
	require.NoError(t, err)

	// Reach-clamped to 20 before the heuristic blend: 20*0.85*1.1*1.2.
	assert.Equal(t, 22, pred.TotalConversions)
}

func TestModel_DoesNotMutateInput(t *testing.T) {
	m := NewModel(&ModelCoefficients{
		ChannelWeights: map[string]float64{"email": 2.0},
	})
	recs := []domain.CampaignRecommendation{
		rec(domain.ChannelEmail, false, 2000, 10, 0),
	}

	_, err := m.Predict(webinarRequest(100), recs, nil, testNow)
	require.NoError(t, err)

	assert.Equal(t, 10, recs[0].Conversions)
}

type failingStrategy struct{ err error }

func (failingStrategy) Name() string { return "failing" }
func (f failingStrategy) Predict(*domain.EventRequest, []domain.CampaignRecommendation, []domain.HistoricalEvent, time.Time) (domain.PortfolioPrediction, error) {
	return domain.PortfolioPrediction{}, f.err
}

func TestWithFallback_UsesPrimaryOnSuccess(t *testing.T) {
	w := NewWithFallback(NewHeuristic())
	recs := []domain.CampaignRecommendation{
		rec(domain.ChannelEmail, false, 2000, 10, 0),
	}

	got, err := w.Predict(webinarRequest(100), recs, nil, testNow)
	require.NoError(t, err)
	want, err := NewHeuristic().Predict(webinarRequest(100), recs, nil, testNow)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestWithFallback_FallsBackOnError(t *testing.T) {
	w := NewWithFallback(failingStrategy{err: errors.New("boom")})
	recs := []domain.CampaignRecommendation{
		rec(domain.ChannelEmail, false, 2000, 10, 0),
	}

	got, err := w.Predict(webinarRequest(100), recs, nil, testNow)
	require.NoError(t, err)
	want, err := NewHeuristic().Predict(webinarRequest(100), recs, nil, testNow)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestWithFallback_Name(t *testing.T) {
	w := NewWithFallback(NewModel(nil))
	assert.Equal(t, "model+fallback", w.Name())
}
