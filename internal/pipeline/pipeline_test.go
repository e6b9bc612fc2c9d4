package pipeline

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BerylCAtieno/strategy-agent/internal/adsearch/adsearchtest"
	"github.com/BerylCAtieno/strategy-agent/internal/collector"
	"github.com/BerylCAtieno/strategy-agent/internal/llm/llmtest"
	"github.com/BerylCAtieno/strategy-agent/internal/models"
	"github.com/BerylCAtieno/strategy-agent/internal/progress"
	"github.com/BerylCAtieno/strategy-agent/internal/stages"
	"github.com/BerylCAtieno/strategy-agent/internal/validator"
)

func acmePayload() map[string]any {
	return map[string]any{
		"companyName":        "Acme",
		"whatYouSell":        "custom signage",
		"serviceDescription": "We design and install storefront signage for local shops.",
	}
}

type harness struct {
	gen      *llmtest.Generator
	search   *adsearchtest.Service
	states   []State
	messages []string
	orch     *Orchestrator
}

func newHarness(search *adsearchtest.Service) *harness {
	h := &harness{gen: llmtest.New(), search: search}
	cfg := collector.DefaultConfig()
	cfg.Delay = 0

	clock := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	now := func() time.Time {
		clock = clock.Add(2 * time.Second)
		return clock
	}

	h.orch = New(
		collector.New(search, cfg, nil),
		stages.NewRunner(h.gen, nil),
		nil,
		WithStateObserver(func(s State) { h.states = append(h.states, s) }),
		WithClock(now),
	)
	return h
}

func (h *harness) sink() progress.Sink {
	return progress.SinkFunc(func(m string) { h.messages = append(h.messages, m) })
}

var happyPath = []State{
	StateValidating, StateCollectingAds, StateAnalyzingCompetition,
	StateBuildingICP, StateGeneratingAds, StateGeneratingLandingPage, StateDone,
}

func TestRun_DegradedModeReachesDone(t *testing.T) {
	h := newHarness(&adsearchtest.Service{Unavailable: true})

	result, err := h.orch.Run(context.Background(), acmePayload(), h.sink())
	require.NoError(t, err)

	assert.Equal(t, happyPath, h.states)
	assert.False(t, result.RealAdsData.Available)
	require.NotNil(t, result.CompetitorAnalysis)
	assert.Nil(t, result.CompetitorAnalysis.RealAdsData)
	require.NotNil(t, result.ICP)
	assert.NotEmpty(t, result.ICP.Summary)
	assert.Len(t, result.AdCampaign.AdVariants, 6)
	for _, key := range models.SectionKeys {
		assert.NotNil(t, *result.LandingPage.Sections.Slots()[key], key)
	}
	assert.Equal(t, 2.0, result.GenerationDurationSeconds)
	assert.NotEmpty(t, result.SearchTermsUsed)

	assert.Equal(t, []string{
		stages.StageCompetitorAnalysis, stages.StageICP, stages.StageAdCampaign, stages.StageLandingPage,
	}, h.gen.Names())
	assert.Len(t, h.messages, 6)
}

func TestRun_WithLiveAds(t *testing.T) {
	search := &adsearchtest.Service{Ads: map[string][]models.CompetitorAdRecord{
		"custom signage": {
			{AdvertiserID: "p1", AdvertiserName: "SignCo", Headline: "Get noticed"},
			{AdvertiserID: "p9", AdvertiserName: "Acme Signs", Headline: "Us"},
		},
		"custom signage services": {
			{AdvertiserID: "p1", AdvertiserName: "SignCo", Headline: "Again"},
			{AdvertiserID: "p2", AdvertiserName: "BrightLetters", Headline: "Glow"},
		},
	}}
	h := newHarness(search)

	result, err := h.orch.Run(context.Background(), acmePayload(), h.sink())
	require.NoError(t, err)

	assert.Equal(t, happyPath, h.states)
	assert.True(t, result.RealAdsData.Available)
	assert.Equal(t, 2, result.RealAdsData.UniqueCompetitors)
	require.NotNil(t, result.CompetitorAnalysis.RealAdsData)
	assert.Contains(t, h.gen.Prompt(stages.StageCompetitorAnalysis), "SignCo")
	assert.NotContains(t, h.gen.Prompt(stages.StageCompetitorAnalysis), "Acme Signs")

	// two stage-level reports, one per search term, four stage entries
	assert.Len(t, h.messages, 2+len(result.SearchTermsUsed)+4)
}

func TestRun_ValidationFailsBeforeExternalCalls(t *testing.T) {
	search := &adsearchtest.Service{}
	h := newHarness(search)

	_, err := h.orch.Run(context.Background(), map[string]any{"companyName": "Acme"}, nil)

	var verr *validator.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"whatYouSell", "serviceDescription"}, verr.Missing)
	assert.Equal(t, []State{StateValidating, StateFailed}, h.states)
	assert.Zero(t, search.Checks())
	assert.Empty(t, h.gen.Requests())
}

func TestRun_StageFailureStopsPipeline(t *testing.T) {
	h := newHarness(&adsearchtest.Service{})
	upstream := errors.New("model overloaded")
	h.gen.Fail(stages.StageAdCampaign, upstream)

	result, err := h.orch.Run(context.Background(), acmePayload(), h.sink())
	require.Error(t, err)
	assert.Nil(t, result)

	var gerr *stages.GenerationError
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, stages.StageAdCampaign, gerr.Stage)
	assert.ErrorIs(t, err, upstream)

	assert.Equal(t, []State{
		StateValidating, StateCollectingAds, StateAnalyzingCompetition,
		StateBuildingICP, StateGeneratingAds, StateFailed,
	}, h.states)
	assert.NotContains(t, h.gen.Names(), stages.StageLandingPage)
}

func TestRun_CancelledContext(t *testing.T) {
	h := newHarness(&adsearchtest.Service{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := h.orch.Run(ctx, acmePayload(), nil)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, []State{StateFailed}, h.states)
	assert.Empty(t, h.gen.Requests())
}

func TestRun_IndependentInvocations(t *testing.T) {
	h := newHarness(&adsearchtest.Service{Ads: map[string][]models.CompetitorAdRecord{
		"custom signage": {{AdvertiserID: "p1", AdvertiserName: "SignCo"}},
	}})

	first, err := h.orch.Run(context.Background(), acmePayload(), nil)
	require.NoError(t, err)
	second, err := h.orch.Run(context.Background(), acmePayload(), nil)
	require.NoError(t, err)

	assert.Equal(t, 1, first.RealAdsData.UniqueCompetitors)
	assert.Equal(t, 1, second.RealAdsData.UniqueCompetitors)
}

func TestQuick(t *testing.T) {
	gen := llmtest.New()
	result, err := Quick(context.Background(), stages.NewRunner(gen, nil), acmePayload())
	require.NoError(t, err)

	assert.NotNil(t, result.Strategy)
	assert.NotNil(t, result.ICP)
	assert.NotNil(t, result.MarketAnalysis)
	assert.Len(t, result.AdCampaign.AdVariants, 6)
	assert.NotNil(t, result.LandingPage.Sections.Hero)

	names := gen.Names()
	require.Len(t, names, 5)
	assert.ElementsMatch(t, []string{stages.StageMarketingStrategy, stages.StageICP, stages.StageMarketAnalysis}, names[:3])
	assert.ElementsMatch(t, []string{stages.StageAdCampaign, stages.StageLandingPage}, names[3:])
}

func TestQuick_FirstWaveFailureSkipsSecondWave(t *testing.T) {
	gen := llmtest.New().Fail(stages.StageMarketAnalysis, errors.New("boom"))

	_, err := Quick(context.Background(), stages.NewRunner(gen, nil), acmePayload())
	require.Error(t, err)
	assert.NotContains(t, gen.Names(), stages.StageAdCampaign)
	assert.NotContains(t, gen.Names(), stages.StageLandingPage)
}
