package stages

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BerylCAtieno/strategy-agent/internal/llm/llmtest"
	"github.com/BerylCAtieno/strategy-agent/internal/models"
	"github.com/BerylCAtieno/strategy-agent/internal/progress"
)

func testProfile() models.OnboardingProfile {
	return models.OnboardingProfile{
		CompanyName:        "Acme",
		WhatYouSell:        "custom signage",
		ServiceDescription: "We design and install storefront signage.",
	}
}

type messageLog struct{ messages []string }

func (m *messageLog) Report(msg string) { m.messages = append(m.messages, msg) }

func TestCompetitorAnalysis_EmbedsSampleAds(t *testing.T) {
	gen := llmtest.New()
	runner := NewRunner(gen, nil)

	var ads []models.CompetitorAdRecord
	for i := 0; i < 12; i++ {
		ads = append(ads, models.CompetitorAdRecord{
			AdvertiserID:   fmt.Sprintf("p%d", i),
			AdvertiserName: fmt.Sprintf("Rival %02d", i),
			Headline:       strings.Repeat("h", 300),
			Body:           "Best signs in town",
		})
	}
	bundle := models.CompetitorAdBundle{Available: true, Ads: ads, UniqueCompetitors: 12}
	sink := &messageLog{}

	analysis, err := runner.CompetitorAnalysis(context.Background(), testProfile(), bundle, sink)
	require.NoError(t, err)
	require.NotNil(t, analysis.RealAdsData)
	assert.Equal(t, 12, analysis.RealAdsData.UniqueCompetitors)
	assert.Len(t, analysis.Competitors, 2)
	assert.Len(t, sink.messages, 1)

	prompt := gen.Prompt(StageCompetitorAnalysis)
	assert.Contains(t, prompt, "Rival 09")
	assert.NotContains(t, prompt, "Rival 10")
	assert.NotContains(t, prompt, strings.Repeat("h", 121))
	assert.NotContains(t, prompt, noAdsNote)
}

func TestCompetitorAnalysis_FallbackNote(t *testing.T) {
	gen := llmtest.New()
	runner := NewRunner(gen, nil)

	analysis, err := runner.CompetitorAnalysis(context.Background(), testProfile(),
		models.CompetitorAdBundle{Available: false, Reason: "no token"}, nil)
	require.NoError(t, err)
	assert.Nil(t, analysis.RealAdsData)
	assert.Contains(t, gen.Prompt(StageCompetitorAnalysis), noAdsNote)
}

func TestStage_GenerationErrorCarriesStage(t *testing.T) {
	upstream := errors.New("quota exceeded")
	gen := llmtest.New().Fail(StageICP, upstream)
	runner := NewRunner(gen, nil)

	_, err := runner.IdealCustomerProfile(context.Background(), testProfile(), &models.CompetitorAnalysis{}, progress.Discard)
	require.Error(t, err)

	var gerr *GenerationError
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, StageICP, gerr.Stage)
	assert.ErrorIs(t, err, upstream)
	assert.Contains(t, err.Error(), "regenerate this stage")
}

func TestStage_UnparseableOutput(t *testing.T) {
	gen := llmtest.New().Respond(StageAdCampaign, `{"campaignStrategy": "should be an object"}`)
	runner := NewRunner(gen, nil)

	_, err := runner.AdCampaign(context.Background(), testProfile(), &models.IdealCustomerProfile{}, &models.CompetitorAnalysis{}, nil)
	var gerr *GenerationError
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, StageAdCampaign, gerr.Stage)
}

func TestICP_PlaceholdersForMissingPriorFields(t *testing.T) {
	gen := llmtest.New()
	runner := NewRunner(gen, nil)

	_, err := runner.IdealCustomerProfile(context.Background(), testProfile(),
		&models.CompetitorAnalysis{MarketOverview: "crowded"}, nil)
	require.NoError(t, err)

	prompt := gen.Prompt(StageICP)
	assert.Contains(t, prompt, "Market overview: crowded")
	assert.Contains(t, prompt, "Opportunities: "+Placeholder)
	assert.Contains(t, prompt, "Price range: "+Placeholder)
}

func TestAdCampaign_NumbersVariants(t *testing.T) {
	runner := NewRunner(llmtest.New(), nil)

	campaign, err := runner.AdCampaign(context.Background(), testProfile(), &models.IdealCustomerProfile{}, &models.CompetitorAnalysis{}, nil)
	require.NoError(t, err)
	require.Len(t, campaign.AdVariants, AdVariantCount)
	assert.Equal(t, "ad-6", campaign.AdVariants[5].ID)
	assert.Equal(t, 60.0, campaign.Strategy.BudgetSplit["Facebook"])
}

func TestAdCampaign_NoVariantsFails(t *testing.T) {
	gen := llmtest.New().Respond(StageAdCampaign, `{"campaignStrategy": {"objective": "leads"}, "adVariants": []}`)
	_, err := NewRunner(gen, nil).AdCampaign(context.Background(), testProfile(), nil, nil, nil)

	var gerr *GenerationError
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, StageAdCampaign, gerr.Stage)
}

func TestLandingPage_FillsMissingSections(t *testing.T) {
	gen := llmtest.New().Respond(StageLandingPage, `{"pageTitle": "T", "sections": {"hero": {"headline": "H", "body": "B", "purpose": "Hook"}}}`)

	page, err := NewRunner(gen, nil).LandingPage(context.Background(), testProfile(), nil, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "H", page.Sections.Hero.Headline)
	require.NotNil(t, page.Sections.FAQ)
	assert.Equal(t, Placeholder, page.Sections.FAQ.Headline)

	for key, slot := range page.Sections.Slots() {
		assert.NotNil(t, *slot, key)
	}

	prompt := gen.Prompt(StageLandingPage)
	assert.Contains(t, prompt, "IDEAL CUSTOMER PROFILE\n"+Placeholder)
	assert.Contains(t, prompt, "AD CAMPAIGN\n"+Placeholder)
}

func TestLandingPage_MissingSectionsObjectFails(t *testing.T) {
	gen := llmtest.New().Respond(StageLandingPage, `{"pageTitle": "T"}`)

	_, err := NewRunner(gen, nil).LandingPage(context.Background(), testProfile(), nil, nil, nil)
	var gerr *GenerationError
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, StageLandingPage, gerr.Stage)
}

func TestQuickStages(t *testing.T) {
	runner := NewRunner(llmtest.New(), nil)

	strategy, err := runner.MarketingStrategy(context.Background(), testProfile())
	require.NoError(t, err)
	assert.Equal(t, "The on-time signage partner", strategy.Positioning)

	market, err := runner.MarketAnalysis(context.Background(), testProfile())
	require.NoError(t, err)
	assert.Equal(t, []string{"LED retrofits"}, market.Trends)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("  abc ", 10))
	assert.Equal(t, "ab...", truncate("abcdef", 2))
	assert.Equal(t, "é", truncate("é", 1))
}
