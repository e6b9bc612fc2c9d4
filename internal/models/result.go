package models

import "time"

// GenerationResult is the aggregate produced by one successful pipeline run.
type GenerationResult struct {
	ID                        string                `json:"id,omitempty"`
	Profile                   OnboardingProfile     `json:"profile"`
	SearchTermsUsed           []string              `json:"searchTermsUsed"`
	RealAdsData               CompetitorAdBundle    `json:"realAdsData"`
	CompetitorAnalysis        *CompetitorAnalysis   `json:"competitorAnalysis"`
	ICP                       *IdealCustomerProfile `json:"icp"`
	AdCampaign                *AdCampaign           `json:"adCampaign"`
	LandingPage               *LandingPageStructure `json:"landingPage"`
	GeneratedAt               time.Time             `json:"generatedAt"`
	GenerationDurationSeconds float64               `json:"generationDurationSeconds"`
}

type MarketingStrategy struct {
	Positioning      string   `json:"positioning"`
	ValueProposition string   `json:"valueProposition"`
	KeyMessages      []string `json:"keyMessages"`
	Channels         []string `json:"channels"`
	Timeline         []string `json:"timeline"`
}

type MarketAnalysis struct {
	MarketSize    string   `json:"marketSize"`
	Trends        []string `json:"trends"`
	Competitors   []string `json:"competitors"`
	Opportunities []string `json:"opportunities"`
	Risks         []string `json:"risks"`
}

// QuickResult is the output of the concurrent entry point that skips live
// competitor discovery.
type QuickResult struct {
	Profile        OnboardingProfile     `json:"profile"`
	Strategy       *MarketingStrategy    `json:"strategy"`
	ICP            *IdealCustomerProfile `json:"icp"`
	MarketAnalysis *MarketAnalysis       `json:"marketAnalysis"`
	AdCampaign     *AdCampaign           `json:"adCampaign"`
	LandingPage    *LandingPageStructure `json:"landingPage"`
	GeneratedAt    time.Time             `json:"generatedAt"`
}
