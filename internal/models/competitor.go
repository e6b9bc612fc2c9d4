package models

// CompetitorAdRecord is one ad discovered during a single pipeline run.
// AdvertiserID is the dedup key across search terms.
type CompetitorAdRecord struct {
	AdvertiserID   string   `json:"advertiserId"`
	AdvertiserName string   `json:"advertiserName"`
	Headline       string   `json:"headline,omitempty"`
	Body           string   `json:"body,omitempty"`
	Caption        string   `json:"caption,omitempty"`
	Platforms      []string `json:"platforms,omitempty"`
	StartDate      string   `json:"startDate,omitempty"`
	SearchTerm     string   `json:"searchTerm"`
}

// CompetitorAdBundle is the collector output. Available=false means the ad
// search was skipped and the pipeline runs in degraded mode.
type CompetitorAdBundle struct {
	Available         bool                 `json:"available"`
	Ads               []CompetitorAdRecord `json:"ads"`
	UniqueCompetitors int                  `json:"uniqueCompetitors"`
	SearchTermsUsed   []string             `json:"searchTermsUsed,omitempty"`
	Reason            string               `json:"reason,omitempty"`
}

type Competitor struct {
	Name        string   `json:"name"`
	Positioning string   `json:"positioning"`
	Strengths   []string `json:"strengths"`
	Weaknesses  []string `json:"weaknesses"`
}

type AdPatternInsights struct {
	CommonHooks         []string `json:"commonHooks"`
	CommonOffers        []string `json:"commonOffers"`
	CommonCallsToAction []string `json:"commonCallsToAction"`
	Gaps                []string `json:"gaps"`
}

type CompetitorAnalysis struct {
	MarketOverview string              `json:"marketOverview"`
	Competitors    []Competitor        `json:"competitors"`
	AdPatterns     AdPatternInsights   `json:"adPatterns"`
	Opportunities  []string            `json:"opportunities"`
	Threats        []string            `json:"threats"`
	RealAdsData    *CompetitorAdBundle `json:"realAdsData,omitempty"`
}
