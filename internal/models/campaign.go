package models

type CampaignStrategy struct {
	Objective   string             `json:"objective"`
	Channels    []string           `json:"channels"`
	BudgetSplit map[string]float64 `json:"budgetSplit"`
	Targeting   string             `json:"targeting,omitempty"`
}

type AdVariant struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Type          string `json:"type"`
	Angle         string `json:"angle"`
	TargetEmotion string `json:"targetEmotion"`
	Headline      string `json:"headline"`
	Body          string `json:"body"`
	CallToAction  string `json:"callToAction"`
	VisualBrief   string `json:"visualBrief"`
}

type AdCampaign struct {
	Strategy   CampaignStrategy `json:"campaignStrategy"`
	AdVariants []AdVariant      `json:"adVariants"`
}
