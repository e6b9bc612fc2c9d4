package models

// OnboardingProfile is the normalized business description produced by the
// validator. It is built once per generation run and never mutated after.
type OnboardingProfile struct {
	CompanyName        string `json:"companyName"`
	WhatYouSell        string `json:"whatYouSell"`
	ServiceDescription string `json:"serviceDescription"`

	PriceRange        string `json:"priceRange,omitempty"`
	YearsInBusiness   int    `json:"yearsInBusiness,omitempty"`
	ProjectsCompleted int    `json:"projectsCompleted,omitempty"`
	ServiceArea       string `json:"serviceArea,omitempty"`

	GuaranteeType      string `json:"guaranteeType,omitempty"`
	WarrantyDetails    string `json:"warrantyDetails,omitempty"`
	UniqueSellingPoint string `json:"uniqueSellingPoint,omitempty"`

	DecisionTime string `json:"decisionTime,omitempty"`
	PrimaryFear  string `json:"primaryFear,omitempty"`

	MarketingBudget string `json:"marketingBudget,omitempty"`
	AdBudget        string `json:"adBudget,omitempty"`
	ToneOfVoice     string `json:"toneOfVoice,omitempty"`
	CallToAction    string `json:"callToAction,omitempty"`
}
