package models

type Demographics struct {
	AgeRange   string `json:"ageRange"`
	Gender     string `json:"gender"`
	Location   string `json:"location"`
	Occupation string `json:"occupation"`
	Income     string `json:"income"`
}

type Psychographics struct {
	Values      []string `json:"values"`
	Interests   []string `json:"interests"`
	Motivations []string `json:"motivations"`
	Fears       []string `json:"fears"`
}

// IdealCustomerProfile is derived from the competitor analysis, never from
// the raw profile alone.
type IdealCustomerProfile struct {
	Summary           string         `json:"summary"`
	Demographics      Demographics   `json:"demographics"`
	Psychographics    Psychographics `json:"psychographics"`
	BuyingBehavior    string         `json:"buyingBehavior"`
	PainPoints        []string       `json:"painPoints"`
	DreamOutcome      string         `json:"dreamOutcome"`
	MessagingAngles   []string       `json:"messagingAngles"`
	PreferredChannels []string       `json:"preferredChannels"`
}
