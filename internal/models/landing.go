package models

type PageSection struct {
	Headline string   `json:"headline"`
	Body     string   `json:"body"`
	Purpose  string   `json:"purpose"`
	Items    []string `json:"items,omitempty"`
}

// LandingSections keeps the page order fixed: the JSON encoding follows the
// field order below.
type LandingSections struct {
	Hero        *PageSection `json:"hero"`
	Problem     *PageSection `json:"problem"`
	Solution    *PageSection `json:"solution"`
	Process     *PageSection `json:"process"`
	SocialProof *PageSection `json:"socialProof"`
	Guarantee   *PageSection `json:"guarantee"`
	FAQ         *PageSection `json:"faq"`
	FinalCTA    *PageSection `json:"finalCta"`
}

// SectionKeys lists the landing page sections in display order.
var SectionKeys = []string{"hero", "problem", "solution", "process", "socialProof", "guarantee", "faq", "finalCta"}

// Slots returns pointers to each section field, keyed like SectionKeys.
func (s *LandingSections) Slots() map[string]**PageSection {
	return map[string]**PageSection{
		"hero":        &s.Hero,
		"problem":     &s.Problem,
		"solution":    &s.Solution,
		"process":     &s.Process,
		"socialProof": &s.SocialProof,
		"guarantee":   &s.Guarantee,
		"faq":         &s.FAQ,
		"finalCta":    &s.FinalCTA,
	}
}

type LandingPageStructure struct {
	PageTitle       string          `json:"pageTitle"`
	MetaDescription string          `json:"metaDescription,omitempty"`
	Sections        LandingSections `json:"sections"`
}
