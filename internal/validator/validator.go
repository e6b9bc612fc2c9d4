// Package validator checks raw onboarding payloads and derives the
// competitor search terms used by the ad collector.
package validator

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/BerylCAtieno/strategy-agent/internal/models"
)

// MaxSearchTerms bounds how many search terms Validate derives.
const MaxSearchTerms = 5

var requiredFields = []string{"companyName", "whatYouSell", "serviceDescription"}

// ValidationError lists every problem found in one pass.
type ValidationError struct {
	Missing []string
	Invalid []string
}

func (e *ValidationError) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, "missing required fields: "+strings.Join(e.Missing, ", "))
	}
	if len(e.Invalid) > 0 {
		parts = append(parts, "invalid fields: "+strings.Join(e.Invalid, ", "))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

type Result struct {
	Profile     models.OnboardingProfile
	SearchTerms []string
}

// Validate normalizes a raw onboarding payload. It has no side effects.
func Validate(raw map[string]any) (*Result, error) {
	verr := &ValidationError{}

	for _, field := range requiredFields {
		v, ok := raw[field]
		if !ok || v == nil {
			verr.Missing = append(verr.Missing, field)
			continue
		}
		s, ok := v.(string)
		if !ok {
			verr.Invalid = append(verr.Invalid, field)
			continue
		}
		if strings.TrimSpace(s) == "" {
			verr.Missing = append(verr.Missing, field)
		}
	}

	years, okYears := intField(raw, "yearsInBusiness")
	if !okYears {
		verr.Invalid = append(verr.Invalid, "yearsInBusiness")
	}
	projects, okProjects := intField(raw, "projectsCompleted")
	if !okProjects {
		verr.Invalid = append(verr.Invalid, "projectsCompleted")
	}

	if len(verr.Missing) > 0 || len(verr.Invalid) > 0 {
		return nil, verr
	}

	profile := models.OnboardingProfile{
		CompanyName:        stringField(raw, "companyName"),
		WhatYouSell:        stringField(raw, "whatYouSell"),
		ServiceDescription: stringField(raw, "serviceDescription"),
		PriceRange:         stringField(raw, "priceRange"),
		YearsInBusiness:    years,
		ProjectsCompleted:  projects,
		ServiceArea:        stringField(raw, "serviceArea"),
		GuaranteeType:      stringField(raw, "guaranteeType"),
		WarrantyDetails:    stringField(raw, "warrantyDetails"),
		UniqueSellingPoint: stringField(raw, "uniqueSellingPoint"),
		DecisionTime:       stringField(raw, "decisionTime"),
		PrimaryFear:        stringField(raw, "primaryFear"),
		MarketingBudget:    stringField(raw, "marketingBudget"),
		AdBudget:           stringField(raw, "adBudget"),
		ToneOfVoice:        stringField(raw, "toneOfVoice"),
		CallToAction:       stringField(raw, "callToAction"),
	}

	return &Result{
		Profile:     profile,
		SearchTerms: SearchTerms(profile),
	}, nil
}

// SearchTerms derives a small ordered list of free-text queries from the
// offering. Terms are deduplicated case-insensitively.
func SearchTerms(p models.OnboardingProfile) []string {
	offering := strings.TrimSpace(p.WhatYouSell)
	candidates := []string{offering}
	if area := strings.TrimSpace(p.ServiceArea); area != "" {
		candidates = append(candidates, offering+" "+area)
	}
	if words := strings.Fields(p.ServiceDescription); len(words) > 0 {
		if len(words) > 6 {
			words = words[:6]
		}
		candidates = append(candidates, strings.TrimRight(strings.Join(words, " "), ".,;:!?"))
	}
	if !strings.HasSuffix(strings.ToLower(offering), "services") {
		candidates = append(candidates, offering+" services")
	}

	seen := make(map[string]bool)
	terms := make([]string, 0, MaxSearchTerms)
	for _, c := range candidates {
		key := strings.ToLower(strings.TrimSpace(c))
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		terms = append(terms, strings.TrimSpace(c))
		if len(terms) == MaxSearchTerms {
			break
		}
	}
	return terms
}

func stringField(raw map[string]any, key string) string {
	switch v := raw[key].(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}

// intField accepts JSON numbers and numeric strings. A missing or empty
// value is zero; anything else unparseable reports !ok.
func intField(raw map[string]any, key string) (int, bool) {
	switch v := raw[key].(type) {
	case nil:
		return 0, true
	case float64:
		return int(math.Round(v)), true
	case int:
		return v, true
	case string:
		s := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(v), "+"))
		if s == "" {
			return 0, true
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

// Fields formats the validation error fields for wire responses.
func (e *ValidationError) Fields() []string {
	out := make([]string, 0, len(e.Missing)+len(e.Invalid))
	for _, f := range e.Missing {
		out = append(out, fmt.Sprintf("%s is required", f))
	}
	for _, f := range e.Invalid {
		out = append(out, fmt.Sprintf("%s is malformed", f))
	}
	return out
}
