package a2a

import (
	"encoding/json"
	"strings"
	"unicode"

	"github.com/BerylCAtieno/strategy-agent/internal/llm"
)

// profileKeys are the onboarding fields a chat message may carry.
var profileKeys = []string{
	"companyName", "whatYouSell", "serviceDescription", "priceRange",
	"yearsInBusiness", "projectsCompleted", "serviceArea", "guaranteeType",
	"warrantyDetails", "uniqueSellingPoint", "decisionTime", "primaryFear",
	"marketingBudget", "adBudget", "toneOfVoice", "callToAction",
}

var keyAliases = map[string]string{
	"company":      "companyName",
	"business":     "companyName",
	"businessname": "companyName",
	"product":      "whatYouSell",
	"products":     "whatYouSell",
	"services":     "whatYouSell",
	"offering":     "whatYouSell",
	"description":  "serviceDescription",
	"area":         "serviceArea",
	"location":     "serviceArea",
	"guarantee":    "guaranteeType",
	"warranty":     "warrantyDetails",
	"usp":          "uniqueSellingPoint",
	"budget":       "marketingBudget",
	"tone":         "toneOfVoice",
	"cta":          "callToAction",
}

var normalizedKeys = func() map[string]string {
	m := make(map[string]string, len(profileKeys)+len(keyAliases))
	for _, k := range profileKeys {
		m[normalizeKey(k)] = k
	}
	for alias, k := range keyAliases {
		m[alias] = k
	}
	return m
}()

func normalizeKey(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// extractOnboardingData collects profile fields from every part of msg.
// Later parts override earlier ones. Returns nil when nothing matched.
func extractOnboardingData(msg A2AMessage) map[string]any {
	out := make(map[string]any)

	for _, part := range msg.Parts {
		switch part.Kind {
		case "text":
			if text, ok := part.Text.(string); ok {
				merge(out, parseText(text))
			}
		case "data":
			merge(out, parseData(part.Data))
		}
	}

	if len(out) == 0 {
		return nil
	}
	return out
}

func merge(dst, src map[string]any) {
	for k, v := range src {
		dst[k] = v
	}
}

// parseData handles a profile object, a wrapped {"onboardingData": ...}
// object, or a conversation history array whose most recent parseable text
// item wins.
func parseData(data any) map[string]any {
	switch v := data.(type) {
	case map[string]any:
		if inner, ok := v["onboardingData"].(map[string]any); ok {
			return pickProfile(inner)
		}
		if text, ok := v["text"].(string); ok {
			return parseText(text)
		}
		return pickProfile(v)
	case []any:
		for i := len(v) - 1; i >= 0; i-- {
			if fields := parseData(v[i]); len(fields) > 0 {
				return fields
			}
		}
	case string:
		return parseText(v)
	}
	return nil
}

// parseText accepts JSON (raw or fenced) or "Field: value" lines.
func parseText(text string) map[string]any {
	text = cleanText(text)
	if text == "" {
		return nil
	}

	if raw, err := llm.ExtractJSON(text); err == nil {
		var obj map[string]any
		if json.Unmarshal([]byte(raw), &obj) == nil {
			return parseData(obj)
		}
	}
	return parseKeyValues(text)
}

func parseKeyValues(text string) map[string]any {
	out := make(map[string]any)
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimLeft(strings.TrimSpace(line), "-*• ")
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		field, known := normalizedKeys[normalizeKey(key)]
		value = strings.TrimSpace(value)
		if !known || value == "" {
			continue
		}
		out[field] = value
	}
	return out
}

func pickProfile(obj map[string]any) map[string]any {
	out := make(map[string]any)
	for k, v := range obj {
		if field, ok := normalizedKeys[normalizeKey(k)]; ok {
			out[field] = v
		}
	}
	return out
}

var htmlReplacer = strings.NewReplacer("<p>", "", "</p>", "\n", "<br>", "\n", "<br/>", "\n", "<br />", "\n")

func cleanText(text string) string {
	return strings.TrimSpace(htmlReplacer.Replace(text))
}
