package api

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var errEmptyPayload = errors.New("missing data parameter")

// decodeStreamPayload turns the base64 "data" query value into the raw
// onboarding map. Both alphabets are accepted, with or without padding.
func decodeStreamPayload(encoded string) (map[string]any, error) {
	encoded = strings.TrimSpace(encoded)
	if encoded == "" {
		return nil, errEmptyPayload
	}

	var (
		decoded []byte
		err     error
	)
	for _, enc := range []*base64.Encoding{
		base64.StdEncoding,
		base64.RawStdEncoding,
		base64.URLEncoding,
		base64.RawURLEncoding,
	} {
		if decoded, err = enc.DecodeString(encoded); err == nil {
			break
		}
	}
	if err != nil {
		return nil, fmt.Errorf("data is not valid base64: %w", err)
	}

	var body map[string]any
	if err := json.Unmarshal(decoded, &body); err != nil {
		return nil, fmt.Errorf("data is not a JSON object: %w", err)
	}
	return onboardingData(body), nil
}

// onboardingData unwraps {"onboardingData": {...}}; anything else is taken
// to be the profile itself.
func onboardingData(body map[string]any) map[string]any {
	if inner, ok := body["onboardingData"].(map[string]any); ok {
		return inner
	}
	return body
}
