// Package agent serves the A2A agent card.
package agent

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
)

//go:embed agent.json
var cardTemplate []byte

const urlPlaceholder = "{{BASE_URL}}"

// Card is the subset of the agent card the server inspects.
type Card struct {
	Name    string `json:"name"`
	URL     string `json:"url"`
	Version string `json:"version"`
	Skills  []struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"skills"`
}

// LoadAgentCard renders the embedded card with baseURL substituted and
// checks that the result is valid JSON.
func LoadAgentCard(baseURL string) ([]byte, error) {
	data := []byte(strings.ReplaceAll(string(cardTemplate), urlPlaceholder, strings.TrimRight(baseURL, "/")))

	var card Card
	if err := json.Unmarshal(data, &card); err != nil {
		return nil, fmt.Errorf("invalid agent card: %w", err)
	}
	if card.Name == "" {
		return nil, fmt.Errorf("invalid agent card: missing name")
	}
	return data, nil
}
