package a2a

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractOnboardingData(t *testing.T) {
	tests := []struct {
		name string
		msg  A2AMessage
		want map[string]any
	}{
		{
			name: "key value lines",
			msg: A2AMessage{Parts: []MessagePart{TextPart(
				"<p>Company name: Acme Signs</p><p>What you sell: custom signage</p>- Service area: Austin, TX\nnot a field line")}},
			want: map[string]any{
				"companyName": "Acme Signs",
				"whatYouSell": "custom signage",
				"serviceArea": "Austin, TX",
			},
		},
		{
			name: "fenced json text",
			msg: A2AMessage{Parts: []MessagePart{TextPart(
				"Here you go:\n```json\n{\"onboardingData\": {\"companyName\": \"Acme\", \"yearsInBusiness\": 12}}\n```")}},
			want: map[string]any{"companyName": "Acme", "yearsInBusiness": float64(12)},
		},
		{
			name: "data object",
			msg: A2AMessage{Parts: []MessagePart{DataPart(map[string]any{
				"company_name": "Acme", "whatYouSell": "signs", "unrelated": true,
			})}},
			want: map[string]any{"companyName": "Acme", "whatYouSell": "signs"},
		},
		{
			name: "conversation history uses latest parseable item",
			msg: A2AMessage{Parts: []MessagePart{DataPart([]any{
				map[string]any{"kind": "text", "text": "Company: Old Name"},
				map[string]any{"kind": "text", "text": "Company: Acme"},
				map[string]any{"kind": "text", "text": "Generating..."},
			})}},
			want: map[string]any{"companyName": "Acme"},
		},
		{
			name: "later parts override",
			msg: A2AMessage{Parts: []MessagePart{
				TextPart("Company: First\nProduct: signs"),
				DataPart(map[string]any{"companyName": "Second"}),
			}},
			want: map[string]any{"companyName": "Second", "whatYouSell": "signs"},
		},
		{
			name: "nothing recognisable",
			msg:  A2AMessage{Parts: []MessagePart{TextPart("make me a strategy please")}},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractOnboardingData(tt.msg))
		})
	}
}
