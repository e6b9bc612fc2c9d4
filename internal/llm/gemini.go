package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

type Settings struct {
	Model       string
	Temperature float32
	TopP        float32
	MaxTokens   int32
	Timeout     time.Duration
}

func DefaultSettings() Settings {
	return Settings{
		Model:       "gemini-2.5-flash-lite",
		Temperature: 0.7,
		TopP:        0.95,
		MaxTokens:   8192,
		Timeout:     90 * time.Second,
	}
}

type GeminiClient struct {
	client   *genai.Client
	settings Settings
}

func NewGeminiClient(apiKey string, settings Settings) (*GeminiClient, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{
		client:   client,
		settings: settings,
	}, nil
}

func (g *GeminiClient) Close() {
	g.client.Close()
}

// GenerateJSON sends the conversation to Gemini in JSON response mode and
// returns the extracted JSON value. A fresh model handle is built per call,
// so concurrent calls never share tuning state.
func (g *GeminiClient) GenerateJSON(ctx context.Context, req Request) (json.RawMessage, error) {
	if g.settings.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.settings.Timeout)
		defer cancel()
	}

	system, history, last, err := splitMessages(req.Messages, req.Shape)
	if err != nil {
		return nil, err
	}

	model := g.client.GenerativeModel(g.settings.Model)
	model.SetTemperature(g.settings.Temperature)
	if req.Temperature != nil {
		model.SetTemperature(*req.Temperature)
	}
	model.SetTopP(g.settings.TopP)
	model.SetMaxOutputTokens(g.settings.MaxTokens)
	if req.MaxTokens > 0 {
		model.SetMaxOutputTokens(req.MaxTokens)
	}
	model.ResponseMIMEType = "application/json"
	model.SystemInstruction = system

	chat := model.StartChat()
	chat.History = history

	resp, err := chat.SendMessage(ctx, last...)
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	text := responseText(resp)
	if text == "" {
		return nil, fmt.Errorf("no content generated")
	}

	jsonStr, err := ExtractJSON(text)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(jsonStr), nil
}

// splitMessages maps role-tagged messages onto Gemini's system instruction,
// chat history and the final user turn. The shape hint is appended to the
// system instruction.
func splitMessages(msgs []Message, shape string) (*genai.Content, []*genai.Content, []genai.Part, error) {
	var systemParts []string
	var turns []Message
	for _, m := range msgs {
		if m.Role == RoleSystem {
			systemParts = append(systemParts, m.Content)
			continue
		}
		turns = append(turns, m)
	}
	if shape != "" {
		systemParts = append(systemParts, "Respond with a single JSON value matching this shape:\n"+shape)
	}
	if len(turns) == 0 || turns[len(turns)-1].Role != RoleUser {
		return nil, nil, nil, errors.New("conversation must end with a user message")
	}

	var system *genai.Content
	if len(systemParts) > 0 {
		system = &genai.Content{Parts: []genai.Part{genai.Text(strings.Join(systemParts, "\n\n"))}}
	}

	history := make([]*genai.Content, 0, len(turns)-1)
	for _, m := range turns[:len(turns)-1] {
		role := "user"
		if m.Role == RoleAssistant {
			role = "model"
		}
		history = append(history, &genai.Content{Role: role, Parts: []genai.Part{genai.Text(m.Content)}})
	}

	return system, history, []genai.Part{genai.Text(turns[len(turns)-1].Content)}, nil
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			sb.WriteString(string(t))
		}
	}
	return strings.TrimSpace(sb.String())
}
