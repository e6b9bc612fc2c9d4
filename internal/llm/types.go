// Package llm defines the structured-generation contract used by the
// pipeline stages and its Gemini implementation.
package llm

import (
	"context"
	"encoding/json"
)

type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

func NewSystemMessage(content string) Message {
	return Message{Role: RoleSystem, Content: content}
}

func NewUserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

func NewAssistantMessage(content string) Message {
	return Message{Role: RoleAssistant, Content: content}
}

// Request is one structured-generation call. Name identifies the caller
// (usually the stage) and Shape documents the expected JSON value.
type Request struct {
	Name        string
	Messages    []Message
	Shape       string
	Temperature *float32
	MaxTokens   int32
}

// Generator turns a role-tagged prompt into a JSON value or fails.
// Timeouts and retries are the implementation's concern.
type Generator interface {
	GenerateJSON(ctx context.Context, req Request) (json.RawMessage, error)
}

// Temperature is a convenience for Request.Temperature.
func Temperature(t float32) *float32 {
	return &t
}
