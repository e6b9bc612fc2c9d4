package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var codeBlockPattern = regexp.MustCompile("(?s)```(\\w*)\\s*\\n(.+?)\\n```")

// ErrNoJSON is returned when a model reply holds no parseable JSON value.
var ErrNoJSON = errors.New("no valid JSON value found in response")

// ExtractJSON pulls a JSON object or array out of a model reply. Fenced
// ```json blocks win over raw JSON embedded in prose.
func ExtractJSON(response string) (string, error) {
	trimmed := strings.TrimSpace(response)
	if isValidJSON(trimmed) && (strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[")) {
		return trimmed, nil
	}

	for _, match := range codeBlockPattern.FindAllStringSubmatch(response, -1) {
		lang := strings.ToLower(match[1])
		content := strings.TrimSpace(match[2])
		if lang != "" && lang != "json" {
			continue
		}
		if (strings.HasPrefix(content, "{") || strings.HasPrefix(content, "[")) && isValidJSON(content) {
			return content, nil
		}
	}

	if s, ok := extractRawJSON(response); ok {
		return s, nil
	}
	return "", ErrNoJSON
}

func extractRawJSON(response string) (string, bool) {
	startObj := strings.Index(response, "{")
	startArr := strings.Index(response, "[")

	start := -1
	closeChar := byte('}')
	switch {
	case startObj >= 0 && (startArr < 0 || startObj < startArr):
		start = startObj
	case startArr >= 0:
		start = startArr
		closeChar = ']'
	}
	if start < 0 {
		return "", false
	}

	s := matchBracket(response[start:], closeChar)
	if s != "" && isValidJSON(s) {
		return s, true
	}
	return "", false
}

func matchBracket(s string, closeChar byte) string {
	openChar := s[0]
	depth := 0
	inString := false
	escaped := false

	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case escaped:
			escaped = false
		case c == '\\' && inString:
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
		case c == openChar:
			depth++
		case c == closeChar:
			depth--
			if depth == 0 {
				return s[:i+1]
			}
		}
	}
	return ""
}

func isValidJSON(s string) bool {
	var js json.RawMessage
	return json.Unmarshal([]byte(s), &js) == nil
}

// Decode unmarshals a generated JSON value into T.
func Decode[T any](raw json.RawMessage) (T, error) {
	var out T
	if len(raw) == 0 {
		return out, ErrNoJSON
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("failed to decode generated JSON: %w", err)
	}
	return out, nil
}
