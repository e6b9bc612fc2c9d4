package main

import (
	"bufio"
	"bytes"
	"encoding/base64"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBlue   = "\033[34m"
	colorPurple = "\033[35m"
	colorCyan   = "\033[36m"
)

type TestClient struct {
	baseURL string
	token   string
	profile map[string]any
	client  *http.Client
}

func NewTestClient(baseURL, token string, profile map[string]any) *TestClient {
	return &TestClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		profile: profile,
		client: &http.Client{
			Timeout: 5 * time.Minute,
		},
	}
}

var defaultProfile = map[string]any{
	"companyName":        "Acme Signs",
	"whatYouSell":        "custom signage",
	"serviceDescription": "We design, fabricate and install storefront signage for independent shops and restaurants.",
	"serviceArea":        "Austin, TX",
	"yearsInBusiness":    12,
	"projectsCompleted":  400,
	"guaranteeType":      "On-time install or your deposit back",
	"toneOfVoice":        "friendly and direct",
}

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "Base URL of the agent")
	testType := flag.String("test", "all", "Test type: all, health, agent-card, ads-status, generate, stream, public-stream, a2a")
	token := flag.String("token", os.Getenv("API_TOKEN"), "API token for protected endpoints")
	profilePath := flag.String("profile", "", "Path to an onboarding profile JSON file (defaults to a sample profile)")
	flag.Parse()

	profile := defaultProfile
	if *profilePath != "" {
		data, err := os.ReadFile(*profilePath)
		if err != nil {
			printError(fmt.Sprintf("Failed to read profile: %v", err))
			os.Exit(1)
		}
		if err := json.Unmarshal(data, &profile); err != nil {
			printError(fmt.Sprintf("Profile is not valid JSON: %v", err))
			os.Exit(1)
		}
	}

	client := NewTestClient(*baseURL, *token, profile)

	printHeader("Strategy Agent - Test Suite")
	fmt.Printf("%sBase URL: %s%s\n\n", colorCyan, *baseURL, colorReset)

	tests := map[string]func() bool{
		"health":        client.testHealthCheck,
		"agent-card":    client.testAgentCard,
		"ads-status":    client.testAdsStatus,
		"generate":      client.testGenerate,
		"stream":        func() bool { return client.testStream("/api/strategy/generate/stream", true) },
		"public-stream": func() bool { return client.testStream("/api/public/strategy/stream", false) },
		"a2a":           client.testA2A,
	}

	if *testType == "all" {
		client.runAllTests()
		return
	}
	fn, ok := tests[*testType]
	if !ok {
		printError(fmt.Sprintf("Unknown test type: %s", *testType))
		fmt.Println("\nAvailable tests: all, health, agent-card, ads-status, generate, stream, public-stream, a2a")
		os.Exit(1)
	}
	if !fn() {
		os.Exit(1)
	}
}

func (tc *TestClient) runAllTests() {
	tests := []struct {
		name string
		fn   func() bool
	}{
		{"Health Check", tc.testHealthCheck},
		{"Agent Card", tc.testAgentCard},
		{"Ads Status", tc.testAdsStatus},
		{"Streaming Generation", func() bool { return tc.testStream("/api/strategy/generate/stream", true) }},
		{"A2A Generation", tc.testA2A},
	}

	passed := 0
	failed := 0

	for _, test := range tests {
		if test.fn() {
			passed++
		} else {
			failed++
		}
		fmt.Println()
	}

	printHeader("Test Summary")
	fmt.Printf("%sPassed: %d%s\n", colorGreen, passed, colorReset)
	fmt.Printf("%sFailed: %d%s\n", colorRed, failed, colorReset)
	fmt.Printf("Total: %d\n", passed+failed)

	if failed > 0 {
		os.Exit(1)
	}
}

func (tc *TestClient) newRequest(method, path string, body io.Reader, auth bool) (*http.Request, error) {
	req, err := http.NewRequest(method, tc.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth && tc.token != "" {
		req.Header.Set("Authorization", "Bearer "+tc.token)
	}
	return req, nil
}

func (tc *TestClient) get(path string, auth bool) (int, []byte, error) {
	req, err := tc.newRequest(http.MethodGet, path, nil, auth)
	if err != nil {
		return 0, nil, err
	}
	resp, err := tc.client.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	return resp.StatusCode, body, err
}

func (tc *TestClient) testHealthCheck() bool {
	printTestHeader("Testing Health Check Endpoint")
	fmt.Printf("GET %s/health\n", tc.baseURL)

	status, body, err := tc.get("/health", false)
	if err != nil {
		printError(fmt.Sprintf("Request failed: %v", err))
		return false
	}
	if status != http.StatusOK {
		printError(fmt.Sprintf("Expected status 200, got %d", status))
		return false
	}
	if string(body) != "OK" {
		printError(fmt.Sprintf("Expected body 'OK', got '%s'", string(body)))
		return false
	}

	printSuccess("Health check passed")
	return true
}

func (tc *TestClient) testAgentCard() bool {
	printTestHeader("Testing Agent Card Endpoint")
	fmt.Printf("GET %s/.well-known/agent.json\n", tc.baseURL)

	status, body, err := tc.get("/.well-known/agent.json", false)
	if err != nil {
		printError(fmt.Sprintf("Request failed: %v", err))
		return false
	}
	if status != http.StatusOK {
		printError(fmt.Sprintf("Expected status 200, got %d", status))
		fmt.Printf("Response: %s\n", string(body))
		return false
	}

	var agentCard map[string]any
	if err := json.Unmarshal(body, &agentCard); err != nil {
		printError(fmt.Sprintf("Invalid JSON response: %v", err))
		return false
	}

	requiredFields := []string{"name", "description", "url", "version", "capabilities", "skills"}
	for _, field := range requiredFields {
		if _, ok := agentCard[field]; !ok {
			printError(fmt.Sprintf("Missing required field: %s", field))
			return false
		}
	}

	printSuccess("Agent card is valid")
	printJSON(body)
	return true
}

func (tc *TestClient) testAdsStatus() bool {
	printTestHeader("Testing Ads Status Endpoint")
	fmt.Printf("GET %s/api/strategy/ads-status\n", tc.baseURL)

	status, body, err := tc.get("/api/strategy/ads-status", true)
	if err != nil {
		printError(fmt.Sprintf("Request failed: %v", err))
		return false
	}
	if status != http.StatusOK {
		printError(fmt.Sprintf("Expected status 200, got %d", status))
		fmt.Printf("Response: %s\n", string(body))
		return false
	}

	var resp struct {
		Available bool   `json:"available"`
		Message   string `json:"message"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		printError(fmt.Sprintf("Invalid JSON response: %v", err))
		return false
	}
	if resp.Available {
		printSuccess("Live competitor ads available")
	} else {
		fmt.Printf("%s! Live competitor ads unavailable: %s%s\n", colorYellow, resp.Message, colorReset)
	}
	return true
}

func (tc *TestClient) testGenerate() bool {
	printTestHeader("Testing Synchronous Generation")
	fmt.Printf("POST %s/api/strategy/generate\n", tc.baseURL)

	payload, _ := json.Marshal(map[string]any{"onboardingData": tc.profile})
	req, err := tc.newRequest(http.MethodPost, "/api/strategy/generate", bytes.NewReader(payload), true)
	if err != nil {
		printError(fmt.Sprintf("Failed to build request: %v", err))
		return false
	}

	start := time.Now()
	resp, err := tc.client.Do(req)
	if err != nil {
		printError(fmt.Sprintf("Request failed: %v", err))
		return false
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusCreated {
		printError(fmt.Sprintf("Expected status 201, got %d", resp.StatusCode))
		printJSON(body)
		return false
	}

	printSuccess(fmt.Sprintf("Strategy generated in %s", time.Since(start).Round(time.Second)))
	return tc.printResultSummary(body, "result")
}

func (tc *TestClient) testStream(path string, auth bool) bool {
	printTestHeader("Testing Streaming Generation")

	payload, _ := json.Marshal(map[string]any{"onboardingData": tc.profile})
	fullPath := path + "?data=" + base64.URLEncoding.EncodeToString(payload)
	fmt.Printf("GET %s%s?data=...\n", tc.baseURL, path)

	req, err := tc.newRequest(http.MethodGet, fullPath, nil, auth)
	if err != nil {
		printError(fmt.Sprintf("Failed to build request: %v", err))
		return false
	}
	req.Header.Set("Accept", "text/event-stream")

	resp, err := tc.client.Do(req)
	if err != nil {
		printError(fmt.Sprintf("Request failed: %v", err))
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		printError(fmt.Sprintf("Expected status 200, got %d", resp.StatusCode))
		printJSON(body)
		return false
	}

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 8*1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "data: ") {
			continue
		}
		data := []byte(strings.TrimPrefix(line, "data: "))

		var ev struct {
			Type     string          `json:"type"`
			Step     int             `json:"step"`
			Progress int             `json:"progress"`
			Message  string          `json:"message"`
			Data     json.RawMessage `json:"data"`
			Error    string          `json:"error"`
		}
		if err := json.Unmarshal(data, &ev); err != nil {
			printError(fmt.Sprintf("Malformed event: %v", err))
			return false
		}

		switch ev.Type {
		case "progress":
			fmt.Printf("%s[%3d%%]%s step %d: %s\n", colorCyan, ev.Progress, colorReset, ev.Step, ev.Message)
		case "complete":
			printSuccess("Stream completed")
			return tc.printResultSummary(ev.Data, "result")
		case "error":
			printError(fmt.Sprintf("Stream reported error: %s", ev.Error))
			return false
		}
	}
	if err := scanner.Err(); err != nil {
		printError(fmt.Sprintf("Stream read failed: %v", err))
		return false
	}

	printError("Stream ended without a terminal event")
	return false
}

func (tc *TestClient) testA2A() bool {
	printTestHeader("Testing A2A Strategy Generation")

	url := fmt.Sprintf("%s/a2a/strategy", tc.baseURL)
	fmt.Printf("POST %s\n", url)

	request := map[string]any{
		"jsonrpc": "2.0",
		"id":      fmt.Sprintf("test-%d", time.Now().Unix()),
		"method":  "message/send",
		"params": map[string]any{
			"message": map[string]any{
				"kind": "message",
				"role": "user",
				"parts": []map[string]any{
					{"kind": "data", "data": map[string]any{"onboardingData": tc.profile}},
				},
			},
			"configuration": map[string]any{
				"blocking":            true,
				"acceptedOutputModes": []string{"text", "data"},
			},
		},
	}

	jsonData, _ := json.MarshalIndent(request, "", "  ")
	fmt.Printf("%sRequest:%s\n", colorYellow, colorReset)
	fmt.Println(string(jsonData))
	fmt.Println()

	resp, err := tc.client.Post(url, "application/json", bytes.NewBuffer(jsonData))
	if err != nil {
		printError(fmt.Sprintf("Request failed: %v", err))
		return false
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		printError(fmt.Sprintf("Expected status 200, got %d", resp.StatusCode))
		fmt.Printf("Response: %s\n", string(body))
		return false
	}

	var response map[string]any
	if err := json.Unmarshal(body, &response); err != nil {
		printError(fmt.Sprintf("Invalid JSON response: %v", err))
		return false
	}

	if errObj, ok := response["error"]; ok {
		printError("Request returned an error")
		errJSON, _ := json.MarshalIndent(errObj, "", "  ")
		fmt.Println(string(errJSON))
		return false
	}

	result, ok := response["result"].(map[string]any)
	if !ok {
		printError("Invalid result format")
		return false
	}
	status, ok := result["status"].(map[string]any)
	if !ok {
		printError("Invalid status format")
		return false
	}

	state, _ := status["state"].(string)
	if state != "completed" {
		printError(fmt.Sprintf("Expected state 'completed', got '%s'", state))
		return false
	}

	printSuccess("Strategy generation completed successfully")

	if msg, ok := status["message"].(map[string]any); ok {
		if parts, ok := msg["parts"].([]any); ok {
			fmt.Printf("\n%sStrategy Summary:%s\n", colorGreen, colorReset)
			fmt.Println(strings.Repeat("=", 80))
			for _, part := range parts {
				if p, ok := part.(map[string]any); ok {
					if text, ok := p["text"].(string); ok {
						fmt.Println(text)
					}
				}
			}
			fmt.Println(strings.Repeat("=", 80))
		}
	}
	return true
}

// printResultSummary checks the generated result under key and prints the
// headline numbers.
func (tc *TestClient) printResultSummary(body []byte, key string) bool {
	var wrapper map[string]json.RawMessage
	if err := json.Unmarshal(body, &wrapper); err != nil {
		printError(fmt.Sprintf("Invalid JSON response: %v", err))
		return false
	}

	var result struct {
		ID          string `json:"id"`
		RealAdsData struct {
			Available         bool `json:"available"`
			UniqueCompetitors int  `json:"uniqueCompetitors"`
		} `json:"realAdsData"`
		AdCampaign struct {
			AdVariants []struct {
				Name     string `json:"name"`
				Headline string `json:"headline"`
			} `json:"adVariants"`
		} `json:"adCampaign"`
		LandingPage struct {
			PageTitle string `json:"pageTitle"`
		} `json:"landingPage"`
		GenerationDurationSeconds float64 `json:"generationDurationSeconds"`
	}
	if err := json.Unmarshal(wrapper[key], &result); err != nil {
		printError(fmt.Sprintf("Result has unexpected shape: %v", err))
		return false
	}

	fmt.Printf("\n%sResult:%s\n", colorPurple, colorReset)
	if result.ID != "" {
		fmt.Printf("  id: %s\n", result.ID)
	}
	fmt.Printf("  live ads: %v (%d competitors)\n", result.RealAdsData.Available, result.RealAdsData.UniqueCompetitors)
	fmt.Printf("  landing page: %s\n", result.LandingPage.PageTitle)
	fmt.Printf("  duration: %.1fs\n", result.GenerationDurationSeconds)
	for _, v := range result.AdCampaign.AdVariants {
		fmt.Printf("  - %s: %s\n", v.Name, v.Headline)
	}

	if len(result.AdCampaign.AdVariants) == 0 {
		printError("Result has no ad variants")
		return false
	}
	return true
}

func printHeader(text string) {
	fmt.Printf("\n%s%s%s\n", colorBlue, strings.Repeat("=", len(text)+4), colorReset)
	fmt.Printf("%s= %s =%s\n", colorBlue, text, colorReset)
	fmt.Printf("%s%s%s\n\n", colorBlue, strings.Repeat("=", len(text)+4), colorReset)
}

func printTestHeader(text string) {
	fmt.Printf("%s[TEST] %s%s\n", colorCyan, text, colorReset)
	fmt.Println(strings.Repeat("-", 80))
}

func printSuccess(text string) {
	fmt.Printf("%s✓ %s%s\n", colorGreen, text, colorReset)
}

func printError(text string) {
	fmt.Printf("%s✗ %s%s\n", colorRed, text, colorReset)
}

func printJSON(data []byte) {
	var prettyJSON bytes.Buffer
	if err := json.Indent(&prettyJSON, data, "", "  "); err == nil {
		fmt.Printf("\n%sResponse:%s\n%s\n", colorYellow, colorReset, prettyJSON.String())
	}
}
