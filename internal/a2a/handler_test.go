package a2a

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BerylCAtieno/strategy-agent/internal/models"
	"github.com/BerylCAtieno/strategy-agent/internal/progress"
	"github.com/BerylCAtieno/strategy-agent/internal/validator"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakePipeline struct {
	raw    map[string]any
	result *models.GenerationResult
	err    error
}

func (f *fakePipeline) Run(ctx context.Context, raw map[string]any, sink progress.Sink) (*models.GenerationResult, error) {
	f.raw = raw
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

type fakeStore struct{ saved int }

func (s *fakeStore) Save(ctx context.Context, r *models.GenerationResult) (string, error) {
	s.saved++
	r.ID = "strat-1"
	return r.ID, nil
}

func sampleResult() *models.GenerationResult {
	return &models.GenerationResult{
		Profile: models.OnboardingProfile{CompanyName: "Acme"},
		CompetitorAnalysis: &models.CompetitorAnalysis{
			MarketOverview: "Fragmented local market.",
			Opportunities:  []string{"Guaranteed install dates"},
		},
		ICP: &models.IdealCustomerProfile{
			Summary:    "Independent retail owners.",
			PainPoints: []string{"Installers miss deadlines"},
		},
		AdCampaign: &models.AdCampaign{AdVariants: []models.AdVariant{
			{ID: "ad-1", Name: "Deadline Fear", Type: "pain", Headline: "Opening day is coming"},
		}},
		LandingPage: &models.LandingPageStructure{
			PageTitle: "Signs installed on time",
			Sections:  models.LandingSections{Hero: &models.PageSection{Headline: "Get noticed from day one"}},
		},
	}
}

func rpcBody(t *testing.T, method string, parts ...MessagePart) []byte {
	t.Helper()
	b, err := json.Marshal(map[string]any{
		"jsonrpc": "2.0",
		"id":      "task-42",
		"method":  method,
		"params": MessageParams{Message: A2AMessage{
			Kind: "message", Role: RoleUser, Parts: parts,
		}},
	})
	require.NoError(t, err)
	return b
}

func serve(h *A2AHandler, body []byte) (*httptest.ResponseRecorder, JSONRPCResponse, TaskResult) {
	r := gin.New()
	r.POST("/a2a/strategy", h.HandleStrategy)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/a2a/strategy", bytes.NewReader(body)))

	var resp JSONRPCResponse
	var task TaskResult
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Result != nil {
		b, _ := json.Marshal(resp.Result)
		_ = json.Unmarshal(b, &task)
	}
	return w, resp, task
}

func TestHandleStrategy_Completed(t *testing.T) {
	p := &fakePipeline{result: sampleResult()}
	st := &fakeStore{}
	h := NewA2AHandler(p, st, "", nil)

	w, resp, task := serve(h, rpcBody(t, "message/send",
		TextPart("Company name: Acme\nWhat you sell: custom signage\nService description: storefront signs")))
	require.Equal(t, http.StatusOK, w.Code)
	require.Nil(t, resp.Error)

	assert.Equal(t, "task-42", task.ID)
	assert.Equal(t, StateCompleted, task.Status.State)
	require.NotNil(t, task.Status.Message.TaskID)
	assert.Equal(t, "task-42", *task.Status.Message.TaskID)
	require.Len(t, task.Artifacts, 2)
	assert.Equal(t, "data", task.Artifacts[1].Parts[0].Kind)

	text := task.Status.Message.Parts[0].Text.(string)
	assert.Contains(t, text, "# Marketing Strategy for: Acme")
	assert.Contains(t, text, "Deadline Fear")
	assert.Contains(t, text, "hero: Get noticed from day one")
	assert.Contains(t, text, "strat-1")

	assert.Equal(t, "custom signage", p.raw["whatYouSell"])
	assert.Equal(t, 1, st.saved)
}

func TestHandleStrategy_NoProfile(t *testing.T) {
	p := &fakePipeline{result: sampleResult()}
	h := NewA2AHandler(p, nil, "", nil)

	_, _, task := serve(h, rpcBody(t, "message/send", TextPart("hello")))
	assert.Equal(t, StateInputRequired, task.Status.State)
	assert.Nil(t, p.raw)
}

func TestHandleStrategy_ValidationAndFailure(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantState string
	}{
		{"validation", &validator.ValidationError{Missing: []string{"serviceDescription"}}, StateInputRequired},
		{"stage failure", errors.New("icp generation failed: boom; regenerate this stage"), StateFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewA2AHandler(&fakePipeline{err: tt.err}, nil, "", nil)
			_, resp, task := serve(h, rpcBody(t, "agent/task", TextPart("Company: Acme")))
			require.Nil(t, resp.Error)
			assert.Equal(t, tt.wantState, task.Status.State)
			assert.Empty(t, task.Artifacts)
		})
	}
}

func TestHandleStrategy_RPCErrors(t *testing.T) {
	h := NewA2AHandler(&fakePipeline{}, nil, "", nil)

	_, resp, _ := serve(h, rpcBody(t, "tasks/cancel", TextPart("x")))
	require.NotNil(t, resp.Error)
	assert.Equal(t, CodeMethodNotFound, resp.Error.Code)

	_, resp, _ = serve(h, []byte(`{"jsonrpc":"1.0","id":"1","method":"message/send"}`))
	require.NotNil(t, resp.Error)
	assert.Equal(t, CodeInvalidRequest, resp.Error.Code)

	_, resp, _ = serve(h, []byte(`not json`))
	require.NotNil(t, resp.Error)
	assert.Equal(t, CodeParseError, resp.Error.Code)
}

func TestHandleStrategy_DirectMessage(t *testing.T) {
	p := &fakePipeline{result: sampleResult()}
	h := NewA2AHandler(p, nil, "", nil)

	body := []byte(`{"message":{"kind":"message","role":"user","parts":[{"kind":"data","data":{"companyName":"Acme"}}]}}`)
	_, resp, task := serve(h, body)
	require.Nil(t, resp.Error)
	assert.Equal(t, "direct-message", task.ID)
	assert.Equal(t, StateCompleted, task.Status.State)
	assert.Equal(t, "Acme", p.raw["companyName"])
}

func TestServeAgentCard(t *testing.T) {
	h := NewA2AHandler(&fakePipeline{}, nil, "", nil)
	r := gin.New()
	r.GET("/.well-known/agent.json", h.ServeAgentCard)

	req := httptest.NewRequest(http.MethodGet, "/.well-known/agent.json", nil)
	req.Host = "agent.example.com"
	req.Header.Set("X-Forwarded-Proto", "https")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"url": "https://agent.example.com/a2a/strategy"`)
}
