// Package a2a exposes the strategy pipeline as an A2A JSON-RPC agent.
package a2a

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/BerylCAtieno/strategy-agent/internal/agent"
	"github.com/BerylCAtieno/strategy-agent/internal/models"
	"github.com/BerylCAtieno/strategy-agent/internal/progress"
	"github.com/BerylCAtieno/strategy-agent/internal/validator"
)

type Pipeline interface {
	Run(ctx context.Context, raw map[string]any, sink progress.Sink) (*models.GenerationResult, error)
}

type ResultStore interface {
	Save(ctx context.Context, result *models.GenerationResult) (string, error)
}

type A2AHandler struct {
	pipeline Pipeline
	store    ResultStore
	baseURL  string
	logger   *slog.Logger
}

// NewA2AHandler wires the agent. store may be nil, in which case results
// are not persisted. An empty baseURL makes the agent card use the
// request's own scheme and host.
func NewA2AHandler(pipeline Pipeline, store ResultStore, baseURL string, logger *slog.Logger) *A2AHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &A2AHandler{
		pipeline: pipeline,
		store:    store,
		baseURL:  baseURL,
		logger:   logger.With("component", "a2a"),
	}
}

// HandleStrategy processes A2A messages
func (h *A2AHandler) HandleStrategy(c *gin.Context) {
	bodyBytes, err := io.ReadAll(c.Request.Body)
	if err != nil {
		h.logger.Error("read_body_failed", "error", err)
		h.sendErrorResponse(c, "", "Failed to read request body", CodeParseError)
		return
	}

	var rpcReq JSONRPCRequest
	if err := json.Unmarshal(bodyBytes, &rpcReq); err != nil || rpcReq.Method == "" {
		h.logger.Debug("not_jsonrpc_trying_direct_message", "error", err)
		h.handleDirectMessage(c, bodyBytes)
		return
	}

	h.logger.Info("rpc_request", "id", rpcReq.ID, "method", rpcReq.Method)

	if rpcReq.JSONRPC != "2.0" {
		h.sendErrorResponse(c, rpcReq.ID, "Invalid JSON-RPC version", CodeInvalidRequest)
		return
	}

	switch rpcReq.Method {
	case "agent/task", "message/send":
		h.handleTask(c, rpcReq)
	default:
		h.sendErrorResponse(c, rpcReq.ID, fmt.Sprintf("Method not found: %s", rpcReq.Method), CodeMethodNotFound)
	}
}

// handleDirectMessage accepts a bare MessageParams body without the
// JSON-RPC envelope.
func (h *A2AHandler) handleDirectMessage(c *gin.Context, bodyBytes []byte) {
	var msgParams MessageParams
	if err := json.Unmarshal(bodyBytes, &msgParams); err != nil || len(msgParams.Message.Parts) == 0 {
		h.sendErrorResponse(c, "", "Invalid request format", CodeParseError)
		return
	}

	result := h.runTask(c.Request.Context(), "direct-message", msgParams.Message)
	h.sendSuccessResponse(c, "direct-message", result)
}

func (h *A2AHandler) handleTask(c *gin.Context, rpcReq JSONRPCRequest) {
	paramsJSON, err := json.Marshal(rpcReq.Params)
	if err != nil {
		h.sendErrorResponse(c, rpcReq.ID, "Failed to parse parameters", CodeInvalidParams)
		return
	}

	var msgParams MessageParams
	if err := json.Unmarshal(paramsJSON, &msgParams); err != nil {
		h.logger.Warn("invalid_params", "id", rpcReq.ID, "error", err)
		h.sendErrorResponse(c, rpcReq.ID, "Invalid parameters", CodeInvalidParams)
		return
	}

	result := h.runTask(c.Request.Context(), rpcReq.ID, msgParams.Message)
	h.sendSuccessResponse(c, rpcReq.ID, result)
}

func (h *A2AHandler) runTask(ctx context.Context, taskID string, msg A2AMessage) TaskResult {
	raw := extractOnboardingData(msg)
	if raw == nil {
		return h.createErrorTaskResult(taskID, StateInputRequired, missingProfileMessage)
	}

	result, err := progress.Single(ctx, func(ctx context.Context, sink progress.Sink) (*models.GenerationResult, error) {
		return h.pipeline.Run(ctx, raw, sink)
	})
	if err != nil {
		var verr *validator.ValidationError
		if errors.As(err, &verr) {
			return h.createErrorTaskResult(taskID, StateInputRequired,
				fmt.Sprintf("I need a bit more about your business: %s.", verr.Error()))
		}
		h.logger.Error("task_failed", "task_id", taskID, "error", err)
		return h.createErrorTaskResult(taskID, StateFailed,
			fmt.Sprintf("Failed to generate strategy: %v", err))
	}

	if h.store != nil {
		if _, err := h.store.Save(ctx, result); err != nil {
			h.logger.Error("result_save_failed", "task_id", taskID, "error", err)
		}
	}

	h.logger.Info("task_completed", "task_id", taskID, "result_id", result.ID,
		"duration_seconds", result.GenerationDurationSeconds)
	return h.createSuccessTaskResult(taskID, msg.ContextID, result)
}

const missingProfileMessage = "Please send your business profile. Either JSON or lines like " +
	"\"Company name: ...\", \"What you sell: ...\" and \"Service description: ...\" work."

// ServeAgentCard serves the agent card using Gin
func (h *A2AHandler) ServeAgentCard(c *gin.Context) {
	base := h.baseURL
	if base == "" {
		scheme := "http"
		if c.Request.TLS != nil {
			scheme = "https"
		}
		if proto := c.GetHeader("X-Forwarded-Proto"); proto != "" {
			scheme = proto
		}
		base = scheme + "://" + c.Request.Host
	}

	data, err := agent.LoadAgentCard(base)
	if err != nil {
		h.logger.Error("agent_card_unavailable", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Agent card not available"})
		return
	}
	c.Data(http.StatusOK, "application/json", data)
}

func (h *A2AHandler) createSuccessTaskResult(taskID, contextID string, result *models.GenerationResult) TaskResult {
	responseText := formatStrategyResponse(result)

	return TaskResult{
		ID:        taskID,
		ContextID: contextID,
		Kind:      "task",
		Status: TaskStatus{
			State:     StateCompleted,
			Timestamp: Timestamp(),
			Message: &A2AMessage{
				Kind:      "message",
				Role:      RoleAgent,
				MessageID: uuid.New().String(),
				TaskID:    &taskID,
				Parts: []MessagePart{
					TextPart(responseText),
				},
			},
		},
		Artifacts: []Artifact{
			{
				ArtifactID: uuid.New().String(),
				Name:       "Marketing Strategy Summary",
				Parts:      []MessagePart{TextPart(responseText)},
			},
			{
				ArtifactID: uuid.New().String(),
				Name:       "Marketing Strategy Data",
				Parts:      []MessagePart{DataPart(result)},
			},
		},
	}
}

func (h *A2AHandler) createErrorTaskResult(taskID, state, errorMsg string) TaskResult {
	return TaskResult{
		ID:   taskID,
		Kind: "task",
		Status: TaskStatus{
			State:     state,
			Timestamp: Timestamp(),
			Message: &A2AMessage{
				Kind:      "message",
				Role:      RoleAgent,
				MessageID: uuid.New().String(),
				TaskID:    &taskID,
				Parts: []MessagePart{
					TextPart(errorMsg),
				},
			},
		},
	}
}

func (h *A2AHandler) sendSuccessResponse(c *gin.Context, id string, result any) {
	c.JSON(http.StatusOK, JSONRPCResponse{
		JSONRPC: "2.0",
		ID:      id,
		Result:  result,
	})
}

// JSON-RPC errors are sent with 200 OK
func (h *A2AHandler) sendErrorResponse(c *gin.Context, id string, message string, code int) {
	h.logger.Warn("rpc_error", "id", id, "code", code, "message", message)
	c.JSON(http.StatusOK, JSONRPCResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &JSONRPCError{
			Code:    code,
			Message: message,
		},
	})
}
