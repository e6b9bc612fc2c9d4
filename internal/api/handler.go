// Package api exposes the strategy pipeline over HTTP: a synchronous JSON
// endpoint, SSE streaming endpoints, the quick entry point and stored
// result lookup.
package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BerylCAtieno/strategy-agent/internal/models"
	"github.com/BerylCAtieno/strategy-agent/internal/progress"
	"github.com/BerylCAtieno/strategy-agent/internal/store"
	"github.com/BerylCAtieno/strategy-agent/internal/validator"
)

// Pipeline is the orchestrator as seen by the HTTP layer.
type Pipeline interface {
	Run(ctx context.Context, raw map[string]any, sink progress.Sink) (*models.GenerationResult, error)
}

type QuickFunc func(ctx context.Context, raw map[string]any) (*models.QuickResult, error)

type ResultStore interface {
	Save(ctx context.Context, result *models.GenerationResult) (string, error)
	Get(ctx context.Context, id string) (*models.GenerationResult, error)
	ListRecent(ctx context.Context, limit int) ([]store.Summary, error)
}

// AdsStatus reports whether live competitor ads can be fetched.
type AdsStatus interface {
	Available(ctx context.Context) (bool, string)
}

type Handler struct {
	pipeline Pipeline
	quick    QuickFunc
	store    ResultStore
	ads      AdsStatus
	logger   *slog.Logger
}

type Deps struct {
	Pipeline Pipeline
	Quick    QuickFunc
	Store    ResultStore
	Ads      AdsStatus
	Logger   *slog.Logger
}

func NewHandler(d Deps) *Handler {
	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		pipeline: d.Pipeline,
		quick:    d.Quick,
		store:    d.Store,
		ads:      d.Ads,
		logger:   logger.With("component", "api"),
	}
}

// Register mounts the strategy routes. Everything under /api/strategy sits
// behind auth; the public stream does not and never persists.
func (h *Handler) Register(r gin.IRouter, auth gin.HandlerFunc) {
	strategy := r.Group("/api/strategy")
	if auth != nil {
		strategy.Use(auth)
	}
	strategy.GET("/ads-status", h.AdsStatus)
	strategy.POST("/generate", h.Generate)
	strategy.GET("/generate/stream", h.GenerateStream)
	strategy.POST("/quick", h.Quick)
	strategy.GET("/recent", h.Recent)
	strategy.GET("/:id", h.GetResult)

	r.GET("/api/public/strategy/stream", h.PublicStream)
}

type generateRequest struct {
	OnboardingData map[string]any `json:"onboardingData"`
}

func (h *Handler) AdsStatus(c *gin.Context) {
	available, reason := h.ads.Available(c.Request.Context())
	resp := gin.H{"available": available}
	if reason != "" {
		resp["message"] = reason
	} else if available {
		resp["message"] = "Live competitor ads are available"
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) Generate(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}
	if req.OnboardingData == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid onboarding data", "details": "onboardingData is required"})
		return
	}

	ctx := c.Request.Context()
	result, err := progress.Single(ctx, func(ctx context.Context, sink progress.Sink) (*models.GenerationResult, error) {
		return h.pipeline.Run(ctx, req.OnboardingData, sink)
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	h.persist(ctx, result)
	c.JSON(http.StatusCreated, gin.H{
		"message": "Strategy generated successfully",
		"result":  result,
	})
}

func (h *Handler) GenerateStream(c *gin.Context) {
	h.stream(c, true)
}

func (h *Handler) PublicStream(c *gin.Context) {
	h.stream(c, false)
}

func (h *Handler) stream(c *gin.Context, persist bool) {
	raw, err := decodeStreamPayload(c.Query("data"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid onboarding data", "details": err.Error()})
		return
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)
	c.Writer.Flush()

	ctx := c.Request.Context()
	w := progress.NewSSEWriter(ctx, c.Writer)

	var finalize func(*models.GenerationResult) (string, error)
	if persist {
		finalize = func(result *models.GenerationResult) (string, error) {
			return h.persist(ctx, result), nil
		}
	}

	_, err = progress.Streamed(ctx, w, func(ctx context.Context, sink progress.Sink) (*models.GenerationResult, error) {
		return h.pipeline.Run(ctx, raw, sink)
	}, finalize, h.logger)
	if err != nil {
		h.logger.Warn("stream_generation_failed", "error", err, "persist", persist)
	}
}

func (h *Handler) Quick(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}
	if req.OnboardingData == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid onboarding data", "details": "onboardingData is required"})
		return
	}

	result, err := h.quick(c.Request.Context(), req.OnboardingData)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Quick strategy generated successfully",
		"result":  result,
	})
}

func (h *Handler) GetResult(c *gin.Context) {
	if h.store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Result storage is not configured"})
		return
	}

	result, err := h.store.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.logger.Error("result_lookup_failed", "id", c.Param("id"), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load strategy", "details": err.Error()})
		return
	}
	if result == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Strategy not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": result})
}

func (h *Handler) Recent(c *gin.Context) {
	if h.store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Result storage is not configured"})
		return
	}

	limit, _ := strconv.Atoi(c.Query("limit"))
	items, err := h.store.ListRecent(c.Request.Context(), limit)
	if err != nil {
		h.logger.Error("recent_lookup_failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list strategies", "details": err.Error()})
		return
	}
	if items == nil {
		items = []store.Summary{}
	}
	c.JSON(http.StatusOK, gin.H{"results": items})
}

// persist stores the result and returns its id. A storage failure is
// logged and leaves the result unsaved; the caller still gets the result.
func (h *Handler) persist(ctx context.Context, result *models.GenerationResult) string {
	if h.store == nil || result == nil {
		return ""
	}
	id, err := h.store.Save(ctx, result)
	if err != nil {
		h.logger.Error("result_save_failed", "company", result.Profile.CompanyName, "error", err)
		return ""
	}
	return id
}

func (h *Handler) writeError(c *gin.Context, err error) {
	var verr *validator.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid onboarding data",
			"details": verr.Error(),
			"fields":  verr.Fields(),
		})
		return
	}

	h.logger.Error("generation_failed", "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{
		"error":   "Strategy generation failed",
		"details": err.Error(),
	})
}
