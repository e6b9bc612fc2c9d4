package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BerylCAtieno/strategy-agent/internal/a2a"
	"github.com/BerylCAtieno/strategy-agent/internal/adsearch"
	"github.com/BerylCAtieno/strategy-agent/internal/api"
	"github.com/BerylCAtieno/strategy-agent/internal/collector"
	"github.com/BerylCAtieno/strategy-agent/internal/config"
	"github.com/BerylCAtieno/strategy-agent/internal/llm"
	"github.com/BerylCAtieno/strategy-agent/internal/logger"
	"github.com/BerylCAtieno/strategy-agent/internal/models"
	"github.com/BerylCAtieno/strategy-agent/internal/pipeline"
	"github.com/BerylCAtieno/strategy-agent/internal/stages"
	"github.com/BerylCAtieno/strategy-agent/internal/store"
	"github.com/BerylCAtieno/strategy-agent/internal/telemetry"
)

const serviceName = "strategy-agent"

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Setup(os.Stdout, serviceName, "info").Error("config_load_failed", "error", err)
		os.Exit(1)
	}
	log := logger.Setup(os.Stdout, serviceName, cfg.LogLevel)

	if cfg.Gemini.APIKey == "" {
		log.Error("config_invalid", "error", "GEMINI_API_KEY environment variable is required")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Init(ctx, serviceName)
	if err != nil {
		log.Warn("otel_init_failed", "error", err)
		shutdownTracing = func(context.Context) error { return nil }
	}
	defer shutdownTracing(context.Background())

	results, err := store.Open(ctx, cfg.DatabasePath)
	if err != nil {
		log.Error("store_open_failed", "path", cfg.DatabasePath, "error", err)
		os.Exit(1)
	}
	defer results.Close()

	settings := llm.DefaultSettings()
	settings.Model = cfg.Gemini.Model
	settings.Temperature = float32(cfg.Gemini.Temperature)
	settings.MaxTokens = int32(cfg.Gemini.MaxTokens)
	settings.Timeout = cfg.Gemini.Timeout()

	geminiClient, err := llm.NewGeminiClient(cfg.Gemini.APIKey, settings)
	if err != nil {
		log.Error("gemini_client_failed", "error", err)
		os.Exit(1)
	}
	defer geminiClient.Close()

	ads := adsearch.NewMetaClient(adsearch.MetaConfig{
		AccessToken: cfg.Ads.AccessToken,
		APIVersion:  cfg.Ads.APIVersion,
		BaseURL:     cfg.Ads.BaseURL,
	})
	if ok, reason := ads.Available(ctx); !ok {
		log.Warn("ad_search_unavailable", "reason", reason)
	}

	runner := stages.NewRunner(geminiClient, log)
	orchestrator := pipeline.New(
		collector.New(ads, collector.Config{
			MaxTerms:     cfg.Ads.MaxTerms,
			Country:      cfg.Ads.Country,
			PerTermLimit: cfg.Ads.PerTermLimit,
			Delay:        cfg.Ads.TermDelay(),
		}, log),
		runner,
		log,
	)

	apiHandler := api.NewHandler(api.Deps{
		Pipeline: orchestrator,
		Quick: func(ctx context.Context, raw map[string]any) (*models.QuickResult, error) {
			return pipeline.Quick(ctx, runner, raw)
		},
		Store:  results,
		Ads:    ads,
		Logger: log,
	})
	a2aHandler := a2a.NewA2AHandler(orchestrator, results, cfg.BaseURL, log)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), api.RequestLogging(log))

	// Endpoints
	router.GET("/.well-known/agent.json", a2aHandler.ServeAgentCard)
	router.POST("/a2a/strategy", a2aHandler.HandleStrategy)
	router.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
	apiHandler.Register(router, api.TokenAuth(cfg.APIToken))

	if cfg.APIToken == "" {
		log.Warn("api_auth_disabled", "reason", "API_TOKEN not set")
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("server_started",
			"port", cfg.Port,
			"agent_card", "/.well-known/agent.json",
			"a2a", "/a2a/strategy",
			"model", settings.Model,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server_failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("server_shutting_down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server_shutdown_failed", "error", err)
	}
}
