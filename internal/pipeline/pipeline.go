// Package pipeline sequences validation, competitor ad collection and the
// four generation stages into one GenerationResult.
package pipeline

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/BerylCAtieno/strategy-agent/internal/models"
	"github.com/BerylCAtieno/strategy-agent/internal/progress"
	"github.com/BerylCAtieno/strategy-agent/internal/validator"
)

const tracerName = "github.com/BerylCAtieno/strategy-agent/internal/pipeline"

type State string

const (
	StateValidating            State = "VALIDATING"
	StateCollectingAds         State = "COLLECTING_ADS"
	StateAnalyzingCompetition  State = "ANALYZING_COMPETITION"
	StateBuildingICP           State = "BUILDING_ICP"
	StateGeneratingAds         State = "GENERATING_ADS"
	StateGeneratingLandingPage State = "GENERATING_LANDING_PAGE"
	StateDone                  State = "DONE"
	StateFailed                State = "FAILED"
)

// AdCollector gathers competitor ads. It must not fail; degraded results
// are reported through the bundle.
type AdCollector interface {
	Collect(ctx context.Context, terms []string, ownCompany string, sink progress.Sink) models.CompetitorAdBundle
}

// StageRunner produces the four artifacts in dependency order.
type StageRunner interface {
	CompetitorAnalysis(ctx context.Context, profile models.OnboardingProfile, ads models.CompetitorAdBundle, sink progress.Sink) (*models.CompetitorAnalysis, error)
	IdealCustomerProfile(ctx context.Context, profile models.OnboardingProfile, analysis *models.CompetitorAnalysis, sink progress.Sink) (*models.IdealCustomerProfile, error)
	AdCampaign(ctx context.Context, profile models.OnboardingProfile, icp *models.IdealCustomerProfile, analysis *models.CompetitorAnalysis, sink progress.Sink) (*models.AdCampaign, error)
	LandingPage(ctx context.Context, profile models.OnboardingProfile, icp *models.IdealCustomerProfile, campaign *models.AdCampaign, sink progress.Sink) (*models.LandingPageStructure, error)
}

type Option func(*Orchestrator)

// WithStateObserver registers a callback invoked on every state entry.
func WithStateObserver(fn func(State)) Option {
	return func(o *Orchestrator) { o.observe = fn }
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) { o.now = now }
}

// Orchestrator holds only its collaborators; every Run owns its own state,
// so one Orchestrator serves concurrent requests.
type Orchestrator struct {
	collector AdCollector
	stages    StageRunner
	logger    *slog.Logger
	tracer    trace.Tracer
	observe   func(State)
	now       func() time.Time
}

func New(collector AdCollector, stages StageRunner, logger *slog.Logger, opts ...Option) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	o := &Orchestrator{
		collector: collector,
		stages:    stages,
		logger:    logger.With("component", "pipeline"),
		tracer:    otel.Tracer(tracerName),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// run is the per-invocation state machine.
type run struct {
	o     *Orchestrator
	ctx   context.Context
	state State
}

func (r *run) enter(s State) error {
	if err := r.ctx.Err(); err != nil {
		return err
	}
	r.state = s
	if r.o.observe != nil {
		r.o.observe(s)
	}
	trace.SpanFromContext(r.ctx).AddEvent("state", trace.WithAttributes(attribute.String("state", string(s))))
	return nil
}

// Run executes the whole pipeline for one raw onboarding payload. Stage
// errors are returned untouched and no later stage runs.
func (o *Orchestrator) Run(ctx context.Context, raw map[string]any, sink progress.Sink) (result *models.GenerationResult, err error) {
	if sink == nil {
		sink = progress.Discard
	}
	ctx, span := o.tracer.Start(ctx, "pipeline.Run")
	defer span.End()

	r := &run{o: o, ctx: ctx}
	defer func() {
		if err != nil {
			failed := r.state
			r.state = StateFailed
			if o.observe != nil {
				o.observe(StateFailed)
			}
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			o.logger.Error("pipeline_failed", "state", string(failed), "error", err)
		}
	}()

	if err := r.enter(StateValidating); err != nil {
		return nil, err
	}
	start := o.now()
	sink.Report("Validating your business profile...")
	validated, err := validator.Validate(raw)
	if err != nil {
		return nil, err
	}
	profile := validated.Profile
	span.SetAttributes(attribute.String("company", profile.CompanyName))

	if err := r.enter(StateCollectingAds); err != nil {
		return nil, err
	}
	sink.Report("Searching for live competitor ads...")
	ads := o.collector.Collect(ctx, validated.SearchTerms, profile.CompanyName, sink)
	if !ads.Available {
		o.logger.Warn("pipeline_degraded_mode", "reason", ads.Reason)
	}

	if err := r.enter(StateAnalyzingCompetition); err != nil {
		return nil, err
	}
	analysis, err := o.stages.CompetitorAnalysis(ctx, profile, ads, sink)
	if err != nil {
		return nil, err
	}

	if err := r.enter(StateBuildingICP); err != nil {
		return nil, err
	}
	icp, err := o.stages.IdealCustomerProfile(ctx, profile, analysis, sink)
	if err != nil {
		return nil, err
	}

	if err := r.enter(StateGeneratingAds); err != nil {
		return nil, err
	}
	campaign, err := o.stages.AdCampaign(ctx, profile, icp, analysis, sink)
	if err != nil {
		return nil, err
	}

	if err := r.enter(StateGeneratingLandingPage); err != nil {
		return nil, err
	}
	landing, err := o.stages.LandingPage(ctx, profile, icp, campaign, sink)
	if err != nil {
		return nil, err
	}

	if err := r.enter(StateDone); err != nil {
		return nil, err
	}
	finished := o.now()
	elapsed := finished.Sub(start).Seconds()

	terms := ads.SearchTermsUsed
	if terms == nil {
		terms = validated.SearchTerms
	}

	o.logger.Info("pipeline_done",
		"company", profile.CompanyName,
		"ads_available", ads.Available,
		"unique_competitors", ads.UniqueCompetitors,
		"duration_seconds", elapsed)

	return &models.GenerationResult{
		Profile:                   profile,
		SearchTermsUsed:           terms,
		RealAdsData:               ads,
		CompetitorAnalysis:        analysis,
		ICP:                       icp,
		AdCampaign:                campaign,
		LandingPage:               landing,
		GeneratedAt:               finished.UTC(),
		GenerationDurationSeconds: elapsed,
	}, nil
}
