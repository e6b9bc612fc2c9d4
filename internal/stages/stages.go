// Package stages holds the four sequential generation stages. Each stage
// builds its prompt from the profile plus earlier artifacts, asks the
// generator for a documented JSON shape and parses the reply.
package stages

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"

	"github.com/BerylCAtieno/strategy-agent/internal/llm"
	"github.com/BerylCAtieno/strategy-agent/internal/models"
	"github.com/BerylCAtieno/strategy-agent/internal/progress"
)

const (
	StageCompetitorAnalysis = "competitor_analysis"
	StageICP                = "icp"
	StageAdCampaign         = "ad_campaign"
	StageLandingPage        = "landing_page"
	StageMarketingStrategy  = "marketing_strategy"
	StageMarketAnalysis     = "market_analysis"
)

// AdVariantCount is the number of ad variants requested per campaign.
const AdVariantCount = 6

// GenerationError reports a failed or unparseable generation call.
type GenerationError struct {
	Stage string
	Err   error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("%s generation failed: %v; regenerate this stage", e.Stage, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

type Runner struct {
	gen    llm.Generator
	logger *slog.Logger
}

func NewRunner(gen llm.Generator, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{gen: gen, logger: logger.With("component", "stages")}
}

const tracerName = "github.com/BerylCAtieno/strategy-agent/internal/stages"

func generate[T any](ctx context.Context, r *Runner, stage, shape string, messages []llm.Message) (out T, err error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "stage."+stage)
	start := time.Now()
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			r.logger.Error("stage_failed", "stage", stage, "error", err)
		} else {
			r.logger.Info("stage_done", "stage", stage, "duration_ms", time.Since(start).Milliseconds())
		}
		span.End()
	}()

	var zero T
	raw, err := r.gen.GenerateJSON(ctx, llm.Request{
		Name:     stage,
		Messages: messages,
		Shape:    shape,
	})
	if err != nil {
		return zero, &GenerationError{Stage: stage, Err: err}
	}
	out, err = llm.Decode[T](raw)
	if err != nil {
		return zero, &GenerationError{Stage: stage, Err: err}
	}
	return out, nil
}

func report(sink progress.Sink, message string) {
	if sink != nil {
		sink.Report(message)
	}
}

// CompetitorAnalysis is the only stage that reads collector output.
func (r *Runner) CompetitorAnalysis(ctx context.Context, profile models.OnboardingProfile, ads models.CompetitorAdBundle, sink progress.Sink) (*models.CompetitorAnalysis, error) {
	report(sink, "Analyzing your competition...")

	analysis, err := generate[models.CompetitorAnalysis](ctx, r, StageCompetitorAnalysis, competitorAnalysisShape,
		competitorAnalysisPrompt(profile, ads))
	if err != nil {
		return nil, err
	}
	if ads.Available {
		bundle := ads
		analysis.RealAdsData = &bundle
	} else {
		analysis.RealAdsData = nil
	}
	return &analysis, nil
}

func (r *Runner) IdealCustomerProfile(ctx context.Context, profile models.OnboardingProfile, analysis *models.CompetitorAnalysis, sink progress.Sink) (*models.IdealCustomerProfile, error) {
	report(sink, "Building your ideal customer profile...")

	icp, err := generate[models.IdealCustomerProfile](ctx, r, StageICP, icpShape, icpPrompt(profile, analysis))
	if err != nil {
		return nil, err
	}
	return &icp, nil
}

func (r *Runner) AdCampaign(ctx context.Context, profile models.OnboardingProfile, icp *models.IdealCustomerProfile, analysis *models.CompetitorAnalysis, sink progress.Sink) (*models.AdCampaign, error) {
	report(sink, "Writing your ad campaign...")

	campaign, err := generate[models.AdCampaign](ctx, r, StageAdCampaign, adCampaignShape, adCampaignPrompt(profile, icp, analysis))
	if err != nil {
		return nil, err
	}
	if len(campaign.AdVariants) == 0 {
		return nil, &GenerationError{Stage: StageAdCampaign, Err: fmt.Errorf("response contained no ad variants")}
	}
	if len(campaign.AdVariants) > AdVariantCount {
		campaign.AdVariants = campaign.AdVariants[:AdVariantCount]
	}
	if len(campaign.AdVariants) < AdVariantCount {
		r.logger.Warn("ad_variants_short", "want", AdVariantCount, "got", len(campaign.AdVariants))
	}
	for i := range campaign.AdVariants {
		if strings.TrimSpace(campaign.AdVariants[i].ID) == "" {
			campaign.AdVariants[i].ID = fmt.Sprintf("ad-%d", i+1)
		}
	}
	return &campaign, nil
}

// landingReply distinguishes an absent sections object from an empty one.
type landingReply struct {
	PageTitle       string                  `json:"pageTitle"`
	MetaDescription string                  `json:"metaDescription"`
	Sections        *models.LandingSections `json:"sections"`
}

func (r *Runner) LandingPage(ctx context.Context, profile models.OnboardingProfile, icp *models.IdealCustomerProfile, campaign *models.AdCampaign, sink progress.Sink) (*models.LandingPageStructure, error) {
	report(sink, "Designing your landing page...")

	reply, err := generate[landingReply](ctx, r, StageLandingPage, landingPageShape, landingPagePrompt(profile, icp, campaign))
	if err != nil {
		return nil, err
	}
	if reply.Sections == nil {
		return nil, &GenerationError{Stage: StageLandingPage, Err: fmt.Errorf("response contained no sections object")}
	}

	page := &models.LandingPageStructure{
		PageTitle:       reply.PageTitle,
		MetaDescription: reply.MetaDescription,
		Sections:        *reply.Sections,
	}
	slots := page.Sections.Slots()
	for _, key := range models.SectionKeys {
		if *slots[key] == nil {
			r.logger.Warn("landing_section_missing", "section", key)
			*slots[key] = &models.PageSection{
				Headline: Placeholder,
				Body:     Placeholder,
				Purpose:  key,
			}
		}
	}
	return page, nil
}

// MarketingStrategy and MarketAnalysis only serve the quick entry point;
// they depend on the profile alone.
func (r *Runner) MarketingStrategy(ctx context.Context, profile models.OnboardingProfile) (*models.MarketingStrategy, error) {
	s, err := generate[models.MarketingStrategy](ctx, r, StageMarketingStrategy, marketingStrategyShape, marketingStrategyPrompt(profile))
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *Runner) MarketAnalysis(ctx context.Context, profile models.OnboardingProfile) (*models.MarketAnalysis, error) {
	m, err := generate[models.MarketAnalysis](ctx, r, StageMarketAnalysis, marketAnalysisShape, marketAnalysisPrompt(profile))
	if err != nil {
		return nil, err
	}
	return &m, nil
}
