package pipeline

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/BerylCAtieno/strategy-agent/internal/models"
	"github.com/BerylCAtieno/strategy-agent/internal/progress"
	"github.com/BerylCAtieno/strategy-agent/internal/validator"
)

// QuickStages is what the quick entry point needs on top of StageRunner.
type QuickStages interface {
	StageRunner
	MarketingStrategy(ctx context.Context, profile models.OnboardingProfile) (*models.MarketingStrategy, error)
	MarketAnalysis(ctx context.Context, profile models.OnboardingProfile) (*models.MarketAnalysis, error)
}

// Quick generates without live competitor data. Strategy, ICP and market
// analysis run concurrently; ads and landing page run concurrently once
// all three are done. The first failure cancels the rest.
func Quick(ctx context.Context, stages QuickStages, raw map[string]any) (*models.QuickResult, error) {
	validated, err := validator.Validate(raw)
	if err != nil {
		return nil, err
	}
	profile := validated.Profile
	out := &models.QuickResult{Profile: profile}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s, err := stages.MarketingStrategy(gctx, profile)
		out.Strategy = s
		return err
	})
	g.Go(func() error {
		icp, err := stages.IdealCustomerProfile(gctx, profile, nil, progress.Discard)
		out.ICP = icp
		return err
	})
	g.Go(func() error {
		m, err := stages.MarketAnalysis(gctx, profile)
		out.MarketAnalysis = m
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	g2, g2ctx := errgroup.WithContext(ctx)
	g2.Go(func() error {
		c, err := stages.AdCampaign(g2ctx, profile, out.ICP, nil, progress.Discard)
		out.AdCampaign = c
		return err
	})
	g2.Go(func() error {
		lp, err := stages.LandingPage(g2ctx, profile, out.ICP, nil, progress.Discard)
		out.LandingPage = lp
		return err
	})
	if err := g2.Wait(); err != nil {
		return nil, err
	}

	out.GeneratedAt = time.Now().UTC()
	return out, nil
}
