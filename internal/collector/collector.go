// Package collector gathers live competitor ads across search terms,
// deduplicated by advertiser and excluding the caller's own brand.
package collector

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/BerylCAtieno/strategy-agent/internal/adsearch"
	"github.com/BerylCAtieno/strategy-agent/internal/models"
	"github.com/BerylCAtieno/strategy-agent/internal/progress"
)

type Config struct {
	MaxTerms     int
	Country      string
	PerTermLimit int
	// Delay is the minimum spacing between two ad search calls.
	Delay time.Duration
}

func DefaultConfig() Config {
	return Config{
		MaxTerms:     5,
		Country:      "US",
		PerTermLimit: 15,
		Delay:        1500 * time.Millisecond,
	}
}

type Collector struct {
	search adsearch.Service
	cfg    Config
	logger *slog.Logger
}

func New(search adsearch.Service, cfg Config, logger *slog.Logger) *Collector {
	if cfg.MaxTerms <= 0 {
		cfg.MaxTerms = DefaultConfig().MaxTerms
	}
	if cfg.Country == "" {
		cfg.Country = DefaultConfig().Country
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Collector{search: search, cfg: cfg, logger: logger.With("component", "collector")}
}

// Collect queries the ad search once per term, sequentially and throttled.
// It never fails: an unavailable service yields Available=false, and a
// failing term is logged and skipped.
func (c *Collector) Collect(ctx context.Context, terms []string, ownCompany string, sink progress.Sink) models.CompetitorAdBundle {
	if sink == nil {
		sink = progress.Discard
	}

	if ok, reason := c.search.Available(ctx); !ok {
		c.logger.Warn("ad_search_unavailable", "reason", reason)
		return models.CompetitorAdBundle{
			Available: false,
			Ads:       []models.CompetitorAdRecord{},
			Reason:    reason,
		}
	}

	if len(terms) > c.cfg.MaxTerms {
		terms = terms[:c.cfg.MaxTerms]
	}

	limit := rate.Inf
	if c.cfg.Delay > 0 {
		limit = rate.Every(c.cfg.Delay)
	}
	limiter := rate.NewLimiter(limit, 1)

	own := strings.ToLower(strings.TrimSpace(ownCompany))
	seen := make(map[string]struct{})
	ads := []models.CompetitorAdRecord{}
	used := make([]string, 0, len(terms))

	for i, term := range terms {
		if err := limiter.Wait(ctx); err != nil {
			c.logger.Warn("ad_collection_interrupted", "term", term, "error", err)
			break
		}
		sink.Report(fmt.Sprintf("Searching competitor ads for %q (%d/%d)...", term, i+1, len(terms)))
		used = append(used, term)

		found, err := c.search.Search(ctx, adsearch.Query{
			Term:       term,
			Country:    c.cfg.Country,
			ActiveOnly: true,
			Limit:      c.cfg.PerTermLimit,
		})
		if err != nil {
			c.logger.Warn("ad_search_term_failed", "term", term, "error", err)
			continue
		}

		accepted := 0
		for _, ad := range found {
			if own != "" && strings.Contains(strings.ToLower(ad.AdvertiserName), own) {
				continue
			}
			key := advertiserKey(ad)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			ad.SearchTerm = term
			ads = append(ads, ad)
			accepted++
		}
		c.logger.Info("ad_search_term_done", "term", term, "returned", len(found), "accepted", accepted)
	}

	return models.CompetitorAdBundle{
		Available:         true,
		Ads:               ads,
		UniqueCompetitors: len(seen),
		SearchTermsUsed:   used,
	}
}

// advertiserKey falls back to the lowercased name when the index omits
// the advertiser id.
func advertiserKey(ad models.CompetitorAdRecord) string {
	if id := strings.TrimSpace(ad.AdvertiserID); id != "" {
		return "id:" + id
	}
	return "name:" + strings.ToLower(strings.TrimSpace(ad.AdvertiserName))
}
