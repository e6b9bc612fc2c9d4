// Package adsearch queries an ads index for competitor ads. The Meta Ad
// Library client is the production implementation.
package adsearch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/BerylCAtieno/strategy-agent/internal/models"
)

// ErrNotConfigured is returned by Search when no access token is set.
var ErrNotConfigured = errors.New("adsearch: meta ad library access token not configured")

type Query struct {
	Term       string
	Country    string
	ActiveOnly bool
	Limit      int
}

// Service is the ad search capability consumed by the collector.
// Available is a per-call capability check; callers must not cache it.
type Service interface {
	Available(ctx context.Context) (bool, string)
	Search(ctx context.Context, q Query) ([]models.CompetitorAdRecord, error)
}

type MetaConfig struct {
	AccessToken string
	APIVersion  string
	BaseURL     string
	Timeout     time.Duration
	HTTPClient  *http.Client
}

type MetaClient struct {
	token   string
	version string
	baseURL string
	client  *http.Client
}

const metaFields = "id,page_id,page_name,ad_creative_bodies,ad_creative_link_titles," +
	"ad_creative_link_captions,publisher_platforms,ad_delivery_start_time"

func NewMetaClient(cfg MetaConfig) *MetaClient {
	if cfg.APIVersion == "" {
		cfg.APIVersion = "v21.0"
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://graph.facebook.com"
	}
	client := cfg.HTTPClient
	if client == nil {
		timeout := cfg.Timeout
		if timeout == 0 {
			timeout = 30 * time.Second
		}
		client = &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	return &MetaClient{
		token:   strings.TrimSpace(cfg.AccessToken),
		version: cfg.APIVersion,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		client:  client,
	}
}

func (m *MetaClient) Available(ctx context.Context) (bool, string) {
	if m.token == "" {
		return false, "Meta Ad Library access token not configured"
	}
	return true, ""
}

type metaAd struct {
	ID                     string   `json:"id"`
	PageID                 string   `json:"page_id"`
	PageName               string   `json:"page_name"`
	AdCreativeBodies       []string `json:"ad_creative_bodies"`
	AdCreativeLinkTitles   []string `json:"ad_creative_link_titles"`
	AdCreativeLinkCaptions []string `json:"ad_creative_link_captions"`
	PublisherPlatforms     []string `json:"publisher_platforms"`
	AdDeliveryStartTime    string   `json:"ad_delivery_start_time"`
}

type metaResponse struct {
	Data  []metaAd `json:"data"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    int    `json:"code"`
	} `json:"error"`
}

func (m *MetaClient) Search(ctx context.Context, q Query) ([]models.CompetitorAdRecord, error) {
	if m.token == "" {
		return nil, ErrNotConfigured
	}

	country := q.Country
	if country == "" {
		country = "US"
	}
	params := url.Values{}
	params.Set("search_terms", q.Term)
	params.Set("ad_reached_countries", fmt.Sprintf(`[%q]`, country))
	params.Set("ad_type", "ALL")
	if q.ActiveOnly {
		params.Set("ad_active_status", "ACTIVE")
	}
	if q.Limit > 0 {
		params.Set("limit", strconv.Itoa(q.Limit))
	}
	params.Set("fields", metaFields)
	params.Set("access_token", m.token)

	endpoint := fmt.Sprintf("%s/%s/ads_archive?%s", m.baseURL, m.version, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("adsearch: build request: %w", err)
	}

	resp, err := m.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("adsearch: request %q: %w", q.Term, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("adsearch: read response: %w", err)
	}

	var parsed metaResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("adsearch: decode response (status %d): %w", resp.StatusCode, err)
	}
	if resp.StatusCode != http.StatusOK || parsed.Error != nil {
		msg := http.StatusText(resp.StatusCode)
		if parsed.Error != nil {
			msg = parsed.Error.Message
		}
		return nil, fmt.Errorf("adsearch: meta ad library status %d: %s", resp.StatusCode, msg)
	}

	records := make([]models.CompetitorAdRecord, 0, len(parsed.Data))
	for _, ad := range parsed.Data {
		records = append(records, models.CompetitorAdRecord{
			AdvertiserID:   ad.PageID,
			AdvertiserName: ad.PageName,
			Headline:       first(ad.AdCreativeLinkTitles),
			Body:           first(ad.AdCreativeBodies),
			Caption:        first(ad.AdCreativeLinkCaptions),
			Platforms:      ad.PublisherPlatforms,
			StartDate:      ad.AdDeliveryStartTime,
		})
	}
	return records, nil
}

func first(s []string) string {
	for _, v := range s {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
