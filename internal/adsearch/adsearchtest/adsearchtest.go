// Package adsearchtest provides an in-memory adsearch.Service for tests.
package adsearchtest

import (
	"context"
	"sync"

	"github.com/BerylCAtieno/strategy-agent/internal/adsearch"
	"github.com/BerylCAtieno/strategy-agent/internal/models"
)

// Service serves canned ads per search term.
type Service struct {
	Unavailable bool
	Reason      string
	Ads         map[string][]models.CompetitorAdRecord
	Errors      map[string]error

	mu      sync.Mutex
	queries []adsearch.Query
	checks  int
}

func (s *Service) Available(ctx context.Context) (bool, string) {
	s.mu.Lock()
	s.checks++
	s.mu.Unlock()
	if s.Unavailable {
		reason := s.Reason
		if reason == "" {
			reason = "ad search not configured"
		}
		return false, reason
	}
	return true, ""
}

func (s *Service) Search(ctx context.Context, q adsearch.Query) ([]models.CompetitorAdRecord, error) {
	s.mu.Lock()
	s.queries = append(s.queries, q)
	s.mu.Unlock()

	if err := s.Errors[q.Term]; err != nil {
		return nil, err
	}
	ads := s.Ads[q.Term]
	out := make([]models.CompetitorAdRecord, len(ads))
	copy(out, ads)
	return out, nil
}

// Queries returns the queries seen so far, in order.
func (s *Service) Queries() []adsearch.Query {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]adsearch.Query, len(s.queries))
	copy(out, s.queries)
	return out
}

// Checks reports how many times Available was called.
func (s *Service) Checks() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.checks
}
