// Package llmtest provides a scripted llm.Generator for tests.
package llmtest

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/BerylCAtieno/strategy-agent/internal/llm"
)

// Generator answers each request with the fixture registered under the
// request name and records every request it sees.
type Generator struct {
	mu        sync.Mutex
	responses map[string]string
	failures  map[string]error
	requests  []llm.Request
}

// New returns a Generator preloaded with Fixtures.
func New() *Generator {
	g := &Generator{
		responses: make(map[string]string),
		failures:  make(map[string]error),
	}
	for name, body := range Fixtures {
		g.responses[name] = body
	}
	return g
}

// Respond overrides the reply for a request name.
func (g *Generator) Respond(name, body string) *Generator {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.responses[name] = body
	return g
}

// Fail makes requests with the given name return err.
func (g *Generator) Fail(name string, err error) *Generator {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.failures[name] = err
	return g
}

func (g *Generator) GenerateJSON(ctx context.Context, req llm.Request) (json.RawMessage, error) {
	g.mu.Lock()
	g.requests = append(g.requests, req)
	err := g.failures[req.Name]
	body, ok := g.responses[req.Name]
	g.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("llmtest: no fixture for %q", req.Name)
	}
	s, err := llm.ExtractJSON(body)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(s), nil
}

// Requests returns a copy of the recorded requests in call order.
func (g *Generator) Requests() []llm.Request {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]llm.Request, len(g.requests))
	copy(out, g.requests)
	return out
}

// Names returns the recorded request names in call order.
func (g *Generator) Names() []string {
	reqs := g.Requests()
	out := make([]string, len(reqs))
	for i, r := range reqs {
		out[i] = r.Name
	}
	return out
}

// Prompt concatenates the message contents of the first request with name.
func (g *Generator) Prompt(name string) string {
	for _, r := range g.Requests() {
		if r.Name != name {
			continue
		}
		var s string
		for _, m := range r.Messages {
			s += m.Content + "\n"
		}
		return s
	}
	return ""
}
