package progress

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// SSEWriter frames events as `data: <json>\n\n` and flushes after each one.
type SSEWriter struct {
	ctx context.Context
	w   io.Writer
}

// NewSSEWriter binds the writer to the request context; once the context
// is done every write fails without touching w.
func NewSSEWriter(ctx context.Context, w io.Writer) *SSEWriter {
	return &SSEWriter{ctx: ctx, w: w}
}

func (s *SSEWriter) WriteEvent(ev Event) error {
	if err := s.ctx.Err(); err != nil {
		return err
	}
	b, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	if _, err := fmt.Fprintf(s.w, "data: %s\n\n", b); err != nil {
		return err
	}
	if f, ok := s.w.(http.Flusher); ok {
		f.Flush()
	}
	return nil
}
