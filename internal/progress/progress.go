// Package progress adapts the pipeline's progress callback into either a
// single terminal response or a live event stream.
package progress

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"sync"

	"github.com/BerylCAtieno/strategy-agent/internal/models"
)

// TotalSteps is the nominal number of pipeline stages used for the
// percentage. Every Report call counts as a step, so the collector's
// per-term messages push the bar forward too; the cap keeps it below 100
// until the result exists.
const (
	TotalSteps  = 6
	MaxProgress = 95
)

// Sink receives human-readable progress messages.
type Sink interface {
	Report(message string)
}

type SinkFunc func(message string)

func (f SinkFunc) Report(message string) { f(message) }

// Discard drops every message.
var Discard Sink = SinkFunc(func(string) {})

// Percent maps a step count to a progress percentage capped at MaxProgress.
func Percent(step int) int {
	p := int(math.Round(float64(step) / TotalSteps * 100))
	if p > MaxProgress {
		return MaxProgress
	}
	if p < 0 {
		return 0
	}
	return p
}

type EventType string

const (
	EventProgress EventType = "progress"
	EventComplete EventType = "complete"
	EventError    EventType = "error"
)

type CompleteData struct {
	ID     string                   `json:"id,omitempty"`
	Result *models.GenerationResult `json:"result"`
}

type Event struct {
	Type     EventType     `json:"type"`
	Step     int           `json:"step,omitempty"`
	Progress int           `json:"progress,omitempty"`
	Message  string        `json:"message,omitempty"`
	Data     *CompleteData `json:"data,omitempty"`
	Error    string        `json:"error,omitempty"`
}

// EventWriter delivers one event to the caller. An error means the caller
// is gone; the stream stops writing after the first failure.
type EventWriter interface {
	WriteEvent(Event) error
}

// ErrStreamClosed is reported by Stream methods once the stream has ended.
var ErrStreamClosed = errors.New("progress: stream closed")

// Stream emits progress events followed by at most one terminal event.
// It is safe for concurrent use. Writes after the terminal event, or after
// the writer failed, are silent no-ops.
type Stream struct {
	mu       sync.Mutex
	w        EventWriter
	step     int
	terminal bool
	gone     bool
	logger   *slog.Logger
}

func NewStream(w EventWriter, logger *slog.Logger) *Stream {
	if logger == nil {
		logger = slog.Default()
	}
	return &Stream{w: w, logger: logger}
}

// Report implements Sink.
func (s *Stream) Report(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.terminal {
		return
	}
	s.step++
	s.emit(Event{
		Type:     EventProgress,
		Step:     s.step,
		Progress: Percent(s.step),
		Message:  message,
	})
}

// Complete emits the terminal complete event.
func (s *Stream) Complete(id string, result *models.GenerationResult) error {
	return s.finish(Event{
		Type: EventComplete,
		Data: &CompleteData{ID: id, Result: result},
	})
}

// Fail emits the terminal error event with the error's message only.
func (s *Stream) Fail(err error) error {
	msg := "generation failed"
	if err != nil {
		msg = err.Error()
	}
	return s.finish(Event{Type: EventError, Error: msg})
}

// Closed reports whether the caller went away.
func (s *Stream) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gone
}

func (s *Stream) finish(ev Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.terminal {
		return ErrStreamClosed
	}
	s.terminal = true
	s.emit(ev)
	return nil
}

func (s *Stream) emit(ev Event) {
	if s.gone {
		return
	}
	if err := s.w.WriteEvent(ev); err != nil {
		s.gone = true
		s.logger.Info("stream_client_disconnected", "event", string(ev.Type), "error", err)
	}
}

// RunFunc is one pipeline invocation reporting into sink.
type RunFunc func(ctx context.Context, sink Sink) (*models.GenerationResult, error)

// Single drives run to completion and discards intermediate progress.
func Single(ctx context.Context, run RunFunc) (*models.GenerationResult, error) {
	return run(ctx, Discard)
}

// Streamed drives run with a Stream over w. The terminal event is left to
// the caller through finalize so it can attach a stored id; when finalize
// is nil the result is completed without an id. The run's result and error
// are returned unchanged.
func Streamed(ctx context.Context, w EventWriter, run RunFunc, finalize func(*models.GenerationResult) (string, error), logger *slog.Logger) (*models.GenerationResult, error) {
	stream := NewStream(w, logger)

	result, err := run(ctx, stream)
	if err != nil {
		stream.Fail(err)
		return nil, err
	}

	var id string
	if finalize != nil {
		id, err = finalize(result)
		if err != nil {
			stream.Fail(err)
			return nil, err
		}
	}
	stream.Complete(id, result)
	return result, nil
}
