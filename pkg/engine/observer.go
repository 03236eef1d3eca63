package engine

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// EventType classifies run events for filtering and routing.
type EventType string

const (
	EventRunStart      EventType = "run_start"
	EventStepStart     EventType = "step_start"
	EventStageComputed EventType = "stage_computed"
	EventRunComplete   EventType = "run_complete"
	EventRunRefused    EventType = "run_refused"
)

// Event is a single observation from a simulation run.
type Event struct {
	Type    EventType
	RunID   string
	Step    int // -1 outside the step loop
	Stage   string
	Elapsed time.Duration
	Err     error
}

// RunObserver receives events during a simulation run. Single-method
// design (like http.Handler) so adding new event types never breaks
// existing observers.
type RunObserver interface {
	OnEvent(Event)
}

// ObserverFunc adapts a plain function to the RunObserver interface.
type ObserverFunc func(Event)

func (f ObserverFunc) OnEvent(e Event) { f(e) }

// MultiObserver fans out events to multiple observers.
type MultiObserver []RunObserver

func (m MultiObserver) OnEvent(e Event) {
	for _, obs := range m {
		obs.OnEvent(e)
	}
}

// LogObserver writes run events as structured slog lines.
type LogObserver struct {
	Logger *slog.Logger
}

func (o *LogObserver) OnEvent(e Event) {
	logger := o.Logger
	if logger == nil {
		logger = slog.Default()
	}

	attrs := []slog.Attr{
		slog.String("event", string(e.Type)),
		slog.String("run", e.RunID),
	}
	if e.Step >= 0 {
		attrs = append(attrs, slog.Int("step", e.Step))
	}
	if e.Stage != "" {
		attrs = append(attrs, slog.String("stage", e.Stage))
	}
	if e.Elapsed > 0 {
		attrs = append(attrs, slog.Duration("elapsed", e.Elapsed))
	}
	if e.Err != nil {
		attrs = append(attrs, slog.String("error", e.Err.Error()))
	}

	level := slog.LevelInfo
	if e.Err != nil {
		level = slog.LevelWarn
	}
	logger.LogAttrs(context.Background(), level, "run", attrs...)
}

// TraceCollector accumulates run events in memory for post-run analysis.
// Safe for concurrent use.
type TraceCollector struct {
	mu     sync.Mutex
	events []Event
}

func (t *TraceCollector) OnEvent(e Event) {
	t.mu.Lock()
	t.events = append(t.events, e)
	t.mu.Unlock()
}

// Events returns a copy of all collected events.
func (t *TraceCollector) Events() []Event {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Event, len(t.events))
	copy(out, t.events)
	return out
}

// EventsOfType returns only events matching the given type.
func (t *TraceCollector) EventsOfType(typ EventType) []Event {
	t.mu.Lock()
	defer t.mu.Unlock()
	var out []Event
	for _, e := range t.events {
		if e.Type == typ {
			out = append(out, e)
		}
	}
	return out
}

// emitEvent safely emits an event to a possibly-nil observer.
func emitEvent(obs RunObserver, e Event) {
	if obs != nil {
		obs.OnEvent(e)
	}
}
