package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventCycleStart   EventType = "cycle_start"
	EventCycleSuccess EventType = "cycle_success"
	EventCycleFailure EventType = "cycle_failure"
	EventStateChange  EventType = "state_change"
	EventSubmit       EventType = "submit"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	SessionID string    `json:"session_id,omitempty"`
}

// CycleEvent describes one pass of the render cycle.
type CycleEvent struct {
	EventBase
	Seq        int              `json:"seq"`
	Trigger    string           `json:"trigger"`
	Duration   time.Duration    `json:"duration,omitempty"`
	HistoryLen int              `json:"history_len"`
	Err        *EvaluationError `json:"error,omitempty"`
}

// StateEvent describes a field change.
type StateEvent struct {
	EventBase
	Key   string `json:"key"`
	Value string `json:"value"`
}

// SubmitEvent describes a button activation.
type SubmitEvent struct {
	EventBase
	State map[string]string `json:"state"`
}

// LifecycleHooks defines callbacks for playground observability.
// Every callback is optional.
type LifecycleHooks struct {
	OnCycleStart  func(context.Context, *CycleEvent)
	OnCycleEnd    func(context.Context, *CycleEvent)
	OnStateChange func(context.Context, *StateEvent)
	OnSubmit      func(context.Context, *SubmitEvent)
}

// Merge returns hooks that call h and then other for every event.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnCycleStart:  chain(h.OnCycleStart, other.OnCycleStart),
		OnCycleEnd:    chain(h.OnCycleEnd, other.OnCycleEnd),
		OnStateChange: chain(h.OnStateChange, other.OnStateChange),
		OnSubmit:      chain(h.OnSubmit, other.OnSubmit),
	}
}

func chain[E any](a, b func(context.Context, E)) func(context.Context, E) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(ctx context.Context, e E) {
		a(ctx, e)
		b(ctx, e)
	}
}
