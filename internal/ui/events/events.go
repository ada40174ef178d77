package events

import (
	"sync"
	"time"

	"apidir/internal/domain"
)

// Event name constants.
const (
	// Listing events.
	EventDrawerChanged    = "drawer:changed"
	EventProvidersUpdated = "providers:updated"
	EventSummaryUpdated   = "summary:updated"

	// Navigation events.
	EventRouteChanged = "route:changed"

	// Detail view events.
	EventDetailState = "detail:state"

	// Error events.
	EventError = "error"
)

// DrawerChangedEvent reports a selection state transition.
type DrawerChangedEvent struct {
	Open     bool   `json:"open"`
	State    string `json:"state"`
	Expanded string `json:"expanded,omitempty"`
}

// ProvidersUpdatedEvent carries the provider list after a directory fetch.
type ProvidersUpdatedEvent struct {
	Providers []string `json:"providers"`
	Failed    bool     `json:"failed,omitempty"`
}

// SummaryUpdatedEvent carries the summary of the expanded provider.
type SummaryUpdatedEvent struct {
	Provider string                 `json:"provider"`
	Summary  domain.ProviderSummary `json:"summary"`
}

// RouteChangedEvent reports the new current route.
type RouteChangedEvent struct {
	Path      string `json:"path"`
	Route     string `json:"route"`
	Provider  string `json:"provider,omitempty"`
	HasState  bool   `json:"hasState"`
	Timestamp string `json:"timestamp"`
}

// DetailStateEvent reports a detail view status change.
type DetailStateEvent struct {
	Provider string `json:"provider"`
	Status   string `json:"status"`
	Error    string `json:"error,omitempty"`
	Title    string `json:"title,omitempty"`
}

// ErrorEvent represents an error event.
type ErrorEvent struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// Sink receives emitted events. Implementations must not block.
type Sink interface {
	Emit(name string, payload any)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(name string, payload any)

func (f SinkFunc) Emit(name string, payload any) {
	f(name, payload)
}

// Event is one recorded emission.
type Event struct {
	Name    string `json:"name"`
	Payload any    `json:"payload"`
}

// Recorder is a Sink that keeps every event in order.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Emit(name string, payload any) {
	r.mu.Lock()
	r.events = append(r.events, Event{Name: name, Payload: payload})
	r.mu.Unlock()
}

// Events returns a copy of the recorded events.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// Named returns the recorded events with the given name.
func (r *Recorder) Named(name string) []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Event
	for _, event := range r.events {
		if event.Name == name {
			out = append(out, event)
		}
	}
	return out
}

// Helper functions for event emission

func EmitDrawerChanged(sink Sink, event DrawerChangedEvent) {
	if sink == nil {
		return
	}
	sink.Emit(EventDrawerChanged, event)
}

func EmitProvidersUpdated(sink Sink, providers []domain.ProviderID, failed bool) {
	if sink == nil {
		return
	}
	ids := make([]string, 0, len(providers))
	for _, id := range providers {
		ids = append(ids, string(id))
	}
	sink.Emit(EventProvidersUpdated, ProvidersUpdatedEvent{Providers: ids, Failed: failed})
}

func EmitSummaryUpdated(sink Sink, provider domain.ProviderID, summary domain.ProviderSummary) {
	if sink == nil {
		return
	}
	sink.Emit(EventSummaryUpdated, SummaryUpdatedEvent{Provider: string(provider), Summary: summary})
}

func EmitRouteChanged(sink Sink, event RouteChangedEvent, at time.Time) {
	if sink == nil {
		return
	}
	event.Timestamp = formatTimestamp(at)
	sink.Emit(EventRouteChanged, event)
}

func EmitDetailState(sink Sink, event DetailStateEvent) {
	if sink == nil {
		return
	}
	sink.Emit(EventDetailState, event)
}

func EmitError(sink Sink, code, message, details string) {
	if sink == nil {
		return
	}
	sink.Emit(EventError, ErrorEvent{
		Code:    code,
		Message: message,
		Details: details,
	})
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
