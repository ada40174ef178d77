package ui

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"apidir/internal/domain"
	"apidir/internal/infra/telemetry"
	"apidir/internal/ui/events"
)

// NavigationState is the transient payload carried to the detail route. The
// detail view never depends on it: direct loads arrive without one.
type NavigationState struct {
	Summary domain.ProviderSummary `json:"summary"`
}

// Entry is one history entry.
type Entry struct {
	Route Route
	State any
}

// NavigatorOptions configures a Navigator.
type NavigatorOptions struct {
	Logger  *zap.Logger
	Metrics domain.Metrics
	Sink    events.Sink
	Now     func() time.Time
}

// Navigator holds the route history. It starts at the home route.
type Navigator struct {
	mu        sync.Mutex
	history   []Entry
	listeners map[int]func(Entry)
	nextID    int

	logger  *zap.Logger
	metrics domain.Metrics
	sink    events.Sink
	now     func() time.Time
}

func NewNavigator(opts NavigatorOptions) *Navigator {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	metrics := opts.Metrics
	if metrics == nil {
		metrics = domain.NoopMetrics{}
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Navigator{
		history:   []Entry{{Route: HomeRoute()}},
		listeners: make(map[int]func(Entry)),
		logger:    logger.Named("navigator"),
		metrics:   metrics,
		sink:      opts.Sink,
		now:       now,
	}
}

// Subscribe registers fn for every route change and returns its cancel func.
func (n *Navigator) Subscribe(fn func(Entry)) func() {
	n.mu.Lock()
	id := n.nextID
	n.nextID++
	n.listeners[id] = fn
	n.mu.Unlock()

	return func() {
		n.mu.Lock()
		delete(n.listeners, id)
		n.mu.Unlock()
	}
}

// Push appends route to the history and makes it current.
func (n *Navigator) Push(route Route, state any) {
	n.mu.Lock()
	entry := Entry{Route: route, State: state}
	n.history = append(n.history, entry)
	listeners := n.copyListenersLocked()
	n.mu.Unlock()

	n.changed(entry, listeners)
}

// Replace swaps the current entry.
func (n *Navigator) Replace(route Route, state any) {
	n.mu.Lock()
	entry := Entry{Route: route, State: state}
	n.history[len(n.history)-1] = entry
	listeners := n.copyListenersLocked()
	n.mu.Unlock()

	n.changed(entry, listeners)
}

// Back pops the current entry. It reports false at the root entry.
func (n *Navigator) Back() bool {
	n.mu.Lock()
	if len(n.history) <= 1 {
		n.mu.Unlock()
		return false
	}
	n.history = n.history[:len(n.history)-1]
	entry := n.history[len(n.history)-1]
	listeners := n.copyListenersLocked()
	n.mu.Unlock()

	n.changed(entry, listeners)
	return true
}

// Current returns the current entry.
func (n *Navigator) Current() Entry {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.history[len(n.history)-1]
}

// Depth returns the number of history entries.
func (n *Navigator) Depth() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.history)
}

func (n *Navigator) copyListenersLocked() []func(Entry) {
	out := make([]func(Entry), 0, len(n.listeners))
	for id := 0; id < n.nextID; id++ {
		if fn, ok := n.listeners[id]; ok {
			out = append(out, fn)
		}
	}
	return out
}

func (n *Navigator) changed(entry Entry, listeners []func(Entry)) {
	n.metrics.ObserveNavigation(string(entry.Route.Name))
	n.logger.Debug("route changed",
		telemetry.EventField(telemetry.EventNavigate),
		telemetry.RouteField(entry.Route.Path()),
	)
	events.EmitRouteChanged(n.sink, events.RouteChangedEvent{
		Path:     entry.Route.Path(),
		Route:    string(entry.Route.Name),
		Provider: string(entry.Route.Provider),
		HasState: entry.State != nil,
	}, n.now())
	for _, fn := range listeners {
		fn(entry)
	}
}
