package ui

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"apidir/internal/domain"
	"apidir/internal/ui/events"
)

// SessionOptions configures a Session.
type SessionOptions struct {
	Directory DirectoryService
	Sink      events.Sink
	Logger    *zap.Logger
	Metrics   domain.Metrics
	HitTest   HitTest
}

// Session mounts the view that matches the navigator's current route. Each
// route change unmounts the previous view so its pending fetches are dropped.
type Session struct {
	mu          sync.Mutex
	ctx         context.Context
	listing     *ListingView
	detail      *DetailView
	unsubscribe func()
	started     bool

	opts      SessionOptions
	logger    *zap.Logger
	navigator *Navigator
}

func NewSession(opts SessionOptions) *Session {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Metrics == nil {
		opts.Metrics = domain.NoopMetrics{}
	}
	opts.Logger = logger
	return &Session{
		opts:   opts,
		logger: logger,
		navigator: NewNavigator(NavigatorOptions{
			Logger:  logger,
			Metrics: opts.Metrics,
			Sink:    opts.Sink,
		}),
	}
}

// Start mounts the view for initial. A detail route is a direct load and
// carries no navigation state.
func (s *Session) Start(ctx context.Context, initial Route) {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}
	s.ctx = ctx
	s.started = true
	s.mu.Unlock()

	s.unsubscribe = s.navigator.Subscribe(s.route)
	if initial.Name == RouteHome {
		s.route(s.navigator.Current())
		return
	}
	s.navigator.Replace(initial, nil)
}

// Close unmounts whatever view is active.
func (s *Session) Close() {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return
	}
	s.started = false
	listing, detail := s.listing, s.detail
	s.listing, s.detail = nil, nil
	unsubscribe := s.unsubscribe
	s.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
	if listing != nil {
		listing.Unmount()
	}
	if detail != nil {
		detail.Unmount()
	}
}

func (s *Session) Navigator() *Navigator {
	return s.navigator
}

// Listing returns the mounted listing view, or nil on the detail route.
func (s *Session) Listing() *ListingView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listing
}

// Detail returns the mounted detail view, or nil on the home route.
func (s *Session) Detail() *DetailView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.detail
}

// Wait blocks until the fetches of the active views have settled.
func (s *Session) Wait() {
	s.mu.Lock()
	listing, detail := s.listing, s.detail
	s.mu.Unlock()

	if listing != nil {
		listing.Wait()
	}
	if detail != nil {
		detail.Wait()
	}
}

func (s *Session) route(entry Entry) {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return
	}
	ctx := s.ctx
	listing, detail := s.listing, s.detail

	switch entry.Route.Name {
	case RouteDetail:
		s.listing = nil
		if detail == nil {
			s.detail = NewDetailView(DetailOptions{
				Fetcher:   s.opts.Directory,
				Navigator: s.navigator,
				Sink:      s.opts.Sink,
				Logger:    s.logger,
				Metrics:   s.opts.Metrics,
			})
		}
		next := s.detail
		s.mu.Unlock()

		if listing != nil {
			listing.Unmount()
		}
		if detail == nil {
			next.Mount(ctx, entry.Route.Provider, entry.State)
		} else {
			next.SetProvider(entry.Route.Provider)
		}
	default:
		s.detail = nil
		if listing == nil {
			s.listing = NewListingView(ListingOptions{
				Directory: s.opts.Directory,
				Navigator: s.navigator,
				Sink:      s.opts.Sink,
				Logger:    s.logger,
				Metrics:   s.opts.Metrics,
				HitTest:   s.opts.HitTest,
			})
		}
		next := s.listing
		s.mu.Unlock()

		if detail != nil {
			detail.Unmount()
		}
		if listing == nil {
			next.Mount(ctx)
		}
	}
}
