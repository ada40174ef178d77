package ui

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"apidir/internal/domain"
	"apidir/internal/infra/telemetry"
	"apidir/internal/ui/events"
)

// ProviderLister fetches the provider ids.
type ProviderLister interface {
	ListProviders(ctx context.Context) ([]domain.ProviderID, error)
}

// DescriptorFetcher fetches and resolves one provider descriptor.
type DescriptorFetcher interface {
	FetchDescriptor(ctx context.Context, id domain.ProviderID) (domain.Resolution, error)
}

// DirectoryService is everything the views need from the directory client.
type DirectoryService interface {
	ProviderLister
	DescriptorFetcher
}

// PointerEvent is a pointer press in screen coordinates.
type PointerEvent struct {
	X, Y int
}

// HitTest reports whether a pointer event landed inside the drawer.
type HitTest func(PointerEvent) bool

// ListingOptions configures a ListingView.
type ListingOptions struct {
	Directory DirectoryService
	Navigator *Navigator
	Sink      events.Sink
	Logger    *zap.Logger
	Metrics   domain.Metrics
	HitTest   HitTest
}

// ListingSnapshot is what the home screen renders.
type ListingSnapshot struct {
	Selection SelectionSnapshot   `json:"selection"`
	Providers []domain.ProviderID `json:"providers"`
	Loading   bool                `json:"loading"`
}

// ListingView is the home screen: the explore button, the drawer and the
// provider list. It owns the Selection for as long as it is mounted.
type ListingView struct {
	mu        sync.Mutex
	providers []domain.ProviderID
	loading   bool
	hitTest   HitTest
	sessionID string
	ctx       context.Context
	cancel    context.CancelFunc
	mounted   bool

	selection *Selection
	directory DirectoryService
	navigator *Navigator
	sink      events.Sink
	logger    *zap.Logger
	metrics   domain.Metrics
	inflight  sync.WaitGroup
}

func NewListingView(opts ListingOptions) *ListingView {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	metrics := opts.Metrics
	if metrics == nil {
		metrics = domain.NoopMetrics{}
	}
	view := &ListingView{
		directory: opts.Directory,
		navigator: opts.Navigator,
		sink:      opts.Sink,
		logger:    logger.Named("listing"),
		metrics:   metrics,
		hitTest:   opts.HitTest,
	}
	view.selection = NewSelection(view.onTransition)
	return view
}

// Mount starts a session. Fetches are bound to ctx until Unmount.
func (v *ListingView) Mount(ctx context.Context) {
	if ctx == nil {
		ctx = context.Background()
	}
	v.mu.Lock()
	if v.mounted {
		v.mu.Unlock()
		return
	}
	v.sessionID = telemetry.NewSessionID()
	v.ctx, v.cancel = context.WithCancel(telemetry.WithSession(ctx, v.sessionID))
	v.mounted = true
	v.providers = nil
	v.loading = false
	sessionID := v.sessionID
	v.mu.Unlock()

	v.logger.Debug("listing mounted", telemetry.EventField(telemetry.EventMount), telemetry.SessionIDField(sessionID))
}

// Unmount cancels in-flight fetches and discards the selection state.
func (v *ListingView) Unmount() {
	v.mu.Lock()
	if !v.mounted {
		v.mu.Unlock()
		return
	}
	v.mounted = false
	cancel := v.cancel
	sessionID := v.sessionID
	v.loading = false
	v.mu.Unlock()

	cancel()
	v.selection.Reset()
	v.logger.Debug("listing unmounted", telemetry.EventField(telemetry.EventUnmount), telemetry.SessionIDField(sessionID))
}

// SetHitTest installs the drawer boundary test used by PointerDown.
func (v *ListingView) SetHitTest(hitTest HitTest) {
	v.mu.Lock()
	v.hitTest = hitTest
	v.mu.Unlock()
}

// ToggleDrawer opens or closes the drawer; opening fetches the provider ids.
func (v *ListingView) ToggleDrawer() {
	ctx, ok := v.sessionContext()
	if !ok {
		return
	}
	if !v.selection.ToggleDrawer() {
		v.setLoading(false)
		return
	}
	v.fetchProviders(ctx)
}

// SelectProvider expands or collapses a provider.
func (v *ListingView) SelectProvider(id domain.ProviderID) {
	ctx, ok := v.sessionContext()
	if !ok {
		return
	}
	ticket, fetch := v.selection.SelectProvider(id)
	if !fetch {
		return
	}
	v.fetchSummary(ctx, ticket)
}

// PointerDown closes the drawer when the event lands outside of it. Without
// a hit test every event counts as inside.
func (v *ListingView) PointerDown(event PointerEvent) {
	v.mu.Lock()
	hitTest := v.hitTest
	mounted := v.mounted
	v.mu.Unlock()

	if !mounted || hitTest == nil || hitTest(event) {
		return
	}
	v.OutsideClick()
}

// OutsideClick closes the drawer regardless of its state.
func (v *ListingView) OutsideClick() {
	if v.selection.OutsideClick() {
		v.setLoading(false)
	}
}

// Navigate pushes the detail route for an expanded provider, carrying the
// summary as navigation state.
func (v *ListingView) Navigate(id domain.ProviderID) error {
	if _, ok := v.sessionContext(); !ok {
		return domain.E(domain.CodeInvalidArgument, "navigate", "listing is not mounted", nil)
	}
	snapshot := v.selection.Snapshot()
	if snapshot.State != StateExpanded || snapshot.Expanded != id {
		return domain.InvalidArgumentError("navigate", "provider "+string(id)+" is not expanded")
	}
	if snapshot.Summary.Title == "" {
		return domain.InvalidArgumentError("navigate", "provider "+string(id)+" has no title to activate")
	}
	if v.navigator == nil {
		return domain.E(domain.CodeInternal, "navigate", "no navigator", nil)
	}
	v.navigator.Push(DetailRoute(id), NavigationState{Summary: snapshot.Summary})
	return nil
}

// Snapshot returns the current render state.
func (v *ListingView) Snapshot() ListingSnapshot {
	v.mu.Lock()
	providers := make([]domain.ProviderID, len(v.providers))
	copy(providers, v.providers)
	loading := v.loading
	v.mu.Unlock()

	return ListingSnapshot{
		Selection: v.selection.Snapshot(),
		Providers: providers,
		Loading:   loading,
	}
}

// Selection exposes the state machine for inspection.
func (v *ListingView) Selection() *Selection {
	return v.selection
}

// Wait blocks until every started fetch has settled.
func (v *ListingView) Wait() {
	v.inflight.Wait()
}

func (v *ListingView) fetchProviders(ctx context.Context) {
	ticket := v.selection.BeginDirectory()
	v.setLoading(true)

	v.inflight.Add(1)
	go func() {
		defer v.inflight.Done()

		ids, err := v.directory.ListProviders(ctx)
		if !v.selection.CompleteDirectory(ticket) || !v.isMounted() {
			v.stale(SlotDirectory, ticket)
			return
		}
		if err != nil {
			v.logger.Warn("provider directory unavailable",
				telemetry.EventField(telemetry.EventFetchFailure),
				telemetry.SessionIDField(v.currentSessionID()),
				zap.Error(err),
			)
			ids = nil
		}

		v.mu.Lock()
		v.providers = ids
		v.loading = false
		v.mu.Unlock()

		events.EmitProvidersUpdated(v.sink, ids, err != nil)
		if err != nil {
			uiErr := MapDomainError(err)
			events.EmitError(v.sink, uiErr.Code, uiErr.Message, uiErr.Details)
		}
	}()
}

func (v *ListingView) fetchSummary(ctx context.Context, ticket Ticket) {
	v.inflight.Add(1)
	go func() {
		defer v.inflight.Done()

		res, err := v.directory.FetchDescriptor(ctx, ticket.Provider)
		summary := domain.ProviderSummary{}
		if err == nil {
			summary = domain.SummarizeDescriptor(res.Descriptor)
		} else {
			v.logger.Debug("provider summary unavailable",
				telemetry.ProviderField(string(ticket.Provider)),
				zap.Error(err),
			)
		}
		if !v.isMounted() || !v.selection.CompleteDescriptor(ticket, summary, err) {
			v.stale(SlotDescriptor, ticket)
			return
		}
		events.EmitSummaryUpdated(v.sink, ticket.Provider, v.selection.Snapshot().Summary)
	}()
}

func (v *ListingView) stale(slot Slot, ticket Ticket) {
	v.metrics.ObserveStaleResponse(string(slot))
	v.logger.Debug("dropping stale response",
		telemetry.EventField(telemetry.EventFetchStale),
		telemetry.SlotField(string(slot)),
		telemetry.TokenField(ticket.Token),
		telemetry.ProviderField(string(ticket.Provider)),
	)
}

func (v *ListingView) onTransition(from, to SelectionSnapshot) {
	if from.State != to.State {
		v.metrics.ObserveTransition(string(from.State), string(to.State))
	}
	events.EmitDrawerChanged(v.sink, events.DrawerChangedEvent{
		Open:     to.DrawerOpen,
		State:    string(to.State),
		Expanded: string(to.Expanded),
	})
}

func (v *ListingView) sessionContext() (context.Context, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.mounted {
		return nil, false
	}
	return v.ctx, true
}

func (v *ListingView) isMounted() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.mounted
}

func (v *ListingView) currentSessionID() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.sessionID
}

func (v *ListingView) setLoading(loading bool) {
	v.mu.Lock()
	v.loading = loading
	v.mu.Unlock()
}
