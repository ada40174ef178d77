package ui

import (
	"context"
	"net/url"
	"sync"

	"go.uber.org/zap"

	"apidir/internal/domain"
	"apidir/internal/infra/telemetry"
	"apidir/internal/ui/events"
)

// DetailStatus is one of the three mutually exclusive detail view states.
type DetailStatus string

const (
	DetailLoading DetailStatus = "loading"
	DetailError   DetailStatus = "error"
	DetailLoaded  DetailStatus = "loaded"
)

// DetailState is what the detail screen renders. Exactly one of Error and
// Descriptor is set once Status leaves loading.
type DetailState struct {
	Provider   domain.ProviderID     `json:"provider"`
	Status     DetailStatus          `json:"status"`
	Error      *UIError              `json:"error,omitempty"`
	Descriptor *domain.APIDescriptor `json:"descriptor,omitempty"`
	Key        string                `json:"key,omitempty"`
	Fallback   bool                  `json:"fallback,omitempty"`
}

// DetailModel is the flattened content of a loaded detail screen.
type DetailModel struct {
	Title        string `json:"title" yaml:"title" toml:"title"`
	LogoURL      string `json:"logo" yaml:"logo" toml:"logo"`
	Description  string `json:"description" yaml:"description" toml:"description"`
	SwaggerURL   string `json:"swaggerUrl" yaml:"swaggerUrl" toml:"swaggerUrl"`
	ContactEmail string `json:"contactEmail" yaml:"contactEmail" toml:"contactEmail"`
	MailtoURL    string `json:"mailto,omitempty" yaml:"mailto,omitempty" toml:"mailto,omitempty"`
	ContactName  string `json:"contactName" yaml:"contactName" toml:"contactName"`
	ContactURL   string `json:"contactUrl" yaml:"contactUrl" toml:"contactUrl"`
}

// Model flattens a loaded descriptor. ok is false unless the state is loaded.
func (s DetailState) Model() (DetailModel, bool) {
	if s.Status != DetailLoaded || s.Descriptor == nil {
		return DetailModel{}, false
	}
	return NewDetailModel(*s.Descriptor), true
}

// NewDetailModel flattens a descriptor; missing contact fields stay empty.
func NewDetailModel(d domain.APIDescriptor) DetailModel {
	contact := d.Info.ContactOrZero()
	model := DetailModel{
		Title:        d.Info.Title,
		LogoURL:      d.Info.LogoURL(),
		Description:  d.Info.Description,
		SwaggerURL:   d.SwaggerURL,
		ContactEmail: contact.Email,
		ContactName:  contact.Name,
		ContactURL:   contact.URL,
	}
	if contact.Email != "" {
		model.MailtoURL = (&url.URL{Scheme: "mailto", Opaque: contact.Email}).String()
	}
	return model
}

// DetailOptions configures a DetailView.
type DetailOptions struct {
	Fetcher   DescriptorFetcher
	Navigator *Navigator
	Sink      events.Sink
	Logger    *zap.Logger
	Metrics   domain.Metrics
}

// DetailView loads and holds one provider's descriptor. It always fetches on
// mount and on provider change; navigation state is kept but not rendered.
type DetailView struct {
	mu      sync.Mutex
	state   DetailState
	carried any
	tokens  tokenSource
	ticket  Ticket
	ctx     context.Context
	cancel  context.CancelFunc
	mounted bool

	fetcher   DescriptorFetcher
	navigator *Navigator
	sink      events.Sink
	logger    *zap.Logger
	metrics   domain.Metrics
	inflight  sync.WaitGroup
}

func NewDetailView(opts DetailOptions) *DetailView {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	metrics := opts.Metrics
	if metrics == nil {
		metrics = domain.NoopMetrics{}
	}
	return &DetailView{
		tokens:    newTokenSource(),
		fetcher:   opts.Fetcher,
		navigator: opts.Navigator,
		sink:      opts.Sink,
		logger:    logger.Named("detail"),
		metrics:   metrics,
	}
}

// Mount shows provider id. carried is the optional navigation state.
func (v *DetailView) Mount(ctx context.Context, id domain.ProviderID, carried any) {
	if ctx == nil {
		ctx = context.Background()
	}
	v.mu.Lock()
	if v.mounted {
		v.cancel()
	}
	sessionID := telemetry.NewSessionID()
	v.ctx, v.cancel = context.WithCancel(telemetry.WithSession(ctx, sessionID))
	v.mounted = true
	v.carried = carried
	v.mu.Unlock()

	v.logger.Debug("detail mounted",
		telemetry.EventField(telemetry.EventMount),
		telemetry.SessionIDField(sessionID),
		telemetry.ProviderField(string(id)),
		zap.Bool("carried", carried != nil),
	)
	v.load(id)
}

// SetProvider switches to another provider and refetches. Carried state
// belongs to the previous provider and is dropped.
func (v *DetailView) SetProvider(id domain.ProviderID) {
	v.mu.Lock()
	if !v.mounted || v.state.Provider == id {
		v.mu.Unlock()
		return
	}
	v.carried = nil
	v.mu.Unlock()

	v.load(id)
}

// Unmount cancels the pending fetch; later results are dropped.
func (v *DetailView) Unmount() {
	v.mu.Lock()
	if !v.mounted {
		v.mu.Unlock()
		return
	}
	v.mounted = false
	v.tokens.invalidate(SlotDetail)
	cancel := v.cancel
	v.mu.Unlock()

	cancel()
	v.logger.Debug("detail unmounted", telemetry.EventField(telemetry.EventUnmount))
}

// ExploreMore returns to the listing.
func (v *DetailView) ExploreMore() {
	if v.navigator == nil {
		return
	}
	v.navigator.Push(HomeRoute(), nil)
}

func (v *DetailView) State() DetailState {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

// Carried returns the navigation state the view was mounted with.
func (v *DetailView) Carried() any {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.carried
}

// Wait blocks until every started fetch has settled.
func (v *DetailView) Wait() {
	v.inflight.Wait()
}

func (v *DetailView) load(id domain.ProviderID) {
	v.mu.Lock()
	ticket := v.tokens.issue(SlotDetail, id)
	v.ticket = ticket
	v.state = DetailState{Provider: id, Status: DetailLoading}
	ctx := v.ctx
	state := v.state
	v.mu.Unlock()

	v.emit(state)

	v.inflight.Add(1)
	go func() {
		defer v.inflight.Done()

		res, err := v.fetcher.FetchDescriptor(ctx, id)

		v.mu.Lock()
		if !v.mounted || !v.tokens.current(ticket) {
			v.mu.Unlock()
			v.metrics.ObserveStaleResponse(string(SlotDetail))
			v.logger.Debug("dropping stale response",
				telemetry.EventField(telemetry.EventFetchStale),
				telemetry.TokenField(ticket.Token),
				telemetry.ProviderField(string(id)),
			)
			return
		}
		v.tokens.invalidate(SlotDetail)
		if err != nil {
			v.state = DetailState{Provider: id, Status: DetailError, Error: MapDomainError(err)}
		} else {
			descriptor := res.Descriptor
			v.state = DetailState{
				Provider:   id,
				Status:     DetailLoaded,
				Descriptor: &descriptor,
				Key:        res.Key,
				Fallback:   res.Fallback,
			}
		}
		state := v.state
		v.mu.Unlock()

		if err != nil {
			v.logger.Warn("provider details unavailable", telemetry.ProviderField(string(id)), zap.Error(err))
			events.EmitError(v.sink, state.Error.Code, state.Error.Message, state.Error.Details)
		}
		v.emit(state)
	}()
}

func (v *DetailView) emit(state DetailState) {
	event := events.DetailStateEvent{
		Provider: string(state.Provider),
		Status:   string(state.Status),
	}
	if state.Error != nil {
		event.Error = state.Error.Reason()
	}
	if state.Descriptor != nil {
		event.Title = state.Descriptor.Info.Title
	}
	events.EmitDetailState(v.sink, event)
}
