package app

import (
	"context"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"apidir/internal/domain"
	"apidir/internal/infra/browser"
	"apidir/internal/infra/config"
	"apidir/internal/infra/directory"
	"apidir/internal/infra/gateway"
	"apidir/internal/infra/telemetry"
	"apidir/internal/ui"
	"apidir/internal/ui/events"
)

// Application wires the directory client, the views and their infrastructure.
type Application struct {
	ctx      context.Context
	settings Settings

	logger    *zap.Logger
	registry  *prometheus.Registry
	metrics   domain.Metrics
	directory *directory.Client
	loader    *config.Loader
	opener    browser.Opener
	gateway   *gateway.Server
}

// ApplicationOptions captures dependencies and settings for Application.
type ApplicationOptions struct {
	Context   context.Context
	Settings  Settings
	Logger    *zap.Logger
	Registry  *prometheus.Registry
	Metrics   domain.Metrics
	Directory *directory.Client
	Loader    *config.Loader
	Opener    browser.Opener
	Gateway   *gateway.Server
}

// NewApplication constructs the application runtime.
func NewApplication(opts ApplicationOptions) *Application {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	metrics := opts.Metrics
	if metrics == nil {
		metrics = domain.NoopMetrics{}
	}
	return &Application{
		ctx:       ctx,
		settings:  opts.Settings,
		logger:    logger,
		registry:  opts.Registry,
		metrics:   metrics,
		directory: opts.Directory,
		loader:    opts.Loader,
		opener:    opts.Opener,
		gateway:   opts.Gateway,
	}
}

func (a *Application) Logger() *zap.Logger {
	return a.logger
}

func (a *Application) Config() config.Config {
	return a.settings.Config
}

func (a *Application) Directory() *directory.Client {
	return a.directory
}

func (a *Application) Opener() browser.Opener {
	return a.opener
}

func (a *Application) Gateway() *gateway.Server {
	return a.gateway
}

// NewSession builds a view session over the directory client.
func (a *Application) NewSession(sink events.Sink, hitTest ui.HitTest) *ui.Session {
	return ui.NewSession(ui.SessionOptions{
		Directory: a.directory,
		Sink:      sink,
		Logger:    a.logger,
		Metrics:   a.metrics,
		HitTest:   hitTest,
	})
}

// StartMetrics serves /metrics in the background when an address is
// configured. The server stops with ctx.
func (a *Application) StartMetrics(ctx context.Context) {
	addr := a.settings.Config.MetricsListenAddress
	if addr == "" || a.registry == nil {
		return
	}
	go func() {
		err := telemetry.StartMetricsServer(ctx, telemetry.HTTPServerOptions{
			Addr:     addr,
			Registry: a.registry,
		}, a.logger)
		if err != nil {
			a.logger.Warn("metrics server stopped", zap.Error(err))
		}
	}()
}

// DumpMetrics writes the registry in the Prometheus text format.
func (a *Application) DumpMetrics(w io.Writer) error {
	if a.registry == nil {
		return nil
	}
	return telemetry.WriteText(w, a.registry)
}
