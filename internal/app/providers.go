package app

import (
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"apidir/internal/domain"
	"apidir/internal/infra/browser"
	"apidir/internal/infra/config"
	"apidir/internal/infra/directory"
	"apidir/internal/infra/gateway"
	"apidir/internal/infra/telemetry"
)

// Settings is the resolved configuration plus what is needed to reload it.
type Settings struct {
	Config     config.Config
	ConfigPath string
	Overrides  config.Overrides
}

func NewMetricsRegistry() *prometheus.Registry {
	return telemetry.NewRegistry()
}

func NewMetrics(registry *prometheus.Registry) domain.Metrics {
	return telemetry.NewPrometheusMetrics(registry)
}

func NewDirectoryClient(settings Settings, logger *zap.Logger, metrics domain.Metrics) (*directory.Client, error) {
	return directory.NewClient(directory.Options{
		BaseURL:   settings.Config.BaseURL,
		Timeout:   settings.Config.RequestTimeout,
		Logger:    logger,
		Metrics:   metrics,
		UserAgent: domain.UserAgentProduct + "/" + Version,
	})
}

func NewConfigLoader(logger *zap.Logger) *config.Loader {
	return config.NewLoader(logger)
}

func NewBrowserOpener(logger *zap.Logger) browser.Opener {
	return browser.NewSystemOpener(logger, os.Stderr)
}

func NewGatewayServer(client *directory.Client, logger *zap.Logger) *gateway.Server {
	return gateway.NewServer(gateway.Options{
		Directory: client,
		Logger:    logger,
		Version:   Version,
	})
}
